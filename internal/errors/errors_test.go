package errors_test

import (
	"fmt"
	"testing"

	perrors "github.com/jrsteele09/go-oidc-playground/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		require.NoError(t, perrors.Wrapf(nil, "context %d", 1))
	})

	t.Run("wraps with context", func(t *testing.T) {
		err := perrors.Wrapf(perrors.ErrInvalidToken, "verify %s", "abc")
		require.EqualError(t, err, "verify abc: invalid token")
		require.True(t, perrors.Is(err, perrors.ErrInvalidToken))
	})

	t.Run("as finds wrapped type", func(t *testing.T) {
		type codeErr struct{ error }
		err := perrors.Wrapf(codeErr{fmt.Errorf("boom")}, "outer")
		var target codeErr
		require.True(t, perrors.As(err, &target))
	})
}
