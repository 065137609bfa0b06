package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

//go:embed static/*
var staticFS embed.FS

//go:embed templates/*
var templateFS embed.FS

// staticFiles serves the embedded playground UI. Text assets have their
// placeholders (KC_URL, INPUT_ISSUER, SERVICE_URL) replaced on the way out.
type staticFiles struct {
	fsys     fs.FS
	replacer *strings.Replacer
}

func newStaticFiles(replacer *strings.Replacer) (*staticFiles, error) {
	subFS, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to create static sub filesystem: %w", err)
	}
	return &staticFiles{fsys: subFS, replacer: replacer}, nil
}

func (s *staticFiles) StreamFile(w http.ResponseWriter, fileName string) error {
	data, err := fs.ReadFile(s.fsys, fileName)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", fileName, err)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	ctype := mime.TypeByExtension(ext)
	if ctype == "" {
		// Fallback for unknown extensions
		ctype = http.DetectContentType(data)
	}
	if isTextContent(ctype) {
		data = []byte(s.replacer.Replace(string(data)))
		// Ensure UTF-8 for text types when not present
		if !strings.Contains(strings.ToLower(ctype), "charset=") {
			ctype += "; charset=utf-8"
		}
	}

	w.Header().Set("Content-Type", ctype)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s content: %w", fileName, err)
	}
	return nil
}

func isTextContent(ctype string) bool {
	return strings.HasPrefix(ctype, "text/") ||
		strings.Contains(ctype, "javascript") ||
		strings.Contains(ctype, "json")
}

// IndexHandler serves the playground page
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.static.StreamFile(w, "index.html"); err != nil {
			logError(r.Method, r.URL.Path, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
		}
	}
}

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a template from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(TemplateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Parse(string(content))
}
