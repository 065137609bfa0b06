package utils

// ToStringSlice normalises a decoded JSON claim to a string slice.
// A single string becomes a one element slice; non-string members are dropped.
func ToStringSlice(v any) []string {
	stringSlice := make([]string, 0)
	switch value := v.(type) {
	case string:
		if value != "" {
			stringSlice = append(stringSlice, value)
		}
	case []string:
		stringSlice = append(stringSlice, value...)
	case []any:
		for _, item := range value {
			if s, ok := item.(string); ok {
				stringSlice = append(stringSlice, s)
			}
		}
	}
	return stringSlice
}
