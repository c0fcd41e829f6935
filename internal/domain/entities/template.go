package entities

import (
	"fmt"
	"strings"
)

// Template is an immutable report blueprint. Placeholder tokens such as
// {patient_name} are not substituted programmatically; the generation
// provider resolves them by inference over the transcript.
type Template struct {
	Category string
	Name     string
	Body     string
}

// Key returns the composite catalog key for the template
func (t *Template) Key() string {
	return t.Category + "::" + t.Name
}

// ParseTemplateKey splits a composite `category::name` key
func ParseTemplateKey(key string) (category, name string, err error) {
	parts := strings.SplitN(key, "::", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid template key %q, expected category::name", key)
	}
	return parts[0], parts[1], nil
}
