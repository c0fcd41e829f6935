package evaluation

import (
	"fmt"
	"os"
	"strings"

	"github.com/radyosim/backend/internal/domain/entities"
)

// LoadReference returns the reference report text for a case, reading the
// discovered reference file when the text is not already in memory.
// Returns an empty string for cases without a reference.
func LoadReference(c *entities.Case) (string, error) {
	if c.Reference != "" {
		return c.Reference, nil
	}
	if c.ReferencePath == "" {
		return "", nil
	}

	data, err := os.ReadFile(c.ReferencePath)
	if err != nil {
		return "", fmt.Errorf("failed to read reference file %s: %w", c.ReferencePath, err)
	}
	return NormalizeReference(string(data)), nil
}

// NormalizeReference strips a UTF-8 byte order mark and normalizes line
// endings so alignment is not polluted by editor artifacts.
func NormalizeReference(text string) string {
	text = strings.TrimPrefix(text, "\uFEFF")
	return strings.ReplaceAll(text, "\r\n", "\n")
}
