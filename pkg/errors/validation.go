package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxPathLength bounds user-supplied file paths.
const maxPathLength = 1024

// ValidateOutputPath checks a user-supplied output path before anything is
// rendered, so that a bad path fails the run before Graphviz does any work.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - Must name a file, not a directory
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path must name a file: %s", path)
	}

	base := filepath.Base(path)
	if base == "." || base == ".." {
		return New(ErrCodeInvalidPath, "output path must name a file: %s", path)
	}

	return nil
}

// ValidateTableName rejects table names that cannot appear in a diagram.
// Names are otherwise free-form; the diagram uses generated identifiers.
func ValidateTableName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidSchema, "table name cannot be blank")
	}
	for _, r := range name {
		if r == '\x00' {
			return New(ErrCodeInvalidSchema, "table name %q contains a null byte", name)
		}
	}
	return nil
}
