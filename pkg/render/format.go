package render

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/yaml2erd/pkg/errors"
)

// Format is an output file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatJPG Format = "jpg"
	FormatDOT Format = "dot"
	FormatPDF Format = "pdf"
)

// DefaultFormat is used when neither a flag nor the output extension names one.
const DefaultFormat = FormatPNG

// DefaultDir is the directory diagrams are saved to when no output path is given.
const DefaultDir = "erd"

// Formats lists every supported output format.
var Formats = []Format{FormatPNG, FormatSVG, FormatJPG, FormatDOT, FormatPDF}

// Layouts lists the Graphviz layout engines accepted in global_conf.layout.
var Layouts = []string{"circo", "dot", "fdp", "neato", "nop", "nop1", "nop2", "osage", "patchwork", "sfdp", "twopi"}

// ParseFormat validates a format name. "jpeg" is accepted as an alias of jpg.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if name == "jpeg" {
		name = string(FormatJPG)
	}
	f := Format(name)
	if !slices.Contains(Formats, f) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want one of %s)", s, formatList())
	}
	return f, nil
}

// ValidateLayout reports an INVALID_FORMAT error for unknown layout engines.
func ValidateLayout(name string) error {
	if !slices.Contains(Layouts, name) {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown layout engine %q (want one of %s)", name, strings.Join(Layouts, ", "))
	}
	return nil
}

// FormatFromPath returns the format named by the path's extension, or
// [DefaultFormat] when the path has no recognised extension.
func FormatFromPath(path string) Format {
	ext := filepath.Ext(path)
	if ext == "" {
		return DefaultFormat
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return DefaultFormat
	}
	return f
}

// OutputPath returns where a diagram is saved. An empty save path yields
// erd/<schema basename without extension>.<format>.
func OutputPath(schemaPath, save string, format Format) string {
	if save != "" {
		return save
	}
	base := filepath.Base(schemaPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(DefaultDir, base+"."+string(format))
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
