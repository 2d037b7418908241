package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/yaml2erd/pkg/document"
	"github.com/matzehuels/yaml2erd/pkg/errors"
)

// LoadFile reads a user configuration file. YAML is assumed unless the file
// has a .toml extension. An empty path means no user configuration and
// returns a nil tree.
func LoadFile(path string) (*document.Value, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config file %s", path)
	}
	return Parse(path, data)
}

// Parse decodes configuration data read from path, choosing the decoder by
// the path's extension.
func Parse(path string, data []byte) (*document.Value, error) {
	var (
		tree *document.Value
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		tree, err = ParseTOML(data)
	} else {
		tree, err = ParseYAML(data)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config file %s", path)
	}
	return tree, nil
}

// ParseYAML decodes a YAML configuration document.
func ParseYAML(data []byte) (*document.Value, error) {
	tree, err := document.Parse(data)
	if err != nil {
		return nil, err
	}
	return checkRoot(tree)
}

// ParseTOML decodes a TOML configuration document.
//
//	[entity_conf]
//	fontsize = 24
//
//	[arrow_map.has_many]
//	penwidth = 2
func ParseTOML(data []byte) (*document.Value, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	tree, err := document.FromAny(raw)
	if err != nil {
		return nil, err
	}
	return checkRoot(tree)
}

// checkRoot accepts an empty document as "no overrides" and otherwise
// requires a mapping at the top.
func checkRoot(tree *document.Value) (*document.Value, error) {
	if tree.IsNull() {
		return nil, nil
	}
	if !tree.IsMapping() {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "configuration must be a mapping, got %s", tree.Kind)
	}
	return tree, nil
}
