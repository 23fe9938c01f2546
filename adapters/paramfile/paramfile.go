// Package paramfile loads formula parameter overrides from files.
// Supported formats are JSON, YAML and HCL, chosen by file extension.
package paramfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

// Format is a parameter file format
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// DetectFormat picks a format from the file extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", errors.Newf(errors.TypeInput, "unsupported parameter file extension: %s", path)
	}
}

// LoadFile reads and validates overrides from path
func LoadFile(path string) (types.ParameterOverrides, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "failed to read parameter file %s", path)
	}

	return Parse(src, path, format)
}

// Parse decodes overrides from src. filename is used in diagnostics only.
func Parse(src []byte, filename string, format Format) (types.ParameterOverrides, error) {
	var (
		overrides types.ParameterOverrides
		err       error
	)

	switch format {
	case FormatJSON:
		err = json.Unmarshal(src, &overrides)
	case FormatYAML:
		err = yaml.Unmarshal(src, &overrides)
	case FormatHCL:
		overrides, err = parseHCL(src, filename)
	default:
		return nil, errors.Newf(errors.TypeInput, "unsupported parameter file format: %s", format)
	}
	if err != nil {
		return nil, errors.Parsing("failed to parse parameter file "+filename, err)
	}

	if overrides == nil {
		overrides = types.ParameterOverrides{}
	}
	if err := overrides.Validate(); err != nil {
		return nil, errors.InvalidParameter("invalid parameter file "+filename, err)
	}
	return overrides, nil
}
