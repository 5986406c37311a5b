package cfn

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"
)

// Format is a template rendering format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported template format %q (want json or yaml)", s)
	}
}

// Encode renders the template in the given format.
func (t *Template) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return t.YAML()
	case FormatJSON, "":
		return t.JSON()
	default:
		return nil, fmt.Errorf("unsupported template format %q", format)
	}
}

// JSON renders the template as indented JSON with a trailing newline.
func (t *Template) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t.body()); err != nil {
		return nil, fmt.Errorf("failed to encode template: %w", err)
	}
	return buf.Bytes(), nil
}

// YAML renders the template as YAML.
func (t *Template) YAML() ([]byte, error) {
	out, err := yaml.Marshal(t.body())
	if err != nil {
		return nil, fmt.Errorf("failed to encode template: %w", err)
	}
	return out, nil
}
