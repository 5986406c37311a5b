package cfn

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// FormatVersion is the only template format version CloudFormation accepts.
const FormatVersion = "2010-09-09"

// Template is a synthesized CloudFormation template. The exported fields
// are a read-only view for summaries and tests; Encode always renders the
// document exactly as it was synthesized.
type Template struct {
	AWSTemplateFormatVersion string               `json:"AWSTemplateFormatVersion"`
	Description              string               `json:"Description,omitempty"`
	Parameters               map[string]Parameter `json:"Parameters,omitempty"`
	Resources                map[string]Resource  `json:"Resources"`
	Outputs                  map[string]Output    `json:"Outputs,omitempty"`

	document map[string]any
}

// Parameter is a template input resolved by the engine at deploy time.
type Parameter struct {
	Type        string `json:"Type"`
	Default     any    `json:"Default,omitempty"`
	Description string `json:"Description,omitempty"`
}

// Resource is one declared resource.
type Resource struct {
	Type       string         `json:"Type"`
	Properties map[string]any `json:"Properties,omitempty"`
	DependsOn  []string       `json:"DependsOn,omitempty"`
}

// Output is a stack output, optionally exported for cross-stack use.
type Output struct {
	Description string  `json:"Description,omitempty"`
	Value       any     `json:"Value"`
	Export      *Export `json:"Export,omitempty"`
}

// Export names an output globally within an account and region.
type Export struct {
	Name string `json:"Name"`
}

// Parse reads a JSON template document.
func Parse(data []byte) (*Template, error) {
	var tpl Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	// The raw document keeps numbers as written so re-encoding is lossless.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&tpl.document); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if tpl.Resources == nil {
		tpl.Resources = make(map[string]Resource)
	}
	return &tpl, nil
}

// ResourcesOfType returns the logical IDs of all resources of the given type, sorted.
func (t *Template) ResourcesOfType(resourceType string) []string {
	var ids []string
	for id, r := range t.Resources {
		if r.Type == resourceType {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Property returns a top-level property of a declared resource.
func (t *Template) Property(logicalID, name string) (any, bool) {
	r, ok := t.Resources[logicalID]
	if !ok {
		return nil, false
	}
	v, ok := r.Properties[name]
	return v, ok
}

func (t *Template) body() any {
	if t.document != nil {
		return t.document
	}
	return t
}
