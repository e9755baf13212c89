// Package scenario loads full engine inputs from files. Scenarios are
// authored as JSON, HJSON or YAML; all three decode into the same
// projection.Input shape.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"school_projection/pkg/core/projection"

	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"
)

// Load reads a scenario file and decodes it by extension (.json, .hjson,
// .yaml, .yml).
func Load(path string) (*projection.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".hjson":
		return ParseHJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	}
	return nil, fmt.Errorf("unsupported scenario format %q", filepath.Ext(path))
}

// ParseJSON decodes a JSON scenario.
func ParseJSON(data []byte) (*projection.Input, error) {
	var in projection.Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse scenario JSON: %w", err)
	}
	return &in, nil
}

// ParseHJSON decodes a human-JSON scenario (comments and trailing commas
// allowed).
func ParseHJSON(data []byte) (*projection.Input, error) {
	var in projection.Input
	if err := hjson.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse scenario HJSON: %w", err)
	}
	return &in, nil
}

// ParseYAML decodes a YAML scenario. YAML is normalized through a JSON
// round-trip so money fields land in decimals without passing through
// binary floats on the struct.
func ParseYAML(data []byte) (*projection.Input, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	jsonData, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to normalize scenario YAML: %w", err)
	}
	return ParseJSON(jsonData)
}

// normalizeYAML rewrites yaml.v2's map[interface{}]interface{} nodes into
// map[string]interface{} so the tree is JSON-marshalable.
func normalizeYAML(v interface{}) interface{} {
	switch node := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(node))
		for k, val := range node {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(val)
		}
		return out
	case []interface{}:
		for i, val := range node {
			node[i] = normalizeYAML(val)
		}
		return node
	default:
		return v
	}
}
