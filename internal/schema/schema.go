// Package schema generates the JSON schema of the catalogue document
// format, for editor integration and input validation of authored
// documents.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// requirement mirrors an entry in a topic's requirements mapping.
type requirement struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	AdditionalInfo []string `json:"additional_info,omitempty"`
}

// topic mirrors a topic mapping entry. Subtopics recurse.
type topic struct {
	Name         string                 `json:"name"`
	Requirements map[string]requirement `json:"requirements,omitempty"`
	Subtopics    map[string]topic       `json:"subtopics,omitempty"`
}

type definition struct {
	Name           string   `json:"name"`
	Value          string   `json:"value"`
	AdditionalInfo []string `json:"additional_info,omitempty"`
}

type configDefault struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	ValidValues  []string `json:"valid_values,omitempty"`
	Unit         *string  `json:"unit,omitempty"`
	DefaultValue *string  `json:"default_value,omitempty"`
	Hint         *string  `json:"hint,omitempty"`
}

// document mirrors the on-disk catalogue format. The schema reflects
// these shadow types rather than the catalog model because the model's
// ordered maps have no JSON shape of their own.
type document struct {
	Name           string           `json:"name"`
	Version        string           `json:"version" jsonschema:"pattern=^[0-9]+\\.[0-9]+\\.[0-9]+$"`
	Description    string           `json:"description"`
	Topics         map[string]topic `json:"topics,omitempty"`
	Definitions    []definition     `json:"definitions,omitempty"`
	ConfigDefaults []configDefault  `json:"config_defaults,omitempty"`
}

// JSON returns the document-format schema, pretty-printed.
func JSON() (string, error) {
	reflector := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: false,
	}
	s := reflector.Reflect(&document{})
	s.Title = "Requirement catalogue document"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling schema: %w", err)
	}
	return string(data), nil
}
