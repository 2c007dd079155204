package loader

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/reqgrid/internal/catalog"
)

// hclRequirement represents a `requirement` block inside a topic.
type hclRequirement struct {
	ID             string   `hcl:"id,label"`
	Name           string   `hcl:"name"`
	Description    string   `hcl:"description"`
	AdditionalInfo []string `hcl:"additional_info,optional"`
}

// hclTopic represents a `topic` block. Nested `topic` blocks are the
// subtopics of the enclosing one.
type hclTopic struct {
	ID           string            `hcl:"id,label"`
	Name         string            `hcl:"name"`
	Requirements []*hclRequirement `hcl:"requirement,block"`
	Subtopics    []*hclTopic       `hcl:"topic,block"`
}

// hclDefinition represents a `definition` block.
type hclDefinition struct {
	Name           string   `hcl:"name,label"`
	Value          string   `hcl:"value"`
	AdditionalInfo []string `hcl:"additional_info,optional"`
}

// hclConfigDefault represents a `config_default` block. The value-like
// attributes stay as expressions so numbers and booleans can be written
// naturally and converted to their string form afterwards.
type hclConfigDefault struct {
	Name         string         `hcl:"name,label"`
	Type         string         `hcl:"type"`
	ValidValues  hcl.Expression `hcl:"valid_values,optional"`
	Unit         *string        `hcl:"unit,optional"`
	DefaultValue hcl.Expression `hcl:"default_value,optional"`
	Hint         *string        `hcl:"hint,optional"`
}

// hclDocument represents the top-level structure of an HCL catalogue file.
type hclDocument struct {
	Name           string              `hcl:"name"`
	Version        string              `hcl:"version"`
	Description    string              `hcl:"description"`
	Topics         []*hclTopic         `hcl:"topic,block"`
	Definitions    []*hclDefinition    `hcl:"definition,block"`
	ConfigDefaults []*hclConfigDefault `hcl:"config_default,block"`
}

func parseHCL(filename string, data []byte) (*catalog.Project, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL document %s: %s", filename, diags.Error())
	}

	var doc hclDocument
	diags = gohcl.DecodeBody(file.Body, nil, &doc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL document %s: %s", filename, diags.Error())
	}

	version, err := catalog.ParseVersion(doc.Version)
	if err != nil {
		return nil, err
	}

	project := catalog.NewProject()
	project.Name = doc.Name
	project.Version = version
	project.Description = doc.Description

	for _, t := range doc.Topics {
		topic, err := newTopicFromHCL(t)
		if err != nil {
			return nil, err
		}
		if _, present := project.Topics.Set(t.ID, topic); present {
			return nil, fmt.Errorf("duplicate topic id %q", t.ID)
		}
	}

	for _, d := range doc.Definitions {
		project.Definitions = append(project.Definitions, catalog.Definition{
			Name:           d.Name,
			Value:          d.Value,
			AdditionalInfo: d.AdditionalInfo,
		})
	}

	for _, d := range doc.ConfigDefaults {
		def, err := newConfigDefaultFromHCL(d)
		if err != nil {
			return nil, err
		}
		project.ConfigDefaults = append(project.ConfigDefaults, def)
	}
	return project, nil
}

// newTopicFromHCL converts a decoded topic block, recursing into subtopics.
func newTopicFromHCL(src *hclTopic) (*catalog.Topic, error) {
	topic := catalog.NewTopic(src.Name)

	for _, r := range src.Requirements {
		req := catalog.Requirement{
			Name:           r.Name,
			Description:    r.Description,
			AdditionalInfo: r.AdditionalInfo,
		}
		if _, present := topic.Requirements.Set(r.ID, req); present {
			return nil, fmt.Errorf("duplicate requirement id %q in topic %q", r.ID, src.ID)
		}
	}

	for _, s := range src.Subtopics {
		subtopic, err := newTopicFromHCL(s)
		if err != nil {
			return nil, err
		}
		if _, present := topic.Subtopics.Set(s.ID, subtopic); present {
			return nil, fmt.Errorf("duplicate subtopic id %q in topic %q", s.ID, src.ID)
		}
	}
	return topic, nil
}

// newConfigDefaultFromHCL evaluates the expression-valued attributes of a
// config_default block and converts them to their string representations.
func newConfigDefaultFromHCL(src *hclConfigDefault) (catalog.ConfigDefault, error) {
	def := catalog.ConfigDefault{
		Name: src.Name,
		Type: src.Type,
		Unit: src.Unit,
		Hint: src.Hint,
	}

	values, err := evalStringList(src.ValidValues)
	if err != nil {
		return catalog.ConfigDefault{}, fmt.Errorf("config_default %q: valid_values: %w", src.Name, err)
	}
	def.ValidValues = values

	defaultValue, err := evalString(src.DefaultValue)
	if err != nil {
		return catalog.ConfigDefault{}, fmt.Errorf("config_default %q: default_value: %w", src.Name, err)
	}
	def.DefaultValue = defaultValue

	return def, nil
}

// evalString evaluates an optional expression and converts the result to a
// string, so `default_value = 80` and `default_value = "80"` are
// equivalent. Returns nil when the attribute is absent.
func evalString(expr hcl.Expression) (*string, error) {
	val, ok, err := evalTo(expr, cty.String)
	if err != nil || !ok {
		return nil, err
	}
	s := val.AsString()
	return &s, nil
}

// evalStringList evaluates an optional expression to a list of strings.
func evalStringList(expr hcl.Expression) ([]string, error) {
	val, ok, err := evalTo(expr, cty.List(cty.String))
	if err != nil || !ok {
		return nil, err
	}
	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, element := it.Element()
		out = append(out, element.AsString())
	}
	return out, nil
}

// evalTo evaluates an expression and converts its value to the wanted cty
// type. The boolean result is false for absent or null attributes.
func evalTo(expr hcl.Expression, want cty.Type) (cty.Value, bool, error) {
	if expr == nil {
		return cty.NilVal, false, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, false, fmt.Errorf("%s", diags.Error())
	}
	if val.IsNull() {
		return cty.NilVal, false, nil
	}
	converted, err := convert.Convert(val, want)
	if err != nil {
		return cty.NilVal, false, err
	}
	return converted, true, nil
}
