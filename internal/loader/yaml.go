package loader

import (
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/vk/reqgrid/internal/catalog"
)

// yamlRequirement mirrors catalog.Requirement for decoding.
type yamlRequirement struct {
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	AdditionalInfo []string `yaml:"additional_info"`
}

// yamlDefinition mirrors catalog.Definition for decoding.
type yamlDefinition struct {
	Name           string   `yaml:"name"`
	Value          string   `yaml:"value"`
	AdditionalInfo []string `yaml:"additional_info"`
}

// yamlConfigDefault mirrors catalog.ConfigDefault for decoding.
type yamlConfigDefault struct {
	Name         string   `yaml:"name"`
	Type         string   `yaml:"type"`
	ValidValues  []string `yaml:"valid_values"`
	Unit         *string  `yaml:"unit"`
	DefaultValue *string  `yaml:"default_value"`
	Hint         *string  `yaml:"hint"`
}

// parseYAML decodes a YAML (or JSON) document through yaml.Node so that
// mapping order survives; a plain map[string]... target would shuffle the
// topics, and their order is a semantic part of the model.
func parseYAML(data []byte) (*catalog.Project, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New("empty document")
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, errors.New("top level must be a mapping")
	}

	project := catalog.NewProject()
	var versionSeen bool

	for i := 0; i+1 < len(doc.Content); i += 2 {
		keyNode, valNode := doc.Content[i], doc.Content[i+1]
		switch keyNode.Value {
		case "name":
			if err := valNode.Decode(&project.Name); err != nil {
				return nil, err
			}
		case "version":
			var raw string
			if err := valNode.Decode(&raw); err != nil {
				return nil, err
			}
			version, err := catalog.ParseVersion(raw)
			if err != nil {
				return nil, err
			}
			project.Version = version
			versionSeen = true
		case "description":
			if err := valNode.Decode(&project.Description); err != nil {
				return nil, err
			}
		case "topics":
			topics, err := yamlTopics(valNode)
			if err != nil {
				return nil, err
			}
			project.Topics = topics
		case "definitions":
			var defs []yamlDefinition
			if err := valNode.Decode(&defs); err != nil {
				return nil, err
			}
			for _, d := range defs {
				if d.Name == "" || d.Value == "" {
					return nil, errors.New("definition missing name or value")
				}
				project.Definitions = append(project.Definitions, catalog.Definition(d))
			}
		case "config_defaults":
			var defaults []yamlConfigDefault
			if err := valNode.Decode(&defaults); err != nil {
				return nil, err
			}
			for _, d := range defaults {
				if d.Name == "" || d.Type == "" {
					return nil, errors.New("config default missing name or type")
				}
				project.ConfigDefaults = append(project.ConfigDefaults, catalog.ConfigDefault(d))
			}
		}
	}

	if project.Name == "" {
		return nil, errors.New("missing required field 'name'")
	}
	if !versionSeen {
		return nil, errors.New("missing required field 'version'")
	}
	if project.Description == "" {
		return nil, errors.New("missing required field 'description'")
	}
	return project, nil
}

// yamlTopics decodes an ordered topic mapping, recursing into subtopics.
func yamlTopics(node *yaml.Node) (*orderedmap.OrderedMap[string, *catalog.Topic], error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("topics must be a mapping")
	}

	topics := orderedmap.New[string, *catalog.Topic]()
	for i := 0; i+1 < len(node.Content); i += 2 {
		id := node.Content[i].Value
		topic, err := yamlTopic(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("topic %q: %w", id, err)
		}
		if _, present := topics.Set(id, topic); present {
			return nil, fmt.Errorf("duplicate topic id %q", id)
		}
	}
	return topics, nil
}

func yamlTopic(node *yaml.Node) (*catalog.Topic, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("topic must be a mapping")
	}

	topic := catalog.NewTopic("")
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		switch keyNode.Value {
		case "name":
			if err := valNode.Decode(&topic.Name); err != nil {
				return nil, err
			}
		case "requirements":
			if valNode.Kind != yaml.MappingNode {
				return nil, errors.New("requirements must be a mapping")
			}
			for j := 0; j+1 < len(valNode.Content); j += 2 {
				id := valNode.Content[j].Value
				var req yamlRequirement
				if err := valNode.Content[j+1].Decode(&req); err != nil {
					return nil, err
				}
				if req.Name == "" || req.Description == "" {
					return nil, fmt.Errorf("requirement %q missing name or description", id)
				}
				if _, present := topic.Requirements.Set(id, catalog.Requirement(req)); present {
					return nil, fmt.Errorf("duplicate requirement id %q", id)
				}
			}
		case "subtopics":
			subtopics, err := yamlTopics(valNode)
			if err != nil {
				return nil, err
			}
			topic.Subtopics = subtopics
		}
	}

	if topic.Name == "" {
		return nil, errors.New("missing required field 'name'")
	}
	return topic, nil
}
