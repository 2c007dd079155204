package loader

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/vk/reqgrid/internal/catalog"
)

type tomlRequirement struct {
	Name           string   `toml:"name"`
	Description    string   `toml:"description"`
	AdditionalInfo []string `toml:"additional_info"`
}

type tomlTopic struct {
	Name         string                     `toml:"name"`
	Requirements map[string]tomlRequirement `toml:"requirements"`
	Subtopics    map[string]*tomlTopic      `toml:"subtopics"`
}

type tomlDefinition struct {
	Name           string   `toml:"name"`
	Value          string   `toml:"value"`
	AdditionalInfo []string `toml:"additional_info"`
}

type tomlConfigDefault struct {
	Name         string   `toml:"name"`
	Type         string   `toml:"type"`
	ValidValues  []string `toml:"valid_values"`
	Unit         *string  `toml:"unit"`
	DefaultValue *string  `toml:"default_value"`
	Hint         *string  `toml:"hint"`
}

type tomlDocument struct {
	Name           string                `toml:"name"`
	Version        catalog.Version       `toml:"version"`
	Description    string                `toml:"description"`
	Topics         map[string]*tomlTopic `toml:"topics"`
	Definitions    []tomlDefinition      `toml:"definitions"`
	ConfigDefaults []tomlConfigDefault   `toml:"config_defaults"`
}

// keyRanks records the first appearance of every table path in the
// document. TOML decoding lands in plain maps, so document order has to
// be recovered from toml.MetaData afterwards.
func keyRanks(md toml.MetaData) map[string]int {
	ranks := make(map[string]int)
	for i, key := range md.Keys() {
		for l := 1; l <= len(key); l++ {
			path := strings.Join(key[:l], "\x00")
			if _, ok := ranks[path]; !ok {
				ranks[path] = i
			}
		}
	}
	return ranks
}

// orderedIDs returns the map's keys sorted by first appearance of their
// table path in the document.
func orderedIDs[V any](m map[string]V, ranks map[string]int, prefix []string) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool {
		pa := strings.Join(append(prefix, ids[a]), "\x00")
		pb := strings.Join(append(prefix, ids[b]), "\x00")
		return ranks[pa] < ranks[pb]
	})
	return ids
}

func parseTOML(data []byte) (*catalog.Project, error) {
	var doc tomlDocument
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}
	if doc.Name == "" || doc.Description == "" {
		return nil, errors.New("missing required field 'name' or 'description'")
	}
	if !md.IsDefined("version") {
		return nil, errors.New("missing required field 'version'")
	}

	ranks := keyRanks(md)

	project := catalog.NewProject()
	project.Name = doc.Name
	project.Version = doc.Version
	project.Description = doc.Description

	topics, err := tomlTopics(doc.Topics, ranks, []string{"topics"})
	if err != nil {
		return nil, err
	}
	project.Topics = topics

	for _, d := range doc.Definitions {
		if d.Name == "" || d.Value == "" {
			return nil, errors.New("definition missing name or value")
		}
		project.Definitions = append(project.Definitions, catalog.Definition(d))
	}
	for _, d := range doc.ConfigDefaults {
		if d.Name == "" || d.Type == "" {
			return nil, errors.New("config default missing name or type")
		}
		project.ConfigDefaults = append(project.ConfigDefaults, catalog.ConfigDefault(d))
	}
	return project, nil
}

func tomlTopics(topics map[string]*tomlTopic, ranks map[string]int, prefix []string) (*orderedmap.OrderedMap[string, *catalog.Topic], error) {
	out := orderedmap.New[string, *catalog.Topic]()
	for _, id := range orderedIDs(topics, ranks, prefix) {
		src := topics[id]
		if src.Name == "" {
			return nil, fmt.Errorf("topic %q: missing required field 'name'", id)
		}

		topic := catalog.NewTopic(src.Name)
		path := append(append([]string{}, prefix...), id)

		reqPrefix := append(append([]string{}, path...), "requirements")
		for _, reqID := range orderedIDs(src.Requirements, ranks, reqPrefix) {
			req := src.Requirements[reqID]
			if req.Name == "" || req.Description == "" {
				return nil, fmt.Errorf("requirement %q missing name or description", reqID)
			}
			topic.Requirements.Set(reqID, catalog.Requirement(req))
		}

		subtopics, err := tomlTopics(src.Subtopics, ranks, append(append([]string{}, path...), "subtopics"))
		if err != nil {
			return nil, fmt.Errorf("topic %q: %w", id, err)
		}
		topic.Subtopics = subtopics

		out.Set(id, topic)
	}
	return out, nil
}
