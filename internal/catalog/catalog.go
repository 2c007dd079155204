package catalog

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Project is the root of a requirement catalogue. It exclusively owns
// every Topic reachable from it; the structure is a strict tree, never a
// graph.
type Project struct {
	Name           string
	Version        Version
	Description    string
	Topics         *orderedmap.OrderedMap[string, *Topic]
	Definitions    []Definition
	ConfigDefaults []ConfigDefault
}

// Topic groups requirements and nested subtopics. A Topic is owned by
// exactly one parent. Requirement identifiers are unique within a single
// topic but may legitimately reappear under a different topic.
type Topic struct {
	Name         string
	Requirements *orderedmap.OrderedMap[string, Requirement]
	Subtopics    *orderedmap.OrderedMap[string, *Topic]
}

// Requirement is a single catalogue entry: a short name, a prose
// description, and optional free-text notes.
type Requirement struct {
	Name           string
	Description    string
	AdditionalInfo []string
}

// Definition is a terminology entry rendered in the document's
// Definitions section.
type Definition struct {
	Name           string
	Value          string
	AdditionalInfo []string
}

// ConfigDefault describes one configuration parameter. A nil DefaultValue
// signals the parameter is mandatory and must be supplied at startup.
type ConfigDefault struct {
	Name         string
	Type         string
	ValidValues  []string
	Unit         *string
	DefaultValue *string
	Hint         *string
}

// NewProject returns a Project with initialized (empty) topic storage.
func NewProject() *Project {
	return &Project{
		Topics: orderedmap.New[string, *Topic](),
	}
}

// NewTopic returns a Topic with initialized (empty) requirement and
// subtopic storage.
func NewTopic(name string) *Topic {
	return &Topic{
		Name:         name,
		Requirements: orderedmap.New[string, Requirement](),
		Subtopics:    orderedmap.New[string, *Topic](),
	}
}
