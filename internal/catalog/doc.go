// Package catalog defines the format-agnostic model of a requirement
// catalogue: a project owning an ordered tree of topics, each holding
// ordered requirements and nested subtopics, plus flat lists of
// terminology definitions and configuration defaults.
//
// The model is the single source of truth for the `render` and `report`
// packages. It carries no behavior beyond structure: loaders in separate
// packages build it once, and every later traversal is read-only.
// Iteration order over topics and requirements is their insertion order
// and is semantically significant: it fixes both document and report
// ordering.
package catalog
