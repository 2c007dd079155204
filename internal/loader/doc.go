// Package loader reads a requirement-catalogue document from one of the
// supported structured-text syntaxes (YAML/JSON, TOML, HCL) and builds
// the format-agnostic catalog model.
//
// Syntax detection is by trial: each parser runs in a fixed order and the
// first one to produce a valid model wins. Construction is all-or-nothing;
// a document that no syntax accepts (or whose version string is malformed)
// yields a single parse error and no partial model.
package loader
