// Package demo ships a small sample catalogue embedded in the binary,
// used by the demo command and as the browser's fallback document.
package demo

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/vk/reqgrid/internal/catalog"
	"github.com/vk/reqgrid/internal/loader"
)

//go:embed requirements.yaml
var document string

// Document returns the embedded demo catalogue in YAML form.
func Document() string {
	return document
}

// Project parses the embedded catalogue. The document ships with the
// binary, so a parse failure is a build defect and panics.
func Project(ctx context.Context) *catalog.Project {
	project, err := loader.Parse(ctx, "embedded demo", []byte(document))
	if err != nil {
		panic(fmt.Errorf("embedded demo document failed to parse: %w", err))
	}
	return project
}
