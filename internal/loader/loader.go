package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/reqgrid/internal/catalog"
	"github.com/vk/reqgrid/internal/ctxlog"
)

// Load reads the document at path and parses it into a catalog model.
func Load(ctx context.Context, path string) (*catalog.Project, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading catalogue document.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	return Parse(ctx, path, data)
}

// Parse attempts each supported syntax in order (YAML/JSON, TOML, HCL)
// and returns the model from the first syntax that accepts the document.
// The YAML parser also covers JSON, since YAML 1.2 is a JSON superset.
func Parse(ctx context.Context, filename string, data []byte) (*catalog.Project, error) {
	logger := ctxlog.FromContext(ctx)

	project, yamlErr := parseYAML(data)
	if yamlErr == nil {
		logger.Debug("Document parsed.", "path", filename, "syntax", "yaml")
		return project, nil
	}
	logger.Debug("YAML parse attempt failed.", "path", filename, "error", yamlErr)

	project, tomlErr := parseTOML(data)
	if tomlErr == nil {
		logger.Debug("Document parsed.", "path", filename, "syntax", "toml")
		return project, nil
	}
	logger.Debug("TOML parse attempt failed.", "path", filename, "error", tomlErr)

	project, hclErr := parseHCL(filename, data)
	if hclErr == nil {
		logger.Debug("Document parsed.", "path", filename, "syntax", "hcl")
		return project, nil
	}
	logger.Debug("HCL parse attempt failed.", "path", filename, "error", hclErr)

	return nil, fmt.Errorf("parsing document %s: no supported syntax accepted it (yaml: %v)", filename, yamlErr)
}
