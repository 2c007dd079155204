package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/vk/reqgrid/internal/catalog"
)

//go:embed template.html
var pageTemplate string

// HTML renders the project to a standalone HTML page: the markdown
// document (without TOC marker) converted through GFM and substituted
// into the embedded page template.
func HTML(project *catalog.Project) (string, error) {
	doc := Document(project, false)

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(doc), &buf); err != nil {
		return "", fmt.Errorf("converting markdown to HTML: %w", err)
	}

	page := strings.Replace(pageTemplate, "{{title}}", strings.TrimSpace(project.Name), 1)
	return strings.Replace(page, "{{content}}", buf.String(), 1), nil
}
