package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/reqgrid/internal/catalog"
)

func TestHTML_WrapsRenderedDocument(t *testing.T) {
	t.Parallel()

	page, err := HTML(sampleProject())
	require.NoError(t, err)

	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "<title>Requirements for Demo</title>")
	assert.Contains(t, page, "Requirements for Demo</h1>")
	assert.NotContains(t, page, "{{content}}", "template placeholder must be substituted")
	assert.NotContains(t, page, "{{title}}")
}

func TestHTML_EmphasisBecomesMarkup(t *testing.T) {
	t.Parallel()

	project := catalog.NewProject()
	project.Name = "Emphasis"
	project.Version = catalog.Version{Major: 1}
	project.Description = "every item must have an owner"

	page, err := HTML(project)
	require.NoError(t, err)
	assert.Contains(t, page, "<strong><em>MUST</em></strong>")
}

func TestHTML_NoTOCMarker(t *testing.T) {
	t.Parallel()

	page, err := HTML(sampleProject())
	require.NoError(t, err)
	assert.NotContains(t, page, "[[_TOC_]]", "the HTML page has no host to expand a TOC marker")
}
