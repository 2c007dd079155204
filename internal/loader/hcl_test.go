package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hclTestDocument = `
name        = "HCL Project"
version     = "3.1.4"
description = "parsed from hcl"

topic "CORE" {
  name = "Core behavior"

  requirement "REQ-1" {
    name            = "First"
    description     = "First requirement."
    additional_info = ["detail"]
  }

  topic "CORE-SUB" {
    name = "Nested"

    requirement "REQ-2" {
      name        = "Second"
      description = "Second requirement."
    }
  }
}

definition "term" {
  value = "meaning"
}

config_default "workers" {
  type          = "int"
  valid_values  = [1, 2, 4]
  default_value = 4
  hint          = "Powers of two behave best."
}

config_default "api_key" {
  type = "string"
  hint = "No default on purpose."
}
`

func TestParseHCL_FullDocument(t *testing.T) {
	t.Parallel()

	project, err := parseHCL("doc.hcl", []byte(hclTestDocument))
	require.NoError(t, err)

	assert.Equal(t, "HCL Project", project.Name)
	assert.Equal(t, "3.1.4", project.Version.String())

	core, ok := project.Topics.Get("CORE")
	require.True(t, ok)
	assert.Equal(t, "Core behavior", core.Name)

	req, ok := core.Requirements.Get("REQ-1")
	require.True(t, ok)
	assert.Equal(t, []string{"detail"}, req.AdditionalInfo)

	sub, ok := core.Subtopics.Get("CORE-SUB")
	require.True(t, ok)
	assert.Equal(t, 1, sub.Requirements.Len())
}

func TestParseHCL_ConvertsValueExpressions(t *testing.T) {
	t.Parallel()

	project, err := parseHCL("doc.hcl", []byte(hclTestDocument))
	require.NoError(t, err)
	require.Len(t, project.ConfigDefaults, 2)

	// Numbers in default_value and valid_values convert to their string
	// forms rather than being rejected.
	workers := project.ConfigDefaults[0]
	require.NotNil(t, workers.DefaultValue)
	assert.Equal(t, "4", *workers.DefaultValue)
	assert.Equal(t, []string{"1", "2", "4"}, workers.ValidValues)

	apiKey := project.ConfigDefaults[1]
	assert.Nil(t, apiKey.DefaultValue)
	require.NotNil(t, apiKey.Hint)
}

func TestParseHCL_DuplicateRequirement(t *testing.T) {
	t.Parallel()

	doc := `
name        = "x"
version     = "1.0.0"
description = "d"

topic "T" {
  name = "t"
  requirement "REQ-1" {
    name        = "a"
    description = "a"
  }
  requirement "REQ-1" {
    name        = "b"
    description = "b"
  }
}
`
	_, err := parseHCL("doc.hcl", []byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate requirement id")
}

func TestParseHCL_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := parseHCL("doc.hcl", []byte(`topic "T" {`))
	assert.Error(t, err)
}
