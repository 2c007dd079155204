package render

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/vk/reqgrid/internal/catalog"
)

// wordDescription is the boilerplate notice explaining how the normative
// keywords in the document are to be read.
const wordDescription = `The key words "MUST", "MUST NOT", "REQUIRED", "SHALL", "SHALL NOT", "SHOULD", "SHOULD NOT", "RECOMMENDED",
"MAY", and "OPTIONAL" in this document are to be interpreted as described in
[RFC 2119](https://datatracker.ietf.org/doc/html/rfc2119).`

// highlightedWords are the normative keywords uppercased and emphasized by
// Emphasize. Longer phrases come first so "must not" is wrapped as a whole
// before the bare "must" pass could split it.
var highlightedWords = []string{
	"must not",
	"must",
	"required",
	"shall not",
	"shall",
	"should not",
	"should",
	"recommended",
	"may",
	"optional",
}

// Document renders the project to a single markdown string, including the
// keyword emphasis pass. withTOC inserts a [[_TOC_]] marker after the
// title.
func Document(project *catalog.Project, withTOC bool) string {
	return Emphasize(strings.Join(Lines(project, withTOC), "\n"))
}

// Lines renders the project to an ordered sequence of markdown lines,
// before keyword emphasis.
func Lines(project *catalog.Project, withTOC bool) []string {
	lines := []string{
		fmt.Sprintf("# Requirements for %s", strings.TrimSpace(project.Name)),
		"",
	}
	if withTOC {
		lines = append(lines, "[[_TOC_]]", "")
	}
	lines = append(lines,
		wordDescription,
		"",
		fmt.Sprintf("**VERSION: %s**", project.Version),
		"",
		"## Description",
		strings.TrimSpace(project.Description),
		"",
	)

	if project.Topics.Len() > 0 {
		lines = append(lines, "## Requirements")
		lines = appendTopics(lines, project.Topics.Oldest(), 3)
	}

	if len(project.Definitions) > 0 {
		lines = append(lines, "## Definitions")
		for _, definition := range project.Definitions {
			lines = append(lines, fmt.Sprintf("- %s: %s",
				strings.TrimSpace(definition.Name), strings.TrimSpace(definition.Value)))
			for _, info := range definition.AdditionalInfo {
				lines = append(lines, fmt.Sprintf("  - %s", strings.TrimSpace(info)))
			}
		}
		lines = append(lines, "")
	}

	if len(project.ConfigDefaults) > 0 {
		lines = append(lines, "## Config Defaults")
		for _, def := range project.ConfigDefaults {
			lines = appendConfigDefault(lines, def)
		}
	}
	return lines
}

// appendTopics walks a topic level in insertion order. level is the
// heading depth, growing by one per nesting level.
func appendTopics(lines []string, pair *orderedmap.Pair[string, *catalog.Topic], level int) []string {
	for ; pair != nil; pair = pair.Next() {
		id, topic := pair.Key, pair.Value
		lines = append(lines, fmt.Sprintf("%s _%s_ - %s",
			strings.Repeat("#", level), strings.TrimSpace(id), strings.TrimSpace(topic.Name)))

		if topic.Requirements.Len() > 0 {
			for req := topic.Requirements.Oldest(); req != nil; req = req.Next() {
				lines = append(lines, fmt.Sprintf("- **_%s_ - %s:** %s",
					strings.TrimSpace(req.Key),
					strings.TrimSpace(req.Value.Name),
					strings.TrimSpace(req.Value.Description)))
				for _, info := range req.Value.AdditionalInfo {
					lines = append(lines, fmt.Sprintf("  - %s", strings.TrimSpace(info)))
				}
			}
			lines = append(lines, "")
		}

		if topic.Subtopics.Len() > 0 {
			lines = appendTopics(lines, topic.Subtopics.Oldest(), level+1)
			lines = append(lines, "")
		}
	}
	return lines
}

// appendConfigDefault emits the bullet block for one configuration
// parameter. A parameter without a default renders the Required line
// instead of a Default Value line.
func appendConfigDefault(lines []string, def catalog.ConfigDefault) []string {
	lines = append(lines, fmt.Sprintf("- **%s**", strings.TrimSpace(def.Name)))
	lines = append(lines, fmt.Sprintf("  - Type: %s", strings.TrimSpace(def.Type)))
	if def.Unit != nil {
		lines = append(lines, fmt.Sprintf("  - Unit: %s", strings.TrimSpace(*def.Unit)))
	}
	if def.ValidValues != nil {
		lines = append(lines, fmt.Sprintf("  - Valid Values: _%s_",
			strings.TrimSpace(strings.Join(def.ValidValues, ", "))))
	}

	hint := ""
	if def.Hint != nil {
		hint = " " + strings.TrimSpace(*def.Hint)
	}
	if def.DefaultValue != nil {
		lines = append(lines, fmt.Sprintf("  - Default Value: _%s_%s",
			strings.TrimSpace(*def.DefaultValue), hint))
	} else {
		lines = append(lines, fmt.Sprintf(
			"  - **Required**: This value **_MUST_** be provided as a start parameter.%s", hint))
	}
	return append(lines, "")
}

// Emphasize uppercases and strong-italicizes every occurrence of the
// normative keywords. Only the lowercase forms match, which is what makes
// the pass idempotent: its own output is uppercase and never re-wrapped.
func Emphasize(text string) string {
	for _, word := range highlightedWords {
		text = strings.ReplaceAll(text, word, "**_"+strings.ToUpper(word)+"_**")
	}
	return text
}
