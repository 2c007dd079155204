package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/vk/reqgrid/internal/catalog"
	"github.com/vk/reqgrid/internal/ctxlog"
)

// Status markers emitted per requirement.
const (
	markerPassed  = ":white_check_mark:"
	markerFailed  = ":x:"
	markerUnknown = ":warning:"
)

// Text is one named test-result blob, already read into memory.
type Text struct {
	Name    string
	Content string
}

// status is the aggregated outcome for a single requirement id.
type status struct {
	passed bool
	errors []string
}

// CompilePatterns compiles the allowed-requirement expressions. An invalid
// expression is a fatal configuration error, surfaced before any
// traversal begins.
func CompilePatterns(exprs []string) ([]*regexp.Regexp, error) {
	if len(exprs) == 0 {
		return nil, errors.New("at least one requirement pattern is required")
	}
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid requirement pattern %q: %w", expr, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// LoadTexts reads each test-result file sequentially, in the given order.
// Any read failure aborts the whole check: a report built from partial
// inputs would be misleading.
func LoadTexts(ctx context.Context, paths []string) ([]Text, error) {
	logger := ctxlog.FromContext(ctx)

	texts := make([]Text, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading test results %s: %w", path, err)
		}
		logger.Debug("Test-result text loaded.", "path", path, "bytes", len(data))
		texts = append(texts, Text{Name: path, Content: string(data)})
	}
	return texts, nil
}

// Check walks the catalogue filtered by the allowed patterns, scans the
// result texts in order, and returns the report lines. The texts were
// read before the call, so Check itself is a total function of its
// inputs.
func Check(ctx context.Context, project *catalog.Project, patterns []*regexp.Regexp, texts []Text) []string {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Compliance check started.", "project", project.Name, "patterns", len(patterns), "texts", len(texts))

	lines := []string{fmt.Sprintf("# Test Results - %s", project.Name)}
	lines = checkTopics(lines, project.Topics.Oldest(), patterns, texts, 2)

	logger.Debug("Compliance check finished.", "lines", len(lines))
	return lines
}

// checkTopics renders one topic level. Topics whose subtree contains no
// in-scope requirement produce no output at all.
func checkTopics(lines []string, pair *orderedmap.Pair[string, *catalog.Topic], patterns []*regexp.Regexp, texts []Text, level int) []string {
	if !anyTopicInScope(pair, patterns) {
		return lines
	}

	for ; pair != nil; pair = pair.Next() {
		id, topic := pair.Key, pair.Value
		if !anyTopicInScope(topic.Subtopics.Oldest(), patterns) &&
			!anyRequirementInScope(topic.Requirements, patterns) {
			continue
		}

		// Unlike the document renderer, the topic name is emitted as
		// authored, untrimmed. Deliberate: report headings keep it verbatim.
		lines = append(lines, fmt.Sprintf("%s _%s_ - %s",
			strings.Repeat("#", level), strings.TrimSpace(id), topic.Name))

		statuses := make(map[string]status)
		for _, text := range texts {
			if topic.Requirements.Len() > 0 {
				scanText(text.Content, statuses, topic.Requirements, patterns)
			}
		}

		if topic.Requirements.Len() > 0 {
			for req := topic.Requirements.Oldest(); req != nil; req = req.Next() {
				trimmedID := strings.TrimSpace(req.Key)
				marker := markerUnknown
				var errs []string
				if st, ok := statuses[trimmedID]; ok {
					if st.passed {
						marker = markerPassed
					} else {
						marker = markerFailed
					}
					errs = st.errors
				}
				lines = append(lines, fmt.Sprintf("- _%s_ - %s: %s", trimmedID, req.Value.Name, marker))
				for _, err := range errs {
					lines = append(lines, fmt.Sprintf("  - %s", strings.TrimSpace(err)))
				}
			}
			lines = append(lines, "")
		}

		if topic.Subtopics.Len() > 0 {
			lines = checkTopics(lines, topic.Subtopics.Oldest(), patterns, texts, level+1)
			lines = append(lines, "")
		}
	}
	return lines
}

// scanText records statuses for every in-scope requirement found in one
// result text. A failure overwrites any previously recorded status and
// its messages; a pass only lands when nothing was recorded before.
func scanText(content string, statuses map[string]status, requirements *orderedmap.OrderedMap[string, catalog.Requirement], patterns []*regexp.Regexp) {
	for req := requirements.Oldest(); req != nil; req = req.Next() {
		if !matchesAny(req.Key, patterns) {
			continue
		}
		trimmedID := strings.TrimSpace(req.Key)

		failedMarker := trimmedID + ": failed"
		if strings.Contains(content, failedMarker) {
			var errs []string
			for _, line := range strings.Split(content, "\n") {
				if !strings.HasPrefix(line, failedMarker) {
					continue
				}
				rest := line[len(failedMarker):]
				if idx := strings.Index(rest, "-"); idx >= 0 {
					errs = append(errs, rest[idx+1:])
				}
			}
			statuses[trimmedID] = status{passed: false, errors: errs}
		} else if strings.Contains(content, trimmedID+": passed") {
			if _, recorded := statuses[trimmedID]; !recorded {
				statuses[trimmedID] = status{passed: true}
			}
		}
	}
}

// matchesAny reports whether any allowed pattern matches the id. This is
// a substring match, so a pattern may match a prefix of the identifier.
func matchesAny(id string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(id) {
			return true
		}
	}
	return false
}

// anyRequirementInScope reports whether any requirement id at this level
// matches an allowed pattern.
func anyRequirementInScope(requirements *orderedmap.OrderedMap[string, catalog.Requirement], patterns []*regexp.Regexp) bool {
	for req := requirements.Oldest(); req != nil; req = req.Next() {
		if matchesAny(req.Key, patterns) {
			return true
		}
	}
	return false
}

// anyTopicInScope reports whether any topic in the given level, or any of
// its descendants, has an in-scope requirement.
func anyTopicInScope(pair *orderedmap.Pair[string, *catalog.Topic], patterns []*regexp.Regexp) bool {
	for ; pair != nil; pair = pair.Next() {
		if anyRequirementInScope(pair.Value.Requirements, patterns) ||
			anyTopicInScope(pair.Value.Subtopics.Oldest(), patterns) {
			return true
		}
	}
	return false
}
