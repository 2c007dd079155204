package report

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/reqgrid/internal/catalog"
)

func mustPatterns(t *testing.T, exprs ...string) []*regexp.Regexp {
	t.Helper()
	patterns, err := CompilePatterns(exprs)
	require.NoError(t, err)
	return patterns
}

// singleTopicProject is the worked example from the tool's contract: one
// topic T1 holding one requirement REQ-1.
func singleTopicProject() *catalog.Project {
	project := catalog.NewProject()
	project.Name = "Example"
	project.Version = catalog.Version{Major: 1}
	project.Description = "d"

	topic := catalog.NewTopic("Topic one")
	topic.Requirements.Set("REQ-1", catalog.Requirement{Name: "One", Description: "d"})
	project.Topics.Set("T1", topic)
	return project
}

func TestCheck_FailedWithErrorMessage(t *testing.T) {
	t.Parallel()

	texts := []Text{{Name: "a", Content: "REQ-1: failed - timeout waiting for response"}}
	lines := Check(context.Background(), singleTopicProject(), mustPatterns(t, "REQ-.*"), texts)

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "# Test Results - Example")
	assert.Contains(t, joined, "## _T1_ - Topic one")
	assert.Contains(t, joined, "- _REQ-1_ - One: :x:")
	assert.Contains(t, joined, "  - timeout waiting for response")
}

func TestCheck_Passed(t *testing.T) {
	t.Parallel()

	texts := []Text{{Name: "a", Content: "REQ-1: passed"}}
	lines := Check(context.Background(), singleTopicProject(), mustPatterns(t, "REQ-.*"), texts)

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "- _REQ-1_ - One: :white_check_mark:")
	assert.NotContains(t, joined, "  - ", "a passing requirement carries no error lines")
}

func TestCheck_UnknownWhenAbsentFromResults(t *testing.T) {
	t.Parallel()

	texts := []Text{{Name: "a", Content: "REQ-999: passed"}}
	lines := Check(context.Background(), singleTopicProject(), mustPatterns(t, "REQ-.*"), texts)

	assert.Contains(t, strings.Join(lines, "\n"), "- _REQ-1_ - One: :warning:")
}

func TestCheck_NoTextsAtAll(t *testing.T) {
	t.Parallel()

	lines := Check(context.Background(), singleTopicProject(), mustPatterns(t, "REQ-.*"), nil)
	assert.Contains(t, strings.Join(lines, "\n"), "- _REQ-1_ - One: :warning:")
}

func TestCheck_FailureDominance(t *testing.T) {
	t.Parallel()

	passing := Text{Name: "pass.txt", Content: "REQ-1: passed"}
	failing := Text{Name: "fail.txt", Content: "REQ-1: failed - broke under load"}

	t.Run("pass then fail", func(t *testing.T) {
		t.Parallel()
		lines := Check(context.Background(), singleTopicProject(), mustPatterns(t, "REQ-.*"),
			[]Text{passing, failing})
		joined := strings.Join(lines, "\n")
		assert.Contains(t, joined, ":x:")
		assert.Contains(t, joined, "  - broke under load")
	})

	t.Run("fail then pass", func(t *testing.T) {
		t.Parallel()
		// A later pass never displaces a recorded failure.
		lines := Check(context.Background(), singleTopicProject(), mustPatterns(t, "REQ-.*"),
			[]Text{failing, passing})
		joined := strings.Join(lines, "\n")
		assert.Contains(t, joined, ":x:")
		assert.Contains(t, joined, "  - broke under load")
		assert.NotContains(t, joined, ":white_check_mark:")
	})
}

func TestCheck_LastFailingTextWinsWholesale(t *testing.T) {
	t.Parallel()

	// Known quirk, preserved on purpose: error messages do not accumulate
	// across failing texts. The last failing text replaces everything the
	// earlier one recorded.
	first := Text{Name: "first", Content: "REQ-1: failed - early message"}
	second := Text{Name: "second", Content: "REQ-1: failed - late message"}

	lines := Check(context.Background(), singleTopicProject(), mustPatterns(t, "REQ-.*"),
		[]Text{first, second})
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "  - late message")
	assert.NotContains(t, joined, "early message")
}

func TestCheck_CollectsEveryMatchingLine(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"REQ-1: failed - first error",
		"some unrelated output",
		"REQ-1: failed - second error",
	}, "\n")
	lines := Check(context.Background(), singleTopicProject(), mustPatterns(t, "REQ-.*"),
		[]Text{{Name: "a", Content: content}})

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "  - first error")
	assert.Contains(t, joined, "  - second error")
}

func TestCheck_FailedLineWithoutSeparator(t *testing.T) {
	t.Parallel()

	// The marker alone flips the status; without a "-" separator there is
	// no message to extract.
	lines := Check(context.Background(), singleTopicProject(), mustPatterns(t, "REQ-.*"),
		[]Text{{Name: "a", Content: "REQ-1: failed"}})

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "- _REQ-1_ - One: :x:")
	assert.NotContains(t, joined, "\n  - ")
}

func TestCheck_PrunesOutOfScopeSubtrees(t *testing.T) {
	t.Parallel()

	project := catalog.NewProject()
	project.Name = "Pruned"
	project.Version = catalog.Version{Major: 1}
	project.Description = "d"

	inScope := catalog.NewTopic("Covered")
	inScope.Requirements.Set("REQ-1", catalog.Requirement{Name: "One", Description: "d"})

	outOfScope := catalog.NewTopic("Internal only")
	outOfScope.Requirements.Set("INT-1", catalog.Requirement{Name: "Internal", Description: "d"})
	outSub := catalog.NewTopic("Internal nested")
	outSub.Requirements.Set("INT-2", catalog.Requirement{Name: "Deep internal", Description: "d"})
	outOfScope.Subtopics.Set("N1", outSub)

	project.Topics.Set("COV", inScope)
	project.Topics.Set("INT", outOfScope)

	lines := Check(context.Background(), project, mustPatterns(t, "REQ-.*"), nil)
	joined := strings.Join(lines, "\n")

	assert.Contains(t, joined, "## _COV_ - Covered")
	assert.NotContains(t, joined, "INT", "out-of-scope subtree must produce zero lines")
	assert.NotContains(t, joined, "Internal")
}

func TestCheck_DeepRequirementKeepsAncestors(t *testing.T) {
	t.Parallel()

	// A topic with no requirements of its own survives pruning when a
	// descendant holds an in-scope requirement.
	project := catalog.NewProject()
	project.Name = "Deep"
	project.Version = catalog.Version{Major: 1}
	project.Description = "d"

	leaf := catalog.NewTopic("Leaf")
	leaf.Requirements.Set("REQ-42", catalog.Requirement{Name: "Answer", Description: "d"})
	middle := catalog.NewTopic("Middle")
	middle.Subtopics.Set("LEAF", leaf)
	root := catalog.NewTopic("Root")
	root.Subtopics.Set("MID", middle)
	project.Topics.Set("ROOT", root)

	lines := Check(context.Background(), project, mustPatterns(t, "REQ-.*"), nil)
	joined := strings.Join(lines, "\n")

	assert.Contains(t, joined, "## _ROOT_ - Root")
	assert.Contains(t, joined, "### _MID_ - Middle")
	assert.Contains(t, joined, "#### _LEAF_ - Leaf")
	assert.Contains(t, joined, "- _REQ-42_ - Answer: :warning:")
}

func TestCheck_OutOfScopeRequirementStillListed(t *testing.T) {
	t.Parallel()

	// Requirements of a surviving topic are all listed; only status
	// recording is scope-filtered, so out-of-scope ids stay unknown even
	// when the result text mentions them.
	project := singleTopicProject()
	topic, _ := project.Topics.Get("T1")
	topic.Requirements.Set("INT-1", catalog.Requirement{Name: "Internal", Description: "d"})

	lines := Check(context.Background(), project, mustPatterns(t, "REQ-.*"),
		[]Text{{Name: "a", Content: "REQ-1: passed\nINT-1: passed"}})
	joined := strings.Join(lines, "\n")

	assert.Contains(t, joined, "- _REQ-1_ - One: :white_check_mark:")
	assert.Contains(t, joined, "- _INT-1_ - Internal: :warning:")
}

func TestCheck_TopicNameEmittedAsAuthored(t *testing.T) {
	t.Parallel()

	// The topic id is trimmed in the heading; the topic name is not.
	project := catalog.NewProject()
	project.Name = "Verbatim"
	project.Version = catalog.Version{Major: 1}
	project.Description = "d"

	topic := catalog.NewTopic("  Padded name ")
	topic.Requirements.Set("REQ-1", catalog.Requirement{Name: "One", Description: "d"})
	project.Topics.Set(" T1 ", topic)

	lines := Check(context.Background(), project, mustPatterns(t, "REQ-.*"), nil)
	assert.Contains(t, lines, "## _T1_ -   Padded name ")
}

func TestCheck_PatternMatchesSubstring(t *testing.T) {
	t.Parallel()

	lines := Check(context.Background(), singleTopicProject(), mustPatterns(t, "EQ-1"),
		[]Text{{Name: "a", Content: "REQ-1: passed"}})
	assert.Contains(t, strings.Join(lines, "\n"), ":white_check_mark:")
}

func TestCompilePatterns(t *testing.T) {
	t.Parallel()

	t.Run("invalid pattern is fatal", func(t *testing.T) {
		t.Parallel()
		_, err := CompilePatterns([]string{"REQ-(", "REQ-.*"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid requirement pattern")
	})

	t.Run("empty set rejected", func(t *testing.T) {
		t.Parallel()
		_, err := CompilePatterns(nil)
		assert.Error(t, err)
	})
}

func TestLoadTexts_OrderAndFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.txt")
	pathB := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(pathA, []byte("alpha"), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte("beta"), 0o644))

	texts, err := LoadTexts(context.Background(), []string{pathB, pathA})
	require.NoError(t, err)
	require.Len(t, texts, 2)
	assert.Equal(t, "beta", texts[0].Content, "caller-supplied order must be preserved")
	assert.Equal(t, "alpha", texts[1].Content)

	_, err = LoadTexts(context.Background(), []string{pathA, filepath.Join(dir, "missing.txt")})
	assert.Error(t, err, "one unreadable text aborts the whole check")
}
