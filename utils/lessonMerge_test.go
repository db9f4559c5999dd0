package utils

import (
	"fmt"
	extractionModels "paperscan/models/extraction"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeQuestionSolutionRecords(t *testing.T) {
	questions := []extractionModels.QuestionRecord{
		{QuestionLabel: "1", Text: "Q1", Choices: []string{"A. x", "B. y"}},
		{QuestionLabel: "2", Text: "Q2"},
	}
	solutions := []extractionModels.SolutionRecord{
		{QuestionLabel: "1", AnswerKey: "A", WorkedSolution: "because", Explanation: "expl", VisualPath: "img.png"},
		{QuestionLabel: "1", AnswerKey: "Z"}, // duplicate label, must be ignored
	}

	items := MergeQuestionSolutionRecords(questions, solutions)

	require.Len(t, items, 2)

	assert.True(t, items[0].HasSolution)
	assert.Equal(t, "A", items[0].AnswerKey)
	assert.Equal(t, "because", items[0].WorkedSolution)
	assert.Equal(t, "img.png", items[0].VisualPath)

	assert.False(t, items[1].HasSolution)
	assert.Empty(t, items[1].AnswerKey)
	assert.Empty(t, items[1].WorkedSolution)
}

func TestMergeMatchesNormalizedLabels(t *testing.T) {
	questions := []extractionModels.QuestionRecord{{QuestionLabel: " 12 ", Text: "Q"}}
	solutions := []extractionModels.SolutionRecord{{QuestionLabel: "12", AnswerKey: "C"}}

	items := MergeQuestionSolutionRecords(questions, solutions)

	require.Len(t, items, 1)
	assert.True(t, items[0].HasSolution)
	assert.Equal(t, "C", items[0].AnswerKey)
}

func TestChunkMergedItemsAutoSplit(t *testing.T) {
	items := make([]MergedItem, 7)
	for i := range items {
		items[i].Label = fmt.Sprintf("%d", i+1)
	}

	chunks := ChunkMergedItems(items, 3)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 3)
	assert.Len(t, chunks[1], 3)
	assert.Len(t, chunks[2], 1)
	assert.Equal(t, "7", chunks[2][0].Label)
}

func TestValidateLessonRangesAccepted(t *testing.T) {
	ranges := []LessonRange{
		{Start: 1, End: 5, Name: "Part 1"},
		{Start: 6, End: 10, Name: "Part 2"},
	}

	warnings, err := ValidateLessonRanges(ranges, 10)

	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidateLessonRangesOverlapRejected(t *testing.T) {
	ranges := []LessonRange{
		{Start: 1, End: 5, Name: "Part 1"},
		{Start: 4, End: 10, Name: "Part 2"},
	}

	_, err := ValidateLessonRanges(ranges, 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlap")
}

func TestValidateLessonRangesGapWarning(t *testing.T) {
	ranges := []LessonRange{{Start: 1, End: 5, Name: "Part 1"}}

	warnings, err := ValidateLessonRanges(ranges, 10)

	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "5 items uncovered")
}

func TestValidateLessonRangesBoundsAndNames(t *testing.T) {
	_, err := ValidateLessonRanges([]LessonRange{{Start: 0, End: 3, Name: "bad"}}, 10)
	assert.Error(t, err)

	_, err = ValidateLessonRanges([]LessonRange{{Start: 2, End: 1, Name: "bad"}}, 10)
	assert.Error(t, err)

	_, err = ValidateLessonRanges([]LessonRange{{Start: 1, End: 11, Name: "bad"}}, 10)
	assert.Error(t, err)

	_, err = ValidateLessonRanges([]LessonRange{{Start: 1, End: 3, Name: "  "}}, 10)
	assert.Error(t, err)

	_, err = ValidateLessonRanges([]LessonRange{{Start: 1, End: 1, Name: "a"}, {Start: 2, End: 2, Name: "b"}}, 1)
	assert.Error(t, err)
}

func TestLabelRangeSummary(t *testing.T) {
	items := []MergedItem{{Label: "3"}, {Label: "4"}, {Label: "5"}}
	assert.Equal(t, "3-5", LabelRangeSummary(items, 3))

	// Missing labels fall back to 1-based positions
	unlabeled := []MergedItem{{}, {}}
	assert.Equal(t, "4-5", LabelRangeSummary(unlabeled, 4))

	single := []MergedItem{{Label: "9"}}
	assert.Equal(t, "9", LabelRangeSummary(single, 1))

	assert.Equal(t, "", LabelRangeSummary(nil, 1))
}

func TestSplitChoiceLabel(t *testing.T) {
	tests := []struct {
		choice    string
		position  int
		wantLabel string
		wantText  string
	}{
		{"(a) first option", 0, "a", "first option"},
		{"B. second option", 1, "b", "second option"},
		{"c) third option", 2, "c", "third option"},
		{"$d$ fourth option", 3, "d", "fourth option"},
		{"no prefix at all", 3, "d", "no prefix at all"},
	}

	for _, tc := range tests {
		label, text := SplitChoiceLabel(tc.choice, tc.position)
		assert.Equal(t, tc.wantLabel, label, "choice %q", tc.choice)
		assert.Equal(t, tc.wantText, text, "choice %q", tc.choice)
	}
}

func TestBuildLessonToc(t *testing.T) {
	items := []MergedItem{
		{Label: "1", QuestionText: "Q1", Choices: []string{"(a) one", "(b) two"}},
		{Label: "2", QuestionText: "Q2"},
	}

	toc := BuildLessonToc(items)

	require.Len(t, toc, 2)
	assert.Equal(t, "1", toc[0].Label)
	require.Len(t, toc[0].Children, 2)
	assert.Equal(t, "a", toc[0].Children[0].Label)
	assert.Equal(t, "one", toc[0].Children[0].Text)
	assert.Empty(t, toc[1].Children)
}
