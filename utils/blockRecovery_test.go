package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverQuestionBlocksMultipleBlocks(t *testing.T) {
	raw := "Here is the first batch of questions I found:\n\n" +
		`{"questions":[{"question_label":"1","text":"Q1","choices":["A. x","B. y"]}]}` +
		"\n\nAnd continuing with the next document:\n\n" +
		`{"questions":[{"question_label":"2","text":"Q2","choices":[]}]}` +
		"\n\nThat is everything."

	result := RecoverQuestionBlocks(raw)

	require.Len(t, result.Questions, 2)
	assert.Equal(t, "1", result.Questions[0].QuestionLabel)
	assert.Equal(t, "Q1", result.Questions[0].Text)
	assert.Equal(t, []string{"A. x", "B. y"}, result.Questions[0].Choices)
	assert.Equal(t, "2", result.Questions[1].QuestionLabel)
	assert.Empty(t, result.Questions[1].Choices)
	assert.False(t, result.ParseError)
	assert.Empty(t, result.RawText)
}

func TestRecoverQuestionBlocksMarkdownFence(t *testing.T) {
	raw := "```json\n" +
		`{ "questions" : [ {"question_label":"5","text":"What is x?","choices":["A) 1","B) 2"]} ] }` +
		"\n```"

	result := RecoverQuestionBlocks(raw)

	require.Len(t, result.Questions, 1)
	assert.Equal(t, "5", result.Questions[0].QuestionLabel)
}

func TestRecoverQuestionBlocksSkipsBrokenCandidate(t *testing.T) {
	raw := `{"questions": [}` + "\n some broken output \n" +
		`{"questions":[{"question_label":"3","text":"Q3","choices":["A. yes"]}]}`

	result := RecoverQuestionBlocks(raw)

	require.Len(t, result.Questions, 1)
	assert.Equal(t, "3", result.Questions[0].QuestionLabel)
}

func TestRecoverQuestionBlocksSkipsTruncatedCandidate(t *testing.T) {
	// An opening without its closing brace must not hide valid blocks
	// further down the output
	raw := `{"questions": [ the parser stopped mid-stream here` + "\n" +
		"and resumed with prose before emitting a proper block:\n" +
		`{"questions":[{"question_label":"9","text":"Q9","choices":["A. yes","B. no"]}]}`

	result := RecoverQuestionBlocks(raw)

	require.Len(t, result.Questions, 1)
	assert.Equal(t, "9", result.Questions[0].QuestionLabel)
	assert.False(t, result.ParseError)
}

func TestRecoverQuestionBlocksKeepsDuplicates(t *testing.T) {
	block := `{"questions":[{"question_label":"1","text":"Q1","choices":["A. x"]}]}`
	raw := block + "\n" + block

	result := RecoverQuestionBlocks(raw)

	// Duplicates are preserved in order; downstream matching takes the first
	require.Len(t, result.Questions, 2)
	assert.Equal(t, result.Questions[0], result.Questions[1])
}

func TestRecoverQuestionBlocksLineFallback(t *testing.T) {
	raw := "Practice Problems\n" +
		"1. What is the capital of France?\n" +
		"A. London\n" +
		"B. Paris\n" +
		"C. Rome\n" +
		"2) Compute 2+2.\n" +
		"(A) 3\n" +
		"(B) 4\n" +
		"Some closing note without choices\n"

	result := RecoverQuestionBlocks(raw)

	require.Len(t, result.Questions, 2)
	assert.Equal(t, "1", result.Questions[0].QuestionLabel)
	assert.Equal(t, "What is the capital of France?", result.Questions[0].Text)
	assert.Len(t, result.Questions[0].Choices, 3)
	assert.Equal(t, "2", result.Questions[1].QuestionLabel)
	assert.Len(t, result.Questions[1].Choices, 2)
}

func TestRecoverQuestionBlocksFallbackDropsChoicelessBlocks(t *testing.T) {
	raw := "1. A heading that merely looks numbered\nplain paragraph\n2. Another one\nmore prose\n"

	result := RecoverQuestionBlocks(raw)

	assert.Empty(t, result.Questions)
	assert.True(t, result.ParseError)
	assert.Equal(t, raw, result.RawText)
}

func TestRecoverQuestionBlocksDegradedResult(t *testing.T) {
	raw := "The parser returned nothing useful at all."

	result := RecoverQuestionBlocks(raw)

	require.NotNil(t, result.Questions)
	assert.Empty(t, result.Questions)
	assert.True(t, result.ParseError)
	assert.Equal(t, raw, result.RawText)
}

func TestRecoverSolutionBlocksJSON(t *testing.T) {
	raw := "Found these solutions:\n" +
		`{"solutions":[{"question_label":"1","answer_key":"B","worked_solution":"2+2=4","explanation":"arithmetic"}]}`

	result := RecoverSolutionBlocks(raw)

	require.Len(t, result.Solutions, 1)
	assert.Equal(t, "B", result.Solutions[0].AnswerKey)
	assert.Equal(t, "2+2=4", result.Solutions[0].WorkedSolution)
}

func TestRecoverSolutionBlocksLineFallback(t *testing.T) {
	raw := "Answer Key\n" +
		"1. B\n" +
		"2. (D)\n" +
		"Solution for 1: Start from the definition.\n" +
		"Expand both sides.\n" +
		"Solution for 2: Substitute x = 3.\n"

	result := RecoverSolutionBlocks(raw)

	require.Len(t, result.Solutions, 2)

	byLabel := map[string]int{}
	for i, sol := range result.Solutions {
		byLabel[sol.QuestionLabel] = i
	}
	require.Contains(t, byLabel, "1")
	require.Contains(t, byLabel, "2")

	first := result.Solutions[byLabel["1"]]
	assert.Equal(t, "B", first.AnswerKey)
	assert.Contains(t, first.WorkedSolution, "Start from the definition.")
	assert.Contains(t, first.WorkedSolution, "Expand both sides.")

	second := result.Solutions[byLabel["2"]]
	assert.Equal(t, "D", second.AnswerKey)
	assert.Contains(t, second.WorkedSolution, "Substitute x = 3.")
}

func TestMatchBraces(t *testing.T) {
	assert.Equal(t, 3, matchBraces(`{{}}`, 0))
	assert.Equal(t, -1, matchBraces(`{{}`, 0))
	assert.Equal(t, 2, matchBraces(`a{}b`, 1))
}
