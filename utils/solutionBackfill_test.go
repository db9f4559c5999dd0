package utils

import (
	extractionModels "paperscan/models/extraction"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const backfillCorpus = "%% ===== Document 1 =====\n" +
	"5. (B)\n" +
	"Use the quadratic formula directly.\n" +
	"6. (C)\n" +
	"![](https://cdn.example.com/fig6.png)\n" +
	"$\\begin{gathered}\nx = 1 \\\\\ny = 2\n\\end{gathered}$\n" +
	"7. (A)\n" +
	"Short note.\n"

func TestBackfillSetsVisualPathAndWorkedSolution(t *testing.T) {
	solutions := []extractionModels.SolutionRecord{
		{QuestionLabel: "6", AnswerKey: "C"},
	}

	BackfillSolutionDetails(solutions, backfillCorpus)

	require.Equal(t, "https://cdn.example.com/fig6.png", solutions[0].VisualPath)
	assert.Contains(t, solutions[0].WorkedSolution, "\\begin{gathered}")
	assert.NotContains(t, solutions[0].WorkedSolution, "fig6.png")

	normalized := NormalizeLatexBlocks(solutions[0].WorkedSolution)
	assert.Equal(t, "$\\begin{gathered} x = 1 \\\\ y = 2 \\end{gathered}$", normalized)
}

func TestBackfillVisualPathFirstMatchWins(t *testing.T) {
	solutions := []extractionModels.SolutionRecord{
		{QuestionLabel: "6", VisualPath: "https://cdn.example.com/original.png"},
	}

	BackfillSolutionDetails(solutions, backfillCorpus)

	assert.Equal(t, "https://cdn.example.com/original.png", solutions[0].VisualPath)
}

func TestBackfillWithoutImageComparesRichness(t *testing.T) {
	// Parser output is long but has no math blocks; the raw span has one
	current := strings.Repeat("prose without any math environment ", 3)
	corpus := "6. (C)\n$\\begin{aligned}\na &= b\n\\end{aligned}$\n7. (A)\nnext\n"

	solutions := []extractionModels.SolutionRecord{
		{QuestionLabel: "6", WorkedSolution: current},
	}
	BackfillSolutionDetails(solutions, corpus)

	assert.Contains(t, solutions[0].WorkedSolution, "\\begin{aligned}")
}

func TestBackfillKeepsRicherParserOutput(t *testing.T) {
	current := "A full derivation $\\begin{aligned} a &= b \\end{aligned}$ with enough length to keep."
	corpus := "6. (C)\nJust a plain restatement with no math blocks at all.\n7. (A)\nnext\n"

	solutions := []extractionModels.SolutionRecord{
		{QuestionLabel: "6", WorkedSolution: current},
	}
	BackfillSolutionDetails(solutions, corpus)

	assert.Equal(t, current, solutions[0].WorkedSolution)
}

func TestBackfillReplacesShortWorkedSolution(t *testing.T) {
	solutions := []extractionModels.SolutionRecord{
		{QuestionLabel: "5", WorkedSolution: "x=2"},
	}

	BackfillSolutionDetails(solutions, backfillCorpus)

	assert.Contains(t, solutions[0].WorkedSolution, "Use the quadratic formula directly.")
}

func TestBackfillSpanEndsAtBareNumberHeading(t *testing.T) {
	// A bare "7" line opens a span for label 7, so it must end label 6's
	// span too; "71" is not the next label and must not
	corpus := "6. (C)\nSix uses the product rule.\n71 is just a value in the text.\n7\nSeven is a different solution.\n"

	solutions := []extractionModels.SolutionRecord{
		{QuestionLabel: "6"},
	}
	BackfillSolutionDetails(solutions, corpus)

	assert.Contains(t, solutions[0].WorkedSolution, "Six uses the product rule.")
	assert.Contains(t, solutions[0].WorkedSolution, "71 is just a value in the text.")
	assert.NotContains(t, solutions[0].WorkedSolution, "Seven is a different solution.")
}

func TestBackfillSkipsUnknownLabel(t *testing.T) {
	solutions := []extractionModels.SolutionRecord{
		{QuestionLabel: "99", WorkedSolution: "left alone"},
		{QuestionLabel: "", WorkedSolution: "also left alone"},
	}

	BackfillSolutionDetails(solutions, backfillCorpus)

	assert.Equal(t, "left alone", solutions[0].WorkedSolution)
	assert.Equal(t, "also left alone", solutions[1].WorkedSolution)
}

func TestCountMathBlocks(t *testing.T) {
	assert.Equal(t, 0, countMathBlocks("no math here"))
	assert.Equal(t, 2, countMathBlocks("$\\begin{gathered}x\\end{gathered}$ $\\begin{cases}y\\end{cases}$"))
}
