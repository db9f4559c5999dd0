package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLatexBlocksCollapsesLines(t *testing.T) {
	input := "Intro text\n$\\begin{gathered}\nx = 1 \\\\\ny = 2\n\\end{gathered}$\nOutro"
	want := "Intro text\n$\\begin{gathered} x = 1 \\\\ y = 2 \\end{gathered}$\nOutro"

	assert.Equal(t, want, NormalizeLatexBlocks(input))
}

func TestNormalizeLatexBlocksMultipleEnvironments(t *testing.T) {
	input := "$\\begin{aligned}\na &= b\n\\end{aligned}$ and $\\begin{cases}\n1\n\\end{cases}$"

	got := NormalizeLatexBlocks(input)

	assert.Equal(t, "$\\begin{aligned} a &= b \\end{aligned}$ and $\\begin{cases} 1 \\end{cases}$", got)
}

func TestNormalizeLatexBlocksIdempotent(t *testing.T) {
	inputs := []string{
		"$\\begin{gathered}\nx = 1 \\\\\ny = 2\n\\end{gathered}$",
		"plain text with no environments",
		"$\\begin{matrix} 1 & 2 \\end{matrix}$",
		"",
	}

	for _, input := range inputs {
		once := NormalizeLatexBlocks(input)
		twice := NormalizeLatexBlocks(once)
		assert.Equal(t, once, twice, "normalizer must be idempotent for %q", input)
	}
}

func TestNormalizeLatexBlocksLeavesInlineMathAlone(t *testing.T) {
	input := "The value $x^2 + 1$ stays untouched"

	assert.Equal(t, input, NormalizeLatexBlocks(input))
}
