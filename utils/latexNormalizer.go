package utils

import (
	"regexp"
	"strings"
)

var latexBlockPattern = regexp.MustCompile(`(?s)\$\\begin\{([a-zA-Z*]+)\}(.*?)\\end\{([a-zA-Z*]+)\}\$`)

// NormalizeLatexBlocks re-flows every $\begin{env}...\end{env}$ block in the
// text into single-line form: internal line breaks collapse and each line's
// surrounding whitespace becomes a single joining space. Idempotent, so it
// is safe to run on already-stored records.
func NormalizeLatexBlocks(text string) string {
	return latexBlockPattern.ReplaceAllStringFunc(text, func(match string) string {
		parts := latexBlockPattern.FindStringSubmatch(match)
		envName := parts[1]
		body := parts[2]
		closeName := parts[3]

		var lines []string
		for _, line := range strings.Split(body, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed != "" {
				lines = append(lines, trimmed)
			}
		}

		return `$\begin{` + envName + `} ` + strings.Join(lines, " ") + ` \end{` + closeName + `}$`
	})
}
