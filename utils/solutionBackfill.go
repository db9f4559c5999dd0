package utils

import (
	"fmt"
	"log"
	extractionModels "paperscan/models/extraction"
	"regexp"
	"strconv"
	"strings"
)

// The parser service truncates long worked solutions and drops embedded
// figures entirely, so after recovery each solution is checked against its
// span in the raw OCR corpus and the richer version wins.

// minWorkedSolutionLen is the length below which a worked solution is
// assumed truncated and eligible for replacement from the raw span.
const minWorkedSolutionLen = 40

var (
	mathEnvPattern       = regexp.MustCompile(`\\begin\{(?:aligned|gathered|array|matrix|pmatrix|bmatrix|cases|align\*?|equation\*?)\}`)
	markdownImagePattern = regexp.MustCompile(`!\[[^\]]*\]\(([^)\s]+)\)`)
)

// countMathBlocks counts structured math environment openings, the
// "richness" measure used to pick between parser output and raw span text.
func countMathBlocks(text string) int {
	return len(mathEnvPattern.FindAllString(text, -1))
}

// BackfillSolutionDetails walks each solution record, locates its span in
// the raw corpus by label and backfills visual_path and worked_solution.
// Records whose label cannot be located are skipped silently; the batch
// never fails. Solutions are mutated in place.
func BackfillSolutionDetails(solutions []extractionModels.SolutionRecord, corpus string) {
	for i := range solutions {
		sol := &solutions[i]
		label := strings.TrimSpace(sol.QuestionLabel)
		if label == "" {
			continue
		}

		span, found := locateSolutionSpan(corpus, label)
		if !found {
			continue
		}

		if m := markdownImagePattern.FindStringSubmatchIndex(span); m != nil {
			url := span[m[2]:m[3]]
			// First image match wins across repeated backfill calls
			if sol.VisualPath == "" {
				sol.VisualPath = url
			}
			candidate := strings.TrimSpace(span[m[1]:])
			if shouldReplaceWorkedSolution(sol.WorkedSolution, candidate) {
				sol.WorkedSolution = candidate
			}
			continue
		}

		candidate := spanContentLines(span)
		if shouldReplaceWorkedSolution(sol.WorkedSolution, candidate) {
			sol.WorkedSolution = candidate
		}
	}
}

// locateSolutionSpan finds the first occurrence of the label at a line start
// (optional separator, optional parenthesized short answer) and returns the
// text up to the next numeric label or the end of the corpus.
// Alphabetic sub-labels ("1a", "1b") are not handled; the span for "1"
// swallows them. Known limitation of the numeric next-label heuristic.
func locateSolutionSpan(corpus, label string) (string, bool) {
	startPattern, err := regexp.Compile(`(?im)^\s*` + regexp.QuoteMeta(label) + `\s*[.)\-:]?\s*(?:\([^)\n]*\))?`)
	if err != nil {
		log.Printf("Bad span pattern for label %q: %v", label, err)
		return "", false
	}

	loc := startPattern.FindStringIndex(corpus)
	if loc == nil {
		log.Printf("Label %q not found in corpus, skipping backfill", label)
		return "", false
	}

	end := len(corpus)
	if n, err := strconv.Atoi(label); err == nil {
		// Same heading shape the start pattern accepts: separator, opening
		// paren or bare number at end of line. Anything else ("71") is not
		// the next label.
		nextPattern := regexp.MustCompile(`(?m)^\s*` + strconv.Itoa(n+1) + `\s*(?:[.)\-:]|\(|$)`)
		rest := corpus[loc[1]:]
		if next := nextPattern.FindStringIndex(rest); next != nil {
			end = loc[1] + next[0]
		}
	}

	return corpus[loc[1]:end], true
}

// shouldReplaceWorkedSolution applies the richness tie-break: replace when
// the current value is empty, shorter than the minimum length, or the
// candidate contains strictly more structured math blocks.
func shouldReplaceWorkedSolution(current, candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return false
	}
	current = strings.TrimSpace(current)
	if current == "" {
		return true
	}
	if len(current) < minWorkedSolutionLen {
		return true
	}
	return countMathBlocks(candidate) > countMathBlocks(current)
}

// spanContentLines strips header, image and boundary-marker lines from a
// span and joins what remains.
func spanContentLines(span string) string {
	var kept []string
	for _, line := range strings.Split(span, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "%%") || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if markdownImagePattern.MatchString(trimmed) {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// SolutionBackfillSummary is a small log helper used by the extraction job
func SolutionBackfillSummary(solutions []extractionModels.SolutionRecord) string {
	visuals := 0
	for _, sol := range solutions {
		if sol.VisualPath != "" {
			visuals++
		}
	}
	return fmt.Sprintf("%d solutions, %d with visuals", len(solutions), visuals)
}
