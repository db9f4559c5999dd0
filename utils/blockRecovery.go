package utils

import (
	"encoding/json"
	"log"
	extractionModels "paperscan/models/extraction"
	"regexp"
	"strings"
)

// The parser service is asked for clean JSON but frequently wraps it in
// markdown fences, prose or repeats it once per source document. These
// helpers recover every embedded block instead of trusting the first one.

// matchBraces returns the index of the closing brace for the object opened
// at start, or -1 if the braces never balance. Counting is plain brace depth,
// not string-aware; an unbalanced candidate simply fails the JSON parse.
func matchBraces(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// scanArrayBlocks finds every JSON object in raw that opens with the target
// key as an array ({ "key": [ ... ] }) and returns the raw elements of all
// such arrays, in order of appearance. Candidates that fail to parse are
// logged and skipped, and the scan advances past them.
func scanArrayBlocks(raw, key string) []json.RawMessage {
	pattern := regexp.MustCompile(`\{\s*"` + key + `"\s*:\s*\[`)

	var elements []json.RawMessage
	offset := 0
	for offset < len(raw) {
		loc := pattern.FindStringIndex(raw[offset:])
		if loc == nil {
			break
		}
		start := offset + loc[0]

		end := matchBraces(raw, start)
		if end < 0 {
			// Truncated candidate; later blocks may still balance
			log.Printf("Unbalanced braces after offset %d, skipping %s candidate", start, key)
			offset = start + 1
			continue
		}

		var block map[string]json.RawMessage
		if err := json.Unmarshal([]byte(raw[start:end+1]), &block); err != nil {
			log.Printf("Skipping unparseable %s block at offset %d: %v", key, start, err)
			offset = start + 1
			continue
		}

		var blockElements []json.RawMessage
		if err := json.Unmarshal(block[key], &blockElements); err != nil {
			log.Printf("Key %q at offset %d is not an array, skipping", key, start)
			offset = start + 1
			continue
		}

		elements = append(elements, blockElements...)
		offset = end + 1
	}

	return elements
}

// RecoverQuestionBlocks recovers structured question records from raw parser
// output. It never returns an error: when no JSON block is found it degrades
// to a line-oriented fallback, and ultimately to an empty result carrying
// the raw text so the caller can persist it for inspection.
func RecoverQuestionBlocks(raw string) extractionModels.QuestionResult {
	questions := []extractionModels.QuestionRecord{}
	for _, element := range scanArrayBlocks(raw, "questions") {
		var record extractionModels.QuestionRecord
		if err := json.Unmarshal(element, &record); err != nil {
			log.Printf("Skipping malformed question element: %v", err)
			continue
		}
		if record.Choices == nil {
			record.Choices = []string{}
		}
		questions = append(questions, record)
	}
	if len(questions) > 0 {
		return extractionModels.QuestionResult{Questions: questions}
	}

	questions = fallbackParseQuestions(raw)
	if len(questions) > 0 {
		log.Printf("Recovered %d questions via line fallback", len(questions))
		return extractionModels.QuestionResult{Questions: questions}
	}

	log.Println("No questions recoverable from parser output")
	return extractionModels.QuestionResult{
		Questions:  []extractionModels.QuestionRecord{},
		RawText:    raw,
		ParseError: true,
	}
}

// RecoverSolutionBlocks is the solution-side counterpart of
// RecoverQuestionBlocks, with the same degradation policy.
func RecoverSolutionBlocks(raw string) extractionModels.SolutionResult {
	solutions := []extractionModels.SolutionRecord{}
	for _, element := range scanArrayBlocks(raw, "solutions") {
		var record extractionModels.SolutionRecord
		if err := json.Unmarshal(element, &record); err != nil {
			log.Printf("Skipping malformed solution element: %v", err)
			continue
		}
		solutions = append(solutions, record)
	}
	if len(solutions) > 0 {
		return extractionModels.SolutionResult{Solutions: solutions}
	}

	solutions = fallbackParseSolutions(raw)
	if len(solutions) > 0 {
		log.Printf("Recovered %d solutions via line fallback", len(solutions))
		return extractionModels.SolutionResult{Solutions: solutions}
	}

	log.Println("No solutions recoverable from parser output")
	return extractionModels.SolutionResult{
		Solutions:  []extractionModels.SolutionRecord{},
		RawText:    raw,
		ParseError: true,
	}
}

var (
	questionStartPattern = regexp.MustCompile(`^\s*(?:Q\s*)?(\d+)\s*[.)]\s*(.*)`)
	choiceLinePattern    = regexp.MustCompile(`^\s*\(?([A-E])[.)]\s*(.*)`)
)

// fallbackParseQuestions scans for numbered question blocks and lettered
// choice lines. Blocks without a single recognized choice line are dropped;
// on this path a block without choices is far more likely a stray heading
// than a question.
func fallbackParseQuestions(raw string) []extractionModels.QuestionRecord {
	var questions []extractionModels.QuestionRecord

	var current *extractionModels.QuestionRecord
	var textLines []string

	flush := func() {
		if current == nil {
			return
		}
		if len(current.Choices) > 0 {
			current.Text = strings.TrimSpace(strings.Join(textLines, "\n"))
			questions = append(questions, *current)
		}
		current = nil
		textLines = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		if m := questionStartPattern.FindStringSubmatch(line); m != nil {
			flush()
			current = &extractionModels.QuestionRecord{
				QuestionLabel: m[1],
				Choices:       []string{},
			}
			textLines = []string{m[2]}
			continue
		}
		if current == nil {
			continue
		}
		if choiceLinePattern.MatchString(line) {
			current.Choices = append(current.Choices, strings.TrimSpace(line))
			continue
		}
		// Body lines before the first choice belong to the question text
		if len(current.Choices) == 0 {
			textLines = append(textLines, line)
		}
	}
	flush()

	return questions
}

var (
	answerKeyLinePattern  = regexp.MustCompile(`^\s*(\d+)\s*[.)\-:]?\s*\(?([A-E])\)?\s*$`)
	solutionBlockPattern  = regexp.MustCompile(`(?i)^\s*(?:solution|answer)\s*(?:for|to)?\s*(?:question\s*)?(\d+)\s*[:.)\-]?\s*(.*)`)
	questionHeaderPattern = regexp.MustCompile(`^\s*(\d+)\s*[.)]`)
)

// fallbackParseSolutions merges two line-oriented passes keyed by label:
// bare answer-key lines ("12. C") and labeled worked-solution blocks
// ("Solution for 12: ...").
func fallbackParseSolutions(raw string) []extractionModels.SolutionRecord {
	answerKeys := map[string]string{}
	workedSolutions := map[string]string{}
	var labelOrder []string
	seen := map[string]bool{}

	note := func(label string) {
		if !seen[label] {
			seen[label] = true
			labelOrder = append(labelOrder, label)
		}
	}

	lines := strings.Split(raw, "\n")

	var blockLabel string
	var blockLines []string

	flushBlock := func() {
		if blockLabel == "" {
			return
		}
		body := strings.TrimSpace(strings.Join(blockLines, "\n"))
		if body != "" && workedSolutions[blockLabel] == "" {
			workedSolutions[blockLabel] = body
		}
		blockLabel = ""
		blockLines = nil
	}

	for _, line := range lines {
		if m := answerKeyLinePattern.FindStringSubmatch(line); m != nil {
			flushBlock()
			note(m[1])
			if answerKeys[m[1]] == "" {
				answerKeys[m[1]] = m[2]
			}
			continue
		}
		if m := solutionBlockPattern.FindStringSubmatch(line); m != nil {
			flushBlock()
			note(m[1])
			blockLabel = m[1]
			blockLines = []string{m[2]}
			continue
		}
		if blockLabel != "" {
			// A fresh numbered header ends the current block
			if questionHeaderPattern.MatchString(line) {
				flushBlock()
				continue
			}
			blockLines = append(blockLines, line)
		}
	}
	flushBlock()

	var solutions []extractionModels.SolutionRecord
	for _, label := range labelOrder {
		solutions = append(solutions, extractionModels.SolutionRecord{
			QuestionLabel:  label,
			AnswerKey:      answerKeys[label],
			WorkedSolution: workedSolutions[label],
		})
	}
	return solutions
}
