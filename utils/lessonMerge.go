package utils

import (
	"fmt"
	extractionModels "paperscan/models/extraction"
	lessonModels "paperscan/models/lesson"
	"regexp"
	"sort"
	"strings"
)

// MergedItem is one question joined with its matched solution, the unit the
// lesson creation modes operate on.
type MergedItem struct {
	Label          string
	QuestionText   string
	Choices        []string
	AnswerKey      string
	WorkedSolution string
	Explanation    string
	VisualPath     string
	HasSolution    bool
}

// LessonRange is one caller-supplied manual split range, 1-based inclusive
type LessonRange struct {
	Start        int    `json:"start" validate:"required,min=1"`
	End          int    `json:"end" validate:"required,min=1"`
	Name         string `json:"name" validate:"required"`
	SectionLabel string `json:"section_label"`
}

// NormalizeLabel canonicalizes a question label for matching
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// MergeQuestionSolutionRecords joins questions and solutions by label.
// The solution map is built once; the first solution per label wins.
// A question without a matching solution still produces an item, with
// HasSolution false and no solution fields.
func MergeQuestionSolutionRecords(questions []extractionModels.QuestionRecord, solutions []extractionModels.SolutionRecord) []MergedItem {
	solutionsByLabel := make(map[string]extractionModels.SolutionRecord, len(solutions))
	for _, sol := range solutions {
		key := NormalizeLabel(sol.QuestionLabel)
		if _, exists := solutionsByLabel[key]; !exists {
			solutionsByLabel[key] = sol
		}
	}

	items := make([]MergedItem, 0, len(questions))
	for _, question := range questions {
		item := MergedItem{
			Label:        strings.TrimSpace(question.QuestionLabel),
			QuestionText: question.Text,
			Choices:      question.Choices,
		}
		if sol, ok := solutionsByLabel[NormalizeLabel(question.QuestionLabel)]; ok {
			item.AnswerKey = sol.AnswerKey
			item.WorkedSolution = sol.WorkedSolution
			item.Explanation = sol.Explanation
			item.VisualPath = sol.VisualPath
			item.HasSolution = true
		}
		items = append(items, item)
	}
	return items
}

// ChunkMergedItems splits items into fixed-size windows for auto-split mode
func ChunkMergedItems(items []MergedItem, size int) [][]MergedItem {
	if size <= 0 {
		return [][]MergedItem{items}
	}
	var chunks [][]MergedItem
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// ValidateLessonRanges checks manual split ranges against the merged item
// count. Any violation rejects the whole batch; coverage gaps only produce
// warnings.
func ValidateLessonRanges(ranges []LessonRange, totalItems int) ([]string, error) {
	if len(ranges) == 0 {
		return nil, fmt.Errorf("at least one range is required")
	}
	if len(ranges) > totalItems {
		return nil, fmt.Errorf("range count %d exceeds item count %d", len(ranges), totalItems)
	}

	for i, r := range ranges {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("range %d has an empty name", i+1)
		}
		if r.Start < 1 || r.Start > r.End || r.End > totalItems {
			return nil, fmt.Errorf("range %d (%d-%d) is out of bounds for %d items", i+1, r.Start, r.End, totalItems)
		}
	}

	sorted := make([]LessonRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	covered := 0
	for i, r := range sorted {
		if i > 0 && r.Start <= sorted[i-1].End {
			return nil, fmt.Errorf("ranges %d-%d and %d-%d overlap", sorted[i-1].Start, sorted[i-1].End, r.Start, r.End)
		}
		covered += r.End - r.Start + 1
	}

	var warnings []string
	if covered < totalItems {
		warnings = append(warnings, fmt.Sprintf("%d items uncovered by the supplied ranges", totalItems-covered))
	}
	return warnings, nil
}

// LabelRangeSummary renders a lesson's "first-last" label range. Items
// without a label fall back to their 1-based position; startPos is the
// position of the first item within the full merged list.
func LabelRangeSummary(items []MergedItem, startPos int) string {
	if len(items) == 0 {
		return ""
	}
	first := items[0].Label
	if first == "" {
		first = fmt.Sprintf("%d", startPos)
	}
	last := items[len(items)-1].Label
	if last == "" {
		last = fmt.Sprintf("%d", startPos+len(items)-1)
	}
	if first == last {
		return first
	}
	return first + "-" + last
}

var choicePrefixPattern = regexp.MustCompile(`^\s*(?:\(([a-zA-Z])\)|([a-zA-Z])[.)]|\$([a-zA-Z])\$)\s*`)

// SplitChoiceLabel extracts the lettered sub-label from a choice's own text
// prefix ("(a)", "a.", "a)", "$a$", case-insensitive) and strips it from
// the display text. Falls back to the positional letter when no prefix
// matches.
func SplitChoiceLabel(choice string, position int) (string, string) {
	if m := choicePrefixPattern.FindStringSubmatch(choice); m != nil {
		letter := m[1] + m[2] + m[3] // only one group matches
		rest := strings.TrimSpace(choice[len(m[0]):])
		return strings.ToLower(letter), rest
	}
	return string(rune('a' + position)), strings.TrimSpace(choice)
}

// BuildLessonToc produces the lightweight table-of-contents for one lesson:
// an entry per item, with nested lettered entries for its choices.
func BuildLessonToc(items []MergedItem) []lessonModels.TocEntry {
	entries := make([]lessonModels.TocEntry, 0, len(items))
	for _, item := range items {
		entry := lessonModels.TocEntry{
			Label: item.Label,
			Text:  item.QuestionText,
		}
		for pos, choice := range item.Choices {
			label, text := SplitChoiceLabel(choice, pos)
			entry.Children = append(entry.Children, lessonModels.TocEntry{
				Label: label,
				Text:  text,
			})
		}
		entries = append(entries, entry)
	}
	return entries
}
