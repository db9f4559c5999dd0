package extraction

// QuestionRecord is one extracted question. question_label is the
// reconciliation key; uniqueness is not enforced by the extractor.
type QuestionRecord struct {
	QuestionLabel string   `json:"question_label"`
	Text          string   `json:"text"`
	Choices       []string `json:"choices"`
}

// SolutionRecord is one extracted solution keyed by question_label
type SolutionRecord struct {
	QuestionLabel  string `json:"question_label"`
	AnswerKey      string `json:"answer_key"`
	WorkedSolution string `json:"worked_solution"`
	Explanation    string `json:"explanation"`
	VisualPath     string `json:"visual_path,omitempty"`
}

// QuestionResult is the stored payload of a completed question set.
// RawText/ParseError are only populated on the degraded no-recovery path.
type QuestionResult struct {
	Questions  []QuestionRecord `json:"questions"`
	RawText    string           `json:"raw_text,omitempty"`
	ParseError bool             `json:"parse_error,omitempty"`
}

// SolutionResult is the stored payload of a completed solution set
type SolutionResult struct {
	Solutions  []SolutionRecord `json:"solutions"`
	RawText    string           `json:"raw_text,omitempty"`
	ParseError bool             `json:"parse_error,omitempty"`
}
