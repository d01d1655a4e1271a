package entities

// RawQuestion is an unvalidated question record as delivered by a question source.
type RawQuestion struct {
	Question string   `json:"question" yaml:"question"`
	Choices  []string `json:"choices" yaml:"choices"`
	Answer   int      `json:"answer" yaml:"answer"`
}

// Question is the validated in-session representation of a raw question.
// CorrectIndex always points into Choices.
type Question struct {
	Text         string
	Choices      []string
	CorrectIndex int
}

// NewQuestion copies a raw question into a Question without aliasing its choices.
func NewQuestion(raw RawQuestion) Question {
	choices := make([]string, len(raw.Choices))
	copy(choices, raw.Choices)

	return Question{
		Text:         raw.Question,
		Choices:      choices,
		CorrectIndex: raw.Answer,
	}
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	choices := make([]string, len(q.Choices))
	copy(choices, q.Choices)
	q.Choices = choices
	return q
}

// CorrectChoice returns the text of the correct choice.
func (q Question) CorrectChoice() string {
	return q.Choices[q.CorrectIndex]
}
