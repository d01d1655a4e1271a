package entities

// Choice is a single answer choice as rendered on screen.
type Choice struct {
	DisplayText   string // text shown on the choice button
	OriginalIndex int    // index of the choice in Question.Choices
}

// ChoicePresentation maps display positions to original choice indexes.
type ChoicePresentation []Choice

// NewChoicePresentation returns choices in their original order.
func NewChoicePresentation(q Question) ChoicePresentation {
	p := make(ChoicePresentation, len(q.Choices))
	for i, text := range q.Choices {
		p[i] = Choice{DisplayText: text, OriginalIndex: i}
	}
	return p
}

// PositionOf returns the display position of the given original index, or -1.
func (p ChoicePresentation) PositionOf(originalIndex int) int {
	for pos, c := range p {
		if c.OriginalIndex == originalIndex {
			return pos
		}
	}
	return -1
}

// Clone returns a copy of the presentation.
func (p ChoicePresentation) Clone() ChoicePresentation {
	if p == nil {
		return nil
	}
	out := make(ChoicePresentation, len(p))
	copy(out, p)
	return out
}

// AnswerResult is the outcome of selecting an answer.
type AnswerResult struct {
	Correct         bool // whether the selected choice was the correct one
	SelectedIndex   int  // original index of the selected choice
	CorrectIndex    int  // original index of the correct choice
	DisplayPosition int  // display position the selection was made at
}
