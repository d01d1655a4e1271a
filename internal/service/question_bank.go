package service

import (
	"fmt"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
)

const minChoices = 2

// QuestionBank holds the questions of a single session in play order.
type QuestionBank struct {
	items []entities.Question
}

// BuildQuestionBank validates and copies raw questions into a bank.
// When shuffleQuestions is set, the copied order is permuted with shuffler.
func BuildQuestionBank(raw []entities.RawQuestion, shuffleQuestions bool, shuffler *Shuffler) (*QuestionBank, error) {
	if err := validateRawQuestions(raw); err != nil {
		return nil, err
	}

	items := make([]entities.Question, 0, len(raw))
	for _, rq := range raw {
		items = append(items, entities.NewQuestion(rq))
	}

	if shuffleQuestions {
		ShuffleSlice(shuffler, items)
	}

	return &QuestionBank{items: items}, nil
}

// Len returns the number of questions in the bank.
func (b *QuestionBank) Len() int {
	return len(b.items)
}

// Question returns a copy of the question at index i.
func (b *QuestionBank) Question(i int) entities.Question {
	return b.items[i].Clone()
}

func validateRawQuestions(raw []entities.RawQuestion) error {
	verr := &entities.ValidationError{}

	if len(raw) == 0 {
		verr.Add("questions", "must include at least one entry")
		return verr
	}

	for i, q := range raw {
		prefix := fmt.Sprintf("questions[%d]", i)
		if len(q.Choices) < minChoices {
			verr.Add(prefix+".choices", fmt.Sprintf("must include at least %d entries, got %d", minChoices, len(q.Choices)))
			continue
		}
		if q.Answer < 0 || q.Answer >= len(q.Choices) {
			verr.Add(prefix+".answer", fmt.Sprintf("index %d out of range [0, %d)", q.Answer, len(q.Choices)))
		}
	}

	return verr.Err()
}
