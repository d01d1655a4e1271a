package service

import (
	"github.com/google/uuid"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
)

// SessionController drives a single playthrough of a question bank.
//
// Every question must be answered exactly once before the session advances to
// the next one. Operations that fail leave the session untouched.
//
// SelectAnswer resolves display positions against the order returned by the
// most recent CurrentChoicePresentation call, so callers must render exactly
// that order and discard any earlier one.
type SessionController struct {
	id           uuid.UUID
	bank         *QuestionBank
	shuffler     *Shuffler
	currentIndex int
	score        int
	answered     bool
	presentation entities.ChoicePresentation // mapping last shown for the current question
	lastResult   *entities.AnswerResult
}

// NewSessionController starts a session over bank.
func NewSessionController(bank *QuestionBank, shuffler *Shuffler) *SessionController {
	s := &SessionController{shuffler: shuffler}
	s.start(bank)
	return s
}

func (s *SessionController) start(bank *QuestionBank) {
	s.id = uuid.New()
	s.bank = bank
	s.currentIndex = 0
	s.score = 0
	s.answered = false
	s.presentation = nil
	s.lastResult = nil
}

// Restart begins a new playthrough over a freshly built bank.
// It is legal from any state.
func (s *SessionController) Restart(bank *QuestionBank) error {
	if bank == nil {
		return &entities.IllegalStateError{Op: "restart", Reason: "question bank is required"}
	}
	s.start(bank)
	return nil
}

// ID identifies the current playthrough. It changes on restart.
func (s *SessionController) ID() uuid.UUID {
	return s.id
}

// CurrentIndex returns the zero-based index of the current question.
func (s *SessionController) CurrentIndex() int {
	return s.currentIndex
}

// Score returns the number of correctly answered questions.
func (s *SessionController) Score() int {
	return s.score
}

// Total returns the number of questions in the session.
func (s *SessionController) Total() int {
	return s.bank.Len()
}

// Answered reports whether the current question has received a selection.
func (s *SessionController) Answered() bool {
	return s.answered
}

// Finished reports whether every question has been answered and advanced past.
func (s *SessionController) Finished() bool {
	return s.currentIndex == s.bank.Len()
}

// LastResult returns the result of the selection on the current question, if any.
func (s *SessionController) LastResult() (entities.AnswerResult, bool) {
	if !s.answered || s.lastResult == nil {
		return entities.AnswerResult{}, false
	}
	return *s.lastResult, true
}

// CurrentQuestion returns a copy of the current question.
func (s *SessionController) CurrentQuestion() (entities.Question, error) {
	if s.Finished() {
		return entities.Question{}, &entities.IllegalStateError{Op: "current question", Reason: "session is finished"}
	}
	return s.bank.Question(s.currentIndex), nil
}

// CurrentChoicePresentation computes a fresh display order for the current
// question and makes it the active order. It is not a pure query: any order
// returned by an earlier call stops being valid.
func (s *SessionController) CurrentChoicePresentation(shuffleAnswers bool) (entities.ChoicePresentation, error) {
	if s.Finished() {
		return nil, &entities.IllegalStateError{Op: "choice presentation", Reason: "session is finished"}
	}

	p := entities.NewChoicePresentation(s.bank.Question(s.currentIndex))
	if shuffleAnswers {
		ShuffleSlice(s.shuffler, p)
	}

	s.presentation = p
	return p.Clone(), nil
}

// ActivePresentation returns the display order last issued for the current
// question. Before any presentation is issued the original order applies.
func (s *SessionController) ActivePresentation() (entities.ChoicePresentation, error) {
	if s.Finished() {
		return nil, &entities.IllegalStateError{Op: "active presentation", Reason: "session is finished"}
	}
	return s.activePresentation().Clone(), nil
}

func (s *SessionController) activePresentation() entities.ChoicePresentation {
	if s.presentation == nil {
		return entities.NewChoicePresentation(s.bank.Question(s.currentIndex))
	}
	return s.presentation
}

// SelectAnswer records the choice at displayPosition of the active
// presentation for the current question.
func (s *SessionController) SelectAnswer(displayPosition int) (entities.AnswerResult, error) {
	const op = "select answer"

	if s.Finished() {
		return entities.AnswerResult{}, &entities.IllegalStateError{Op: op, Reason: "session is finished"}
	}
	if s.answered {
		return entities.AnswerResult{}, &entities.IllegalStateError{Op: op, Reason: "question already answered"}
	}

	p := s.activePresentation()
	if displayPosition < 0 || displayPosition >= len(p) {
		return entities.AnswerResult{}, &entities.IllegalStateError{Op: op, Reason: "display position out of range"}
	}

	q := s.bank.items[s.currentIndex]
	selected := p[displayPosition].OriginalIndex

	result := entities.AnswerResult{
		Correct:         selected == q.CorrectIndex,
		SelectedIndex:   selected,
		CorrectIndex:    q.CorrectIndex,
		DisplayPosition: displayPosition,
	}

	s.answered = true
	if result.Correct {
		s.score++
	}
	s.lastResult = &result

	return result, nil
}

// Advance moves to the next question. The current question must be answered.
func (s *SessionController) Advance() error {
	const op = "advance"

	if s.Finished() {
		return &entities.IllegalStateError{Op: op, Reason: "session is finished"}
	}
	if !s.answered {
		return &entities.IllegalStateError{Op: op, Reason: "current question is not answered"}
	}

	s.currentIndex++
	s.answered = false
	s.presentation = nil
	s.lastResult = nil

	return nil
}
