package storage

import (
	"sync"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/math-quiz-bot/internal/service"
)

// ActiveQuiz is the quiz currently running in a chat.
type ActiveQuiz struct {
	Session     *service.SessionController
	Preferences entities.Preferences // preferences the session was started with
	Scope       int64                // user whose preferences and high score the quiz uses
	MessageID   int                  // message holding the current question, 0 if none
}

// QuizStorage keeps the active quiz of every chat in memory.
type QuizStorage struct {
	mu      sync.RWMutex
	quizzes map[int64]*ActiveQuiz
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		quizzes: make(map[int64]*ActiveQuiz),
	}
}

// Store saves the active quiz for a chat, replacing any previous one.
func (s *QuizStorage) Store(chatID int64, quiz *ActiveQuiz) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[chatID] = quiz
}

// Get retrieves the active quiz for a chat.
func (s *QuizStorage) Get(chatID int64) (*ActiveQuiz, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[chatID]
	return quiz, ok
}

// Delete removes the active quiz for a chat.
func (s *QuizStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.quizzes, chatID)
}

// SetMessageID records the question message of the chat's quiz and returns the previous one.
func (s *QuizStorage) SetMessageID(chatID int64, messageID int) (prev int, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quiz, ok := s.quizzes[chatID]
	if !ok {
		return 0, false
	}

	prev = quiz.MessageID
	quiz.MessageID = messageID
	return prev, prev != 0
}
