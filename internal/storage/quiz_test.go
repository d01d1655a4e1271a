package storage

import (
	"testing"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/math-quiz-bot/internal/service"
)

func newActiveQuiz(t *testing.T) *ActiveQuiz {
	t.Helper()
	shuffler := service.NewShuffler(1)
	bank, err := service.BuildQuestionBank([]entities.RawQuestion{
		{Question: "1+1?", Choices: []string{"1", "2"}, Answer: 1},
	}, false, shuffler)
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	return &ActiveQuiz{
		Session:     service.NewSessionController(bank, shuffler),
		Preferences: entities.NewPreferences(),
	}
}

// TestQuizStorageLifecycle verifies store, lookup and delete per chat.
func TestQuizStorageLifecycle(t *testing.T) {
	s := NewQuizStorage()
	quiz := newActiveQuiz(t)

	if _, ok := s.Get(1); ok {
		t.Fatalf("expected empty storage")
	}

	s.Store(1, quiz)
	got, ok := s.Get(1)
	if !ok || got != quiz {
		t.Fatalf("expected stored quiz")
	}
	if _, ok := s.Get(2); ok {
		t.Fatalf("quiz leaked into another chat")
	}

	s.Delete(1)
	if _, ok := s.Get(1); ok {
		t.Fatalf("expected quiz to be deleted")
	}
}

// TestQuizStorageSetMessageID verifies the previous message id is returned.
func TestQuizStorageSetMessageID(t *testing.T) {
	s := NewQuizStorage()

	if _, had := s.SetMessageID(1, 10); had {
		t.Fatalf("expected no previous id without a quiz")
	}

	s.Store(1, newActiveQuiz(t))
	if _, had := s.SetMessageID(1, 10); had {
		t.Fatalf("expected no previous id on first set")
	}
	prev, had := s.SetMessageID(1, 11)
	if !had || prev != 10 {
		t.Fatalf("expected previous id 10, got %d had=%v", prev, had)
	}

	quiz, _ := s.Get(1)
	if quiz.MessageID != 11 {
		t.Fatalf("expected message id 11, got %d", quiz.MessageID)
	}
}
