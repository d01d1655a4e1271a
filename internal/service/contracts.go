package service

import (
	"context"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
)

// QuestionSource loads the raw question list for a session.
type QuestionSource interface {
	Load(ctx context.Context) ([]entities.RawQuestion, error)
}

// KeyValueStore is string-keyed, string-valued storage partitioned by scope.
type KeyValueStore interface {
	Get(ctx context.Context, scope int64, key string) (value string, ok bool, err error)
	Set(ctx context.Context, scope int64, key, value string) error
	// Update atomically replaces the value of key with the result of fn.
	// When fn returns false the stored value is left untouched.
	Update(ctx context.Context, scope int64, key string, fn func(old string, ok bool) (string, bool)) error
}

// PreferenceStore reads and writes quiz preferences.
type PreferenceStore interface {
	Get(ctx context.Context, scope int64) (entities.Preferences, error)
	SetShuffleQuestions(ctx context.Context, scope int64, enabled bool) error
	SetShuffleAnswers(ctx context.Context, scope int64, enabled bool) error
	RecordScore(ctx context.Context, scope int64, finalScore, totalQuestions int) (int, error)
}
