package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
)

// Storage keys.
const (
	KeyHighScore        = "math_quiz_high"
	KeyShuffleQuestions = "mq_shuffleQ"
	KeyShuffleAnswers   = "mq_shuffleA"
)

// PreferenceService persists shuffle preferences and the high score.
type PreferenceService struct {
	store KeyValueStore
}

func NewPreferenceService(store KeyValueStore) *PreferenceService {
	return &PreferenceService{store: store}
}

// Get returns stored preferences. Missing keys yield defaults, and an
// unparsable high score is treated as absent.
func (s *PreferenceService) Get(ctx context.Context, scope int64) (entities.Preferences, error) {
	prefs := entities.NewPreferences()

	v, ok, err := s.store.Get(ctx, scope, KeyShuffleQuestions)
	if err != nil {
		return prefs, fmt.Errorf("get shuffle questions: %w", err)
	}
	if ok {
		prefs.ShuffleQuestions = v == "true"
	}

	v, ok, err = s.store.Get(ctx, scope, KeyShuffleAnswers)
	if err != nil {
		return prefs, fmt.Errorf("get shuffle answers: %w", err)
	}
	if ok {
		prefs.ShuffleAnswers = v == "true"
	}

	v, ok, err = s.store.Get(ctx, scope, KeyHighScore)
	if err != nil {
		return prefs, fmt.Errorf("get high score: %w", err)
	}
	if ok {
		if n, convErr := strconv.Atoi(v); convErr == nil {
			prefs.HighScore = &n
		}
	}

	return prefs, nil
}

func (s *PreferenceService) SetShuffleQuestions(ctx context.Context, scope int64, enabled bool) error {
	if err := s.store.Set(ctx, scope, KeyShuffleQuestions, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("set shuffle questions: %w", err)
	}
	return nil
}

func (s *PreferenceService) SetShuffleAnswers(ctx context.Context, scope int64, enabled bool) error {
	if err := s.store.Set(ctx, scope, KeyShuffleAnswers, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("set shuffle answers: %w", err)
	}
	return nil
}

// RecordScore stores finalScore as the high score when none is stored yet or
// when it beats the stored one, and returns the resulting high score.
//
// The stored value is a raw count. Scores from banks of different sizes are
// not comparable.
func (s *PreferenceService) RecordScore(ctx context.Context, scope int64, finalScore, totalQuestions int) (int, error) {
	if finalScore < 0 || finalScore > totalQuestions {
		return 0, fmt.Errorf("record score: score %d out of range [0, %d]", finalScore, totalQuestions)
	}

	high := finalScore
	err := s.store.Update(ctx, scope, KeyHighScore, func(old string, ok bool) (string, bool) {
		if ok {
			if prev, convErr := strconv.Atoi(old); convErr == nil && prev >= finalScore {
				high = prev
				return old, false
			}
		}
		high = finalScore
		return strconv.Itoa(finalScore), true
	})
	if err != nil {
		return 0, fmt.Errorf("record score: %w", err)
	}

	return high, nil
}
