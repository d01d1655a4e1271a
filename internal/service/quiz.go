package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
)

// ErrQuestionsUnavailable is returned when the question source cannot be loaded.
var ErrQuestionsUnavailable = errors.New("unable to load questions")

const defaultLoadTimeout = 10 * time.Second

// QuizService wires the question source, preferences and session lifecycle.
type QuizService struct {
	source      QuestionSource
	preferences PreferenceStore
	shuffler    *Shuffler
	logger      *zap.Logger
	loadTimeout time.Duration
}

func NewQuizService(
	source QuestionSource,
	preferences PreferenceStore,
	shuffler *Shuffler,
	logger *zap.Logger,
	loadTimeout time.Duration,
) *QuizService {
	if loadTimeout <= 0 {
		loadTimeout = defaultLoadTimeout
	}
	return &QuizService{
		source:      source,
		preferences: preferences,
		shuffler:    shuffler,
		logger:      logger,
		loadTimeout: loadTimeout,
	}
}

// Start loads questions and begins a new session for scope.
// The preferences the session was built with are returned alongside it.
func (s *QuizService) Start(ctx context.Context, scope int64) (*SessionController, entities.Preferences, error) {
	bank, prefs, err := s.buildBank(ctx, scope)
	if err != nil {
		return nil, prefs, err
	}

	session := NewSessionController(bank, s.shuffler)
	s.logger.Debug("quiz session started",
		zap.Int64("user_id", scope),
		zap.String("session_id", session.ID().String()),
		zap.Int("total_questions", bank.Len()),
		zap.Bool("shuffle_questions", prefs.ShuffleQuestions),
	)

	return session, prefs, nil
}

// Restart reloads questions with the current preferences and restarts session.
// On failure session is left as it was.
func (s *QuizService) Restart(ctx context.Context, scope int64, session *SessionController) (entities.Preferences, error) {
	bank, prefs, err := s.buildBank(ctx, scope)
	if err != nil {
		return prefs, err
	}

	if err := session.Restart(bank); err != nil {
		return prefs, err
	}

	s.logger.Debug("quiz session restarted",
		zap.Int64("user_id", scope),
		zap.String("session_id", session.ID().String()),
		zap.Int("total_questions", bank.Len()),
	)

	return prefs, nil
}

// Finish records the final score of a finished session and returns the high score.
func (s *QuizService) Finish(ctx context.Context, scope int64, session *SessionController) (int, error) {
	if !session.Finished() {
		return 0, &entities.IllegalStateError{Op: "finish", Reason: "session is not finished"}
	}

	high, err := s.preferences.RecordScore(ctx, scope, session.Score(), session.Total())
	if err != nil {
		return 0, err
	}

	s.logger.Info("quiz session finished",
		zap.Int64("user_id", scope),
		zap.String("session_id", session.ID().String()),
		zap.Int("score", session.Score()),
		zap.Int("total_questions", session.Total()),
		zap.Int("high_score", high),
	)

	return high, nil
}

func (s *QuizService) buildBank(ctx context.Context, scope int64) (*QuestionBank, entities.Preferences, error) {
	prefs, err := s.preferences.Get(ctx, scope)
	if err != nil {
		s.logger.Warn("failed to read preferences, using defaults",
			zap.Int64("user_id", scope),
			zap.Error(err),
		)
		prefs = entities.NewPreferences()
	}

	loadCtx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()

	raw, err := s.source.Load(loadCtx)
	if err != nil {
		return nil, prefs, fmt.Errorf("%w: %w", ErrQuestionsUnavailable, err)
	}

	bank, err := BuildQuestionBank(raw, prefs.ShuffleQuestions, s.shuffler)
	if err != nil {
		return nil, prefs, err
	}

	return bank, prefs, nil
}
