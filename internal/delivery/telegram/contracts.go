package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/math-quiz-bot/internal/service"
	"github.com/aliskhannn/math-quiz-bot/internal/storage"
)

// Bot is the subset of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type QuizService interface {
	Start(ctx context.Context, scope int64) (*service.SessionController, entities.Preferences, error)
	Restart(ctx context.Context, scope int64, session *service.SessionController) (entities.Preferences, error)
	Finish(ctx context.Context, scope int64, session *service.SessionController) (int, error)
}

type PreferenceService interface {
	Get(ctx context.Context, scope int64) (entities.Preferences, error)
	SetShuffleQuestions(ctx context.Context, scope int64, enabled bool) error
	SetShuffleAnswers(ctx context.Context, scope int64, enabled bool) error
}

type QuizStorage interface {
	Store(chatID int64, quiz *storage.ActiveQuiz)
	Get(chatID int64) (*storage.ActiveQuiz, bool)
	Delete(chatID int64)
	SetMessageID(chatID int64, messageID int) (prev int, hadPrev bool)
}
