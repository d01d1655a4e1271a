package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot               Bot
	logger            *zap.Logger
	quizService       QuizService
	preferenceService PreferenceService
	quizStorage       QuizStorage
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	quizService QuizService,
	preferenceService PreferenceService,
	quizStorage QuizStorage,
) *Handler {
	return &Handler{
		bot:               bot,
		logger:            logger,
		quizService:       quizService,
		preferenceService: preferenceService,
		quizStorage:       quizStorage,
	}
}

// Run processes updates one at a time until ctx is cancelled.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start", "help":
			_ = h.withErrorHandling(h.handleStart(userID))(ctx, chatID)

		case "quiz":
			_ = h.withErrorHandling(h.handleQuiz(userID))(ctx, chatID)

		case "restart":
			_ = h.withErrorHandling(h.handleRestart(userID, 0))(ctx, chatID)

		case "settings":
			_ = h.withErrorHandling(h.handleSettings(userID, 0))(ctx, chatID)

		case "highscore":
			_ = h.withErrorHandling(h.handleHighScore(userID))(ctx, chatID)

		default:
			_ = h.send(newHTMLMessage(chatID, msgUnknownCommand))
		}

		return
	}

	if pos, ok := parseChoiceKey(update.Message.Text); ok {
		_ = h.withErrorHandling(h.handleChoiceKey(userID, pos))(ctx, chatID)
		return
	}

	_ = h.send(newHTMLMessage(chatID, msgUnknownCommand))
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newHTMLMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// sendTracked sends a message and returns its id.
func (h *Handler) sendTracked(c tgbotapi.Chattable) (int, error) {
	msg, err := h.bot.Send(c)
	if err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return 0, err
	}
	return msg.MessageID, nil
}

// answerCallback removes the loading indicator, optionally showing a toast.
func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}
