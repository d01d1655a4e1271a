package telegram

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// handleStart greets the user and shows the quiz.
func (h *Handler) handleStart(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.send(newHTMLMessage(chatID, msgWelcome)); err != nil {
			return err
		}
		return h.handleQuiz(userID)(ctx, chatID)
	}
}

// handleQuiz re-displays the running quiz, or starts a new one.
func (h *Handler) handleQuiz(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		quiz, ok := h.quizStorage.Get(chatID)
		if !ok || quiz.Session.Finished() {
			return h.startQuiz(ctx, chatID, userID, 0)
		}

		if quiz.Session.Answered() {
			return h.showAnswered(chatID, quiz, 0)
		}
		return h.showQuestion(chatID, quiz, 0)
	}
}

// handleRestart rebuilds the quiz with current preferences.
func (h *Handler) handleRestart(userID int64, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.restartQuiz(ctx, chatID, userID, messageID)
	}
}

// handleHighScore shows the stored high score.
func (h *Handler) handleHighScore(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		prefs, err := h.preferenceService.Get(ctx, userID)
		if err != nil {
			return err
		}
		return h.send(newHTMLMessage(chatID, "🏆 High score: "+formatHighScore(prefs)))
	}
}

// handleChoiceKey selects the choice at pos, mirroring keys 1–9.
// Keys that do not map to a selectable choice are ignored.
func (h *Handler) handleChoiceKey(userID int64, pos int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		quiz, ok := h.quizStorage.Get(chatID)
		if !ok || quiz.Session.Finished() || quiz.Session.Answered() {
			return nil
		}
		if pos >= choicesCount(quiz) {
			return nil
		}

		h.logger.Debug("choice key received",
			zap.Int64("user_id", userID),
			zap.Int("position", pos),
		)

		_, err := h.selectAnswer(chatID, quiz, pos, quiz.MessageID)
		return err
	}
}

// parseChoiceKey maps the text "1".."9" to a display position.
func parseChoiceKey(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if len(text) != 1 || text[0] < '1' || text[0] > '9' {
		return 0, false
	}
	return int(text[0] - '1'), true
}
