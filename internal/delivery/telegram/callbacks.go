package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	userID := cb.From.ID
	messageID := cb.Message.MessageID
	cd := decodeCallback(cb.Data)

	var toast string
	fn := func(ctx context.Context, chatID int64) error {
		var err error
		switch cd.Action {
		case actionAnswer:
			toast, err = h.handleAnswerCallback(chatID, messageID, cd)
		case actionNext:
			toast, err = h.handleNextCallback(ctx, chatID, messageID, cd)
		case actionRestart:
			err = h.restartQuiz(ctx, chatID, userID, messageID)
		case actionSettings:
			err = h.handleSettingsCallback(ctx, chatID, userID, messageID, cd)
		default:
			h.logger.Debug("unknown callback action", zap.String("data", cb.Data))
		}
		if isMalformed(err) {
			h.logger.Debug("malformed callback", zap.String("data", cb.Data))
			return nil
		}
		return err
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)

	// Remove the user's "clock".
	h.answerCallback(cb.ID, toast)
}

func (h *Handler) handleAnswerCallback(chatID int64, messageID int, cd callbackData) (string, error) {
	ref, pos, err := cd.parseAnswer()
	if err != nil {
		return "", err
	}

	quiz, ok := h.quizStorage.Get(chatID)
	if !ok {
		return msgNoActiveQuiz, nil
	}
	if !checkQuestionRef(quiz, ref) || messageID != quiz.MessageID {
		return msgStaleQuestion, nil
	}
	if quiz.Session.Answered() {
		return msgAlreadyAnswered, nil
	}
	if pos >= choicesCount(quiz) {
		return msgStaleQuestion, nil
	}

	r, err := h.selectAnswer(chatID, quiz, pos, messageID)
	if err != nil {
		return "", err
	}
	if r.Correct {
		return resultCorrectText, nil
	}
	return "❌ Wrong", nil
}

func (h *Handler) handleNextCallback(ctx context.Context, chatID int64, messageID int, cd callbackData) (string, error) {
	ref, err := cd.parseQuestionRef()
	if err != nil {
		return "", err
	}

	quiz, ok := h.quizStorage.Get(chatID)
	if !ok {
		return msgNoActiveQuiz, nil
	}
	if !checkQuestionRef(quiz, ref) || messageID != quiz.MessageID {
		return msgStaleQuestion, nil
	}
	if !quiz.Session.Answered() {
		return msgAnswerFirst, nil
	}

	if err := quiz.Session.Advance(); err != nil {
		return "", err
	}

	if quiz.Session.Finished() {
		return "", h.showFinished(ctx, chatID, quiz, messageID)
	}
	return "", h.showQuestion(chatID, quiz, messageID)
}
