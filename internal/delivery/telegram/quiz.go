package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/math-quiz-bot/internal/storage"
)

// startQuiz loads questions and shows the first one. When messageID is set
// the question replaces that message.
func (h *Handler) startQuiz(ctx context.Context, chatID, userID int64, messageID int) error {
	session, prefs, err := h.quizService.Start(ctx, userID)
	if err != nil {
		return h.showLoadFailed(chatID, userID, messageID, err)
	}

	quiz := &storage.ActiveQuiz{
		Session:     session,
		Preferences: prefs,
		Scope:       userID,
	}
	h.quizStorage.Store(chatID, quiz)

	return h.showQuestion(chatID, quiz, messageID)
}

// restartQuiz rebuilds the chat's quiz from scratch, or starts one if none is running.
func (h *Handler) restartQuiz(ctx context.Context, chatID, userID int64, messageID int) error {
	quiz, ok := h.quizStorage.Get(chatID)
	if !ok {
		return h.startQuiz(ctx, chatID, userID, messageID)
	}

	prefs, err := h.quizService.Restart(ctx, userID, quiz.Session)
	if err != nil {
		h.quizStorage.Delete(chatID)
		if messageID == 0 {
			messageID = quiz.MessageID
		}
		return h.showLoadFailed(chatID, userID, messageID, err)
	}
	quiz.Preferences = prefs
	quiz.Scope = userID

	return h.showQuestion(chatID, quiz, messageID)
}

// showLoadFailed reports a failed load. The error itself is only logged.
func (h *Handler) showLoadFailed(chatID, userID int64, messageID int, err error) error {
	h.logger.Error("failed to start quiz",
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.Error(err),
	)

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Try again", buildRestartCallback()),
		),
	)

	if messageID != 0 {
		return h.send(newHTMLEdit(chatID, messageID, msgLoadFailed, &kb))
	}
	msg := newHTMLMessage(chatID, msgLoadFailed)
	msg.ReplyMarkup = kb
	return h.send(msg)
}

// showQuestion renders the current question with a freshly computed choice order.
func (h *Handler) showQuestion(chatID int64, quiz *storage.ActiveQuiz, messageID int) error {
	session := quiz.Session

	q, err := session.CurrentQuestion()
	if err != nil {
		return err
	}

	p, err := session.CurrentChoicePresentation(quiz.Preferences.ShuffleAnswers)
	if err != nil {
		return err
	}

	text := buildQuestionText(session, q)
	kb := buildQuestionKeyboard(session.ID(), session.CurrentIndex(), p)

	return h.putQuizMessage(chatID, messageID, text, kb)
}

// showAnswered renders the current question with the outcome highlighted.
func (h *Handler) showAnswered(chatID int64, quiz *storage.ActiveQuiz, messageID int) error {
	session := quiz.Session

	q, err := session.CurrentQuestion()
	if err != nil {
		return err
	}
	p, err := session.ActivePresentation()
	if err != nil {
		return err
	}
	r, ok := session.LastResult()
	if !ok {
		return &entities.IllegalStateError{Op: "show answered", Reason: "current question is not answered"}
	}

	last := session.CurrentIndex() == session.Total()-1
	text := buildAnsweredText(session, q, r)
	kb := buildAnsweredKeyboard(session.ID(), session.CurrentIndex(), p, r, last)

	return h.putQuizMessage(chatID, messageID, text, kb)
}

// showFinished records the score for the user who started the quiz and
// renders the final screen.
func (h *Handler) showFinished(ctx context.Context, chatID int64, quiz *storage.ActiveQuiz, messageID int) error {
	session := quiz.Session

	highScore := msgHighScoreUnset
	high, err := h.quizService.Finish(ctx, quiz.Scope, session)
	if err != nil {
		h.logger.Error("failed to record score",
			zap.Int64("user_id", quiz.Scope),
			zap.String("session_id", session.ID().String()),
			zap.Error(err),
		)
	} else {
		highScore = strconv.Itoa(high)
	}

	text := buildFinishedText(session.Score(), session.Total(), highScore)
	kb := buildRestartKeyboard()

	return h.putQuizMessage(chatID, messageID, text, kb)
}

// putQuizMessage edits messageID, or sends a new message and deletes the previous quiz message.
func (h *Handler) putQuizMessage(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) error {
	if messageID != 0 {
		if err := h.send(newHTMLEdit(chatID, messageID, text, &kb)); err != nil {
			return err
		}
		h.quizStorage.SetMessageID(chatID, messageID)
		return nil
	}

	msg := newHTMLMessage(chatID, text)
	msg.ReplyMarkup = kb
	sentID, err := h.sendTracked(msg)
	if err != nil {
		return err
	}

	if prev, ok := h.quizStorage.SetMessageID(chatID, sentID); ok && prev != sentID {
		_, _ = h.bot.Request(tgbotapi.NewDeleteMessage(chatID, prev))
	}
	return nil
}

// checkQuestionRef reports whether ref points at the quiz's current question.
// Callers also compare the message id, since a re-displayed question gets a
// new choice order and only the latest message carries it.
func checkQuestionRef(quiz *storage.ActiveQuiz, ref questionRef) bool {
	s := quiz.Session
	return !s.Finished() && s.ID() == ref.SessionID && s.CurrentIndex() == ref.QuestionNum
}

// selectAnswer applies a selection and re-renders the question message.
func (h *Handler) selectAnswer(chatID int64, quiz *storage.ActiveQuiz, pos, messageID int) (entities.AnswerResult, error) {
	r, err := quiz.Session.SelectAnswer(pos)
	if err != nil {
		return entities.AnswerResult{}, err
	}

	h.logger.Debug("answer selected",
		zap.Int64("chat_id", chatID),
		zap.String("session_id", quiz.Session.ID().String()),
		zap.Int("question_num", quiz.Session.CurrentIndex()),
		zap.Bool("correct", r.Correct),
	)

	return r, h.showAnswered(chatID, quiz, messageID)
}

// choicesCount returns the number of choices of the current question, or 0.
func choicesCount(quiz *storage.ActiveQuiz) int {
	p, err := quiz.Session.ActivePresentation()
	if err != nil {
		return 0
	}
	return len(p)
}

func isMalformed(err error) bool {
	return errors.Is(err, errMalformedCallback)
}
