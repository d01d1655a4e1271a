// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/math-quiz-bot/internal/service"
)

const (
	msgWelcome = "<b>Math Quiz</b>\n\n" +
		"Answer each question by tapping a choice or sending its number (1–9).\n" +
		"Tap <b>Next</b> to move on once you have answered.\n\n" +
		"/quiz — show the current question\n" +
		"/restart — start over\n" +
		"/settings — shuffle preferences\n" +
		"/highscore — best score so far"
	msgLoadFailed       = "Could not load questions."
	msgInternalError    = "Something went wrong. Please try again later."
	msgSettingsFailed   = "Could not update settings. Please try again later."
	msgUnknownCommand   = "Unknown command. Send /help for the list of commands."
	msgNoActiveQuiz     = "There is no quiz running. Send /quiz to start one."
	msgAlreadyAnswered  = "Already answered. Tap Next to continue."
	msgStaleQuestion    = "This question is no longer active."
	msgAnswerFirst      = "Answer the question first."
	msgThanks           = "Thanks for playing. You can restart to try again."
	msgSettingsApplied  = "Changes apply the next time the quiz starts."
	msgHighScoreUnset   = "—"
	resultCorrectText   = "✅ Correct!"
	resultIncorrectText = "❌ Wrong. The correct answer is: %s"
)

// esc escapes plain text for HTML parse mode.
func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

// formatHighScore renders a stored high score or a dash when unset.
func formatHighScore(p entities.Preferences) string {
	if !p.HasHighScore() {
		return msgHighScoreUnset
	}
	return strconv.Itoa(*p.HighScore)
}

func formatBool(b bool) string {
	if b {
		return "On ✅"
	}
	return "Off ❌"
}

// buildQuestionText renders the current question header and text.
func buildQuestionText(s *service.SessionController, q entities.Question) string {
	return fmt.Sprintf(
		"<b>Question %d / %d</b>   Score: %d\n\n%s",
		s.CurrentIndex()+1,
		s.Total(),
		s.Score(),
		esc(q.Text),
	)
}

// buildAnsweredText renders the question with the outcome of the selection.
func buildAnsweredText(s *service.SessionController, q entities.Question, r entities.AnswerResult) string {
	var sb strings.Builder
	sb.WriteString(buildQuestionText(s, q))
	sb.WriteString("\n\n")
	if r.Correct {
		sb.WriteString(resultCorrectText)
	} else {
		sb.WriteString(fmt.Sprintf(resultIncorrectText, "<b>"+esc(q.CorrectChoice())+"</b>"))
	}
	return sb.String()
}

// buildFinishedText renders the final score screen.
func buildFinishedText(score, total int, highScore string) string {
	return fmt.Sprintf(
		"<b>Quiz finished — your score: %d / %d</b>\n\n%s\n\n🏆 High score: %s",
		score,
		total,
		msgThanks,
		highScore,
	)
}

// buildSettingsText renders current preferences.
func buildSettingsText(p entities.Preferences) string {
	return fmt.Sprintf(
		"<b>⚙️ Settings</b>\n\n"+
			"🔀 <b>Shuffle questions:</b> %s\n"+
			"🎲 <b>Shuffle answers:</b> %s\n"+
			"🏆 <b>High score:</b> %s\n\n%s",
		formatBool(p.ShuffleQuestions),
		formatBool(p.ShuffleAnswers),
		formatHighScore(p),
		msgSettingsApplied,
	)
}

// buildChoiceLabel prefixes a choice with its keyboard number.
func buildChoiceLabel(pos int, text string) string {
	if pos < 9 {
		return fmt.Sprintf("%d. %s", pos+1, text)
	}
	return text
}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func newHTMLEdit(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	if kb != nil {
		edit.ReplyMarkup = kb
	}
	return edit
}
