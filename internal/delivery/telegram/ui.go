package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
)

// buildQuestionKeyboard builds one button per choice in display order.
func buildQuestionKeyboard(sessionID uuid.UUID, questionNum int, p entities.ChoicePresentation) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(p))
	for pos, c := range p {
		button := tgbotapi.NewInlineKeyboardButtonData(
			buildChoiceLabel(pos, c.DisplayText),
			buildAnswerCallback(sessionID, questionNum, pos),
		)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildAnsweredKeyboard marks the correct and the wrongly selected choices and adds Next.
func buildAnsweredKeyboard(
	sessionID uuid.UUID,
	questionNum int,
	p entities.ChoicePresentation,
	r entities.AnswerResult,
	last bool,
) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(p)+1)
	for pos, c := range p {
		label := buildChoiceLabel(pos, c.DisplayText)
		switch {
		case c.OriginalIndex == r.CorrectIndex:
			label = "✅ " + label
		case c.OriginalIndex == r.SelectedIndex:
			label = "❌ " + label
		}
		button := tgbotapi.NewInlineKeyboardButtonData(label, buildAnswerCallback(sessionID, questionNum, pos))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}

	nextLabel := "Next ▶️"
	if last {
		nextLabel = "Finish 🏁"
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(nextLabel, buildNextCallback(sessionID, questionNum)),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildRestartKeyboard builds keyboard for the finished and failed screens.
func buildRestartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Restart", buildRestartCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", buildSettingsCallback(settingsMenu)),
		),
	)
}

// buildSettingsKeyboard builds toggles that flip each preference.
func buildSettingsKeyboard(p entities.Preferences) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"🔀 Shuffle questions: "+formatBool(p.ShuffleQuestions),
				buildSettingsCallback(settingsShuffleQuestions, onOff(!p.ShuffleQuestions)),
			),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"🎲 Shuffle answers: "+formatBool(p.ShuffleAnswers),
				buildSettingsCallback(settingsShuffleAnswers, onOff(!p.ShuffleAnswers)),
			),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Restart quiz", buildRestartCallback()),
		),
	)
}
