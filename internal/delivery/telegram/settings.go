package telegram

import (
	"context"

	"go.uber.org/zap"
)

// handleSettings shows preferences. With messageID set, that message is edited.
func (h *Handler) handleSettings(userID int64, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		prefs, err := h.preferenceService.Get(ctx, userID)
		if err != nil {
			h.logger.Error("failed to get preferences",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return h.send(newHTMLMessage(chatID, msgSettingsFailed))
		}

		text := buildSettingsText(prefs)
		kb := buildSettingsKeyboard(prefs)

		if messageID != 0 {
			return h.send(newHTMLEdit(chatID, messageID, text, &kb))
		}
		msg := newHTMLMessage(chatID, text)
		msg.ReplyMarkup = kb
		return h.send(msg)
	}
}

// handleSettingsCallback persists a toggle immediately and re-renders the settings message.
func (h *Handler) handleSettingsCallback(ctx context.Context, chatID, userID int64, messageID int, cd callbackData) error {
	if len(cd.Params) == 0 {
		return errMalformedCallback
	}

	sub := cd.Params[0]
	if sub == settingsMenu {
		return h.handleSettings(userID, messageID)(ctx, chatID)
	}

	if len(cd.Params) != 2 || (cd.Params[1] != valueOn && cd.Params[1] != valueOff) {
		return errMalformedCallback
	}
	enabled := cd.Params[1] == valueOn

	var err error
	switch sub {
	case settingsShuffleQuestions:
		err = h.preferenceService.SetShuffleQuestions(ctx, userID, enabled)
	case settingsShuffleAnswers:
		err = h.preferenceService.SetShuffleAnswers(ctx, userID, enabled)
	default:
		return errMalformedCallback
	}
	if err != nil {
		h.logger.Error("failed to update preference",
			zap.Int64("user_id", userID),
			zap.String("preference", sub),
			zap.Error(err),
		)
		return h.send(newHTMLMessage(chatID, msgSettingsFailed))
	}

	return h.handleSettings(userID, messageID)(ctx, chatID)
}
