package telegram

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Callback action constants.
const (
	actionAnswer   = "answer"
	actionNext     = "next"
	actionRestart  = "restart"
	actionSettings = "settings"
)

// Settings sub-actions.
const (
	settingsMenu             = "menu"
	settingsShuffleQuestions = "shuffle_q"
	settingsShuffleAnswers   = "shuffle_a"
)

const (
	valueOn  = "on"
	valueOff = "off"
)

var errMalformedCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// questionRef identifies a question of a particular playthrough.
type questionRef struct {
	SessionID   uuid.UUID
	QuestionNum int
}

// parseQuestionRef reads session id and question index from the first two params.
func (cd callbackData) parseQuestionRef() (questionRef, error) {
	if len(cd.Params) < 2 {
		return questionRef{}, errMalformedCallback
	}
	id, err := uuid.Parse(cd.Params[0])
	if err != nil {
		return questionRef{}, errMalformedCallback
	}
	num, err := strconv.Atoi(cd.Params[1])
	if err != nil || num < 0 {
		return questionRef{}, errMalformedCallback
	}
	return questionRef{SessionID: id, QuestionNum: num}, nil
}

// parseAnswer reads a question reference and a display position.
func (cd callbackData) parseAnswer() (questionRef, int, error) {
	if len(cd.Params) != 3 {
		return questionRef{}, 0, errMalformedCallback
	}
	ref, err := cd.parseQuestionRef()
	if err != nil {
		return questionRef{}, 0, err
	}
	pos, err := strconv.Atoi(cd.Params[2])
	if err != nil || pos < 0 {
		return questionRef{}, 0, errMalformedCallback
	}
	return ref, pos, nil
}

// buildAnswerCallback builds callback data for choosing a display position.
func buildAnswerCallback(sessionID uuid.UUID, questionNum, pos int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{
			sessionID.String(),
			strconv.Itoa(questionNum),
			strconv.Itoa(pos),
		},
	}.encode()
}

// buildNextCallback builds callback data for advancing past a question.
func buildNextCallback(sessionID uuid.UUID, questionNum int) string {
	return callbackData{
		Action: actionNext,
		Params: []string{sessionID.String(), strconv.Itoa(questionNum)},
	}.encode()
}

// buildRestartCallback builds callback data for restarting the quiz.
func buildRestartCallback() string {
	return actionRestart
}

// buildSettingsCallback builds callback data for settings-related actions.
func buildSettingsCallback(subAction string, value ...string) string {
	params := []string{subAction}
	params = append(params, value...)
	return callbackData{
		Action: actionSettings,
		Params: params,
	}.encode()
}

func onOff(enabled bool) string {
	if enabled {
		return valueOn
	}
	return valueOff
}
