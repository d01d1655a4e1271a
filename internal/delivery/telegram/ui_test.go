package telegram

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
)

var testPresentation = entities.ChoicePresentation{
	{DisplayText: "5", OriginalIndex: 2},
	{DisplayText: "3", OriginalIndex: 0},
	{DisplayText: "4", OriginalIndex: 1},
}

// TestBuildQuestionKeyboardFollowsDisplayOrder verifies labels and positions.
func TestBuildQuestionKeyboardFollowsDisplayOrder(t *testing.T) {
	id := uuid.New()
	kb := buildQuestionKeyboard(id, 0, testPresentation)

	if len(kb.InlineKeyboard) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(kb.InlineKeyboard))
	}
	for pos, row := range kb.InlineKeyboard {
		b := row[0]
		if !strings.HasSuffix(b.Text, testPresentation[pos].DisplayText) || !strings.HasPrefix(b.Text, string(rune('1'+pos))+". ") {
			t.Fatalf("row %d: unexpected label %q", pos, b.Text)
		}
		if b.CallbackData == nil || *b.CallbackData != buildAnswerCallback(id, 0, pos) {
			t.Fatalf("row %d: unexpected callback data", pos)
		}
	}
}

// TestBuildAnsweredKeyboardHighlightsOutcome verifies correct and selected markers.
func TestBuildAnsweredKeyboardHighlightsOutcome(t *testing.T) {
	id := uuid.New()
	r := entities.AnswerResult{Correct: false, SelectedIndex: 2, CorrectIndex: 1, DisplayPosition: 0}

	kb := buildAnsweredKeyboard(id, 1, testPresentation, r, false)
	if len(kb.InlineKeyboard) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(kb.InlineKeyboard))
	}
	if got := kb.InlineKeyboard[0][0].Text; !strings.HasPrefix(got, "❌") {
		t.Fatalf("expected selected choice marked wrong, got %q", got)
	}
	if got := kb.InlineKeyboard[2][0].Text; !strings.HasPrefix(got, "✅") {
		t.Fatalf("expected correct choice marked, got %q", got)
	}
	if got := kb.InlineKeyboard[1][0].Text; strings.HasPrefix(got, "✅") || strings.HasPrefix(got, "❌") {
		t.Fatalf("unexpected marker on untouched choice %q", got)
	}

	next := kb.InlineKeyboard[3][0]
	if !strings.HasPrefix(next.Text, "Next") || *next.CallbackData != buildNextCallback(id, 1) {
		t.Fatalf("unexpected next button %+v", next)
	}

	last := buildAnsweredKeyboard(id, 1, testPresentation, r, true)
	if got := last.InlineKeyboard[3][0].Text; !strings.HasPrefix(got, "Finish") {
		t.Fatalf("expected finish label on last question, got %q", got)
	}
}

// TestBuildSettingsKeyboardTogglesValues verifies each button flips its preference.
func TestBuildSettingsKeyboardTogglesValues(t *testing.T) {
	kb := buildSettingsKeyboard(entities.Preferences{ShuffleQuestions: false, ShuffleAnswers: true})

	if got := *kb.InlineKeyboard[0][0].CallbackData; got != "settings:shuffle_q:on" {
		t.Fatalf("unexpected shuffle questions toggle %q", got)
	}
	if got := *kb.InlineKeyboard[1][0].CallbackData; got != "settings:shuffle_a:off" {
		t.Fatalf("unexpected shuffle answers toggle %q", got)
	}
}

// TestBuildFinishedText verifies the final screen wording.
func TestBuildFinishedText(t *testing.T) {
	text := buildFinishedText(2, 3, msgHighScoreUnset)

	for _, want := range []string{"Quiz finished — your score: 2 / 3", msgThanks, "High score: —"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in %q", want, text)
		}
	}
}

// TestFormatHighScore verifies the unset marker and stored values.
func TestFormatHighScore(t *testing.T) {
	if got := formatHighScore(entities.NewPreferences()); got != "—" {
		t.Fatalf("expected dash, got %q", got)
	}
	n := 4
	if got := formatHighScore(entities.Preferences{HighScore: &n}); got != "4" {
		t.Fatalf("expected 4, got %q", got)
	}
}

// TestBuildChoiceLabelEscapesNothing verifies labels keep raw text for buttons.
func TestBuildChoiceLabelEscapesNothing(t *testing.T) {
	if got := buildChoiceLabel(0, "a < b"); got != "1. a < b" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := buildChoiceLabel(9, "tenth"); got != "tenth" {
		t.Fatalf("expected no number past nine, got %q", got)
	}
}

// TestQuestionTextEscapesHTML verifies text is escaped for HTML parse mode.
func TestQuestionTextEscapesHTML(t *testing.T) {
	if got := esc("1 < 2 & 3 > 2"); got != "1 &lt; 2 &amp; 3 &gt; 2" {
		t.Fatalf("unexpected escape %q", got)
	}
}
