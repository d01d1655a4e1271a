package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/math-quiz-bot/internal/service"
	"github.com/aliskhannn/math-quiz-bot/internal/storage"
)

type fakeSource struct {
	raw []entities.RawQuestion
	err error
}

func (s *fakeSource) Load(context.Context) ([]entities.RawQuestion, error) {
	return s.raw, s.err
}

type harness struct {
	model  Model
	source *fakeSource
	store  *storage.MemoryStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		source: &fakeSource{raw: []entities.RawQuestion{
			{Question: "7+5?", Choices: []string{"11", "12", "13"}, Answer: 1},
			{Question: "9*6?", Choices: []string{"54", "56"}, Answer: 0},
		}},
		store: storage.NewMemoryStore(),
	}
	if err := h.store.Set(context.Background(), Scope, service.KeyShuffleAnswers, "false"); err != nil {
		t.Fatalf("seed preferences: %v", err)
	}

	prefs := service.NewPreferenceService(h.store)
	quiz := service.NewQuizService(h.source, prefs, service.NewShuffler(1), zap.NewNop(), time.Second)
	h.model = NewModel(context.Background(), quiz, prefs, zap.NewNop(), Options{NoColor: true})
	return h
}

// run applies msg and then every command it produces, one level deep.
func (h *harness) run(t *testing.T, msg tea.Msg) {
	t.Helper()
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	if cmd == nil {
		return
	}
	if out := cmd(); out != nil {
		if _, quit := out.(tea.QuitMsg); quit {
			return
		}
		next, _ = h.model.Update(out)
		h.model = next.(Model)
	}
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	next, _ := h.model.Update(h.model.Init()())
	h.model = next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// TestModelPlaysFullQuiz verifies keys drive the session to the final screen.
func TestModelPlaysFullQuiz(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	view := h.model.View()
	if !strings.Contains(view, "Question 1 / 2") || !strings.Contains(view, "7+5?") || !strings.Contains(view, "High score: —") {
		t.Fatalf("unexpected first view:\n%s", view)
	}

	h.run(t, key("enter"))
	if h.model.session.CurrentIndex() != 0 {
		t.Fatalf("advance before answering must be ignored")
	}

	h.run(t, key("2"))
	if !strings.Contains(h.model.View(), "Correct!") {
		t.Fatalf("expected correct feedback:\n%s", h.model.View())
	}
	h.run(t, key("1"))
	if h.model.session.Score() != 1 {
		t.Fatalf("second key changed the score")
	}

	h.run(t, key("enter"))
	h.run(t, key("2"))
	if !strings.Contains(h.model.View(), "The correct answer is: 1. 54") {
		t.Fatalf("expected correct answer to be revealed:\n%s", h.model.View())
	}

	h.run(t, key("enter"))
	view = h.model.View()
	if !strings.Contains(view, "Quiz finished — your score: 1 / 2") || !strings.Contains(view, "High score: 1") {
		t.Fatalf("unexpected final view:\n%s", view)
	}

	v, ok, _ := h.store.Get(context.Background(), Scope, service.KeyHighScore)
	if !ok || v != "1" {
		t.Fatalf("expected stored high score 1, got %q", v)
	}
}

// TestModelIgnoresMissingChoices verifies keys past the last choice do nothing.
func TestModelIgnoresMissingChoices(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.run(t, key("9"))
	if h.model.session.Answered() {
		t.Fatalf("key 9 must be ignored for three choices")
	}
}

// TestModelLoadFailure verifies the fixed failure screen and retry.
func TestModelLoadFailure(t *testing.T) {
	h := newHarness(t)
	h.source.err = errors.New("offline")
	h.start(t)

	if h.model.screen != screenFailed || !strings.Contains(h.model.View(), "Could not load questions.") {
		t.Fatalf("expected failure screen:\n%s", h.model.View())
	}

	h.run(t, key("1"))
	h.run(t, key("enter"))

	h.source.err = nil
	h.run(t, key("r"))
	if h.model.screen != screenPlaying {
		t.Fatalf("expected retry to start the quiz, got screen %d", h.model.screen)
	}
}

// TestModelRestartReplacesSession verifies r starts a fresh playthrough.
func TestModelRestartReplacesSession(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	first := h.model.session

	h.run(t, key("2"))
	h.run(t, key("r"))

	if h.model.session == first || h.model.session.Answered() || h.model.session.Score() != 0 {
		t.Fatalf("restart did not replace the session")
	}
}

// TestModelTogglesPreferences verifies s and a persist immediately.
func TestModelTogglesPreferences(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.run(t, key("s"))
	h.run(t, key("a"))

	ctx := context.Background()
	if v, _, _ := h.store.Get(ctx, Scope, service.KeyShuffleQuestions); v != "true" {
		t.Fatalf("expected shuffle questions on, got %q", v)
	}
	if v, _, _ := h.store.Get(ctx, Scope, service.KeyShuffleAnswers); v != "true" {
		t.Fatalf("expected shuffle answers on, got %q", v)
	}
	view := h.model.View()
	if !strings.Contains(view, "shuffle questions: on") || !strings.Contains(view, "shuffle answers: on") {
		t.Fatalf("expected toggles in view:\n%s", view)
	}
	if h.model.sessionPrefs.ShuffleQuestions {
		t.Fatalf("running session must keep the preferences it started with")
	}
}

// TestModelQuit verifies q and ctrl+c quit.
func TestModelQuit(t *testing.T) {
	h := newHarness(t)
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := h.model.Update(key(k))
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: expected tea.QuitMsg", k)
		}
	}
}
