package tui

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/math-quiz-bot/internal/service"
)

// Scope is the preference scope used by the terminal front end.
const Scope int64 = 0

type QuizService interface {
	Start(ctx context.Context, scope int64) (*service.SessionController, entities.Preferences, error)
	Finish(ctx context.Context, scope int64, session *service.SessionController) (int, error)
}

type PreferenceService interface {
	Get(ctx context.Context, scope int64) (entities.Preferences, error)
	SetShuffleQuestions(ctx context.Context, scope int64, enabled bool) error
	SetShuffleAnswers(ctx context.Context, scope int64, enabled bool) error
}

type screen int

const (
	screenLoading screen = iota
	screenPlaying
	screenFinished
	screenFailed
)

// Model is a Bubble Tea model that plays one quiz at a time.
// All session mutations happen in Update.
type Model struct {
	ctx          context.Context
	quiz         QuizService
	preferences  PreferenceService
	logger       *zap.Logger
	screen       screen
	session      *service.SessionController
	sessionPrefs entities.Preferences // preferences the session was started with
	settings     entities.Preferences // latest stored preferences
	presentation entities.ChoicePresentation
	result       *entities.AnswerResult
	highScore    string
	status       string
	noColor      bool
}

// Options configures the model.
type Options struct {
	NoColor bool
}

// NewModel creates a model that starts a quiz on Init.
func NewModel(ctx context.Context, quiz QuizService, preferences PreferenceService, logger *zap.Logger, opts Options) Model {
	return Model{
		ctx:         ctx,
		quiz:        quiz,
		preferences: preferences,
		logger:      logger,
		screen:      screenLoading,
		settings:    entities.NewPreferences(),
		highScore:   "—",
		noColor:     opts.NoColor,
	}
}

type startedMsg struct {
	session *service.SessionController
	prefs   entities.Preferences
	err     error
}

type finishedMsg struct {
	highScore int
	err       error
}

type preferencesMsg struct {
	prefs entities.Preferences
	err   error
}

// Init loads the first quiz.
func (m Model) Init() tea.Cmd {
	return m.startCmd()
}

func (m Model) startCmd() tea.Cmd {
	ctx, quiz := m.ctx, m.quiz
	return func() tea.Msg {
		session, prefs, err := quiz.Start(ctx, Scope)
		return startedMsg{session: session, prefs: prefs, err: err}
	}
}

func (m Model) finishCmd(session *service.SessionController) tea.Cmd {
	ctx, quiz := m.ctx, m.quiz
	return func() tea.Msg {
		high, err := quiz.Finish(ctx, Scope, session)
		return finishedMsg{highScore: high, err: err}
	}
}

func (m Model) toggleCmd(set func(context.Context, int64, bool) error, enabled bool) tea.Cmd {
	ctx, prefs := m.ctx, m.preferences
	return func() tea.Msg {
		if err := set(ctx, Scope, enabled); err != nil {
			return preferencesMsg{err: err}
		}
		p, err := prefs.Get(ctx, Scope)
		return preferencesMsg{prefs: p, err: err}
	}
}

// Update handles loading results and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case startedMsg:
		return m.applyStarted(typed), nil
	case finishedMsg:
		if typed.err != nil {
			m.logger.Error("failed to record score", zap.Error(typed.err))
			m.status = "Could not save the high score."
			return m, nil
		}
		m.highScore = strconv.Itoa(typed.highScore)
		return m, nil
	case preferencesMsg:
		if typed.err != nil {
			m.logger.Error("failed to update preferences", zap.Error(typed.err))
			m.status = "Could not update settings."
			return m, nil
		}
		m.settings = typed.prefs
		m.status = "Changes apply the next time the quiz starts."
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) applyStarted(msg startedMsg) Model {
	m.result = nil
	m.presentation = nil
	m.status = ""

	if msg.err != nil {
		m.logger.Error("failed to start quiz", zap.Error(msg.err))
		m.session = nil
		m.screen = screenFailed
		return m
	}

	m.session = msg.session
	m.sessionPrefs = msg.prefs
	m.settings = msg.prefs
	if msg.prefs.HasHighScore() {
		m.highScore = strconv.Itoa(*msg.prefs.HighScore)
	}
	return m.showCurrent()
}

// showCurrent computes a fresh choice order for the current question.
func (m Model) showCurrent() Model {
	p, err := m.session.CurrentChoicePresentation(m.sessionPrefs.ShuffleAnswers)
	if err != nil {
		m.logger.Error("failed to present question", zap.Error(err))
		m.screen = screenFailed
		return m
	}
	m.presentation = p
	m.result = nil
	m.screen = screenPlaying
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "r":
		m.screen = screenLoading
		return m, m.startCmd()
	case "s":
		return m, m.toggleCmd(m.preferences.SetShuffleQuestions, !m.settings.ShuffleQuestions)
	case "a":
		return m, m.toggleCmd(m.preferences.SetShuffleAnswers, !m.settings.ShuffleAnswers)
	case "enter", "n", " ":
		return m.advance()
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return m.selectChoice(int(key[0] - '1')), nil
	}
	return m, nil
}

// selectChoice ignores positions that are absent or already answered.
func (m Model) selectChoice(pos int) Model {
	if m.screen != screenPlaying || m.session.Answered() || pos >= len(m.presentation) {
		return m
	}

	r, err := m.session.SelectAnswer(pos)
	if err != nil {
		m.logger.Error("quiz operation in illegal state", zap.Error(err))
		return m
	}
	m.result = &r
	return m
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	if m.screen != screenPlaying || !m.session.Answered() {
		return m, nil
	}

	if err := m.session.Advance(); err != nil {
		m.logger.Error("quiz operation in illegal state", zap.Error(err))
		return m, nil
	}

	if m.session.Finished() {
		m.screen = screenFinished
		m.presentation = nil
		m.result = nil
		return m, m.finishCmd(m.session)
	}
	return m.showCurrent(), nil
}
