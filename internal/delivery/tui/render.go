package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aliskhannn/math-quiz-bot/internal/domain/entities"
)

var (
	styleTitle     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleCorrect   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleIncorrect = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleSubtle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleQuestion  = lipgloss.NewStyle().Bold(true).MarginTop(1).MarginBottom(1)
)

// stylize applies style unless colors are disabled.
func (m Model) stylize(style lipgloss.Style, text string) string {
	if m.noColor {
		return text
	}
	return style.Render(text)
}

// View renders the current screen.
func (m Model) View() string {
	var body string
	switch m.screen {
	case screenLoading:
		body = "Loading questions..."
	case screenFailed:
		body = m.stylize(styleIncorrect, "Could not load questions.") + "\n\n" +
			m.stylize(styleSubtle, "[r] try again  [q] quit")
	case screenFinished:
		body = m.renderFinished()
	default:
		body = m.renderQuestion()
	}

	parts := []string{m.stylize(styleTitle, "Math Quiz"), body, m.renderSettings()}
	if m.status != "" {
		parts = append(parts, m.stylize(styleSubtle, m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func (m Model) renderQuestion() string {
	q, err := m.session.CurrentQuestion()
	if err != nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Question %d / %d   Score: %d   High score: %s",
		m.session.CurrentIndex()+1, m.session.Total(), m.session.Score(), m.highScore))
	sb.WriteString("\n")
	sb.WriteString(m.stylize(styleQuestion, q.Text))
	sb.WriteString("\n")

	for pos, c := range m.presentation {
		sb.WriteString(m.renderChoice(pos, c))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if m.result == nil {
		sb.WriteString(m.stylize(styleSubtle, "[1-9] answer"))
	} else {
		if m.result.Correct {
			sb.WriteString(m.stylize(styleCorrect, "Correct!"))
		} else {
			correct := fmt.Sprintf("%d. %s", m.presentation.PositionOf(q.CorrectIndex)+1, q.CorrectChoice())
			sb.WriteString(m.stylize(styleIncorrect, "Wrong. The correct answer is: "+correct))
		}
		sb.WriteString("\n")
		sb.WriteString(m.stylize(styleSubtle, "[enter] next"))
	}
	return sb.String()
}

func (m Model) renderChoice(pos int, c entities.Choice) string {
	label := fmt.Sprintf("%d. %s", pos+1, c.DisplayText)
	if m.result == nil {
		return "  " + label
	}
	switch c.OriginalIndex {
	case m.result.CorrectIndex:
		return m.stylize(styleCorrect, "✓ "+label)
	case m.result.SelectedIndex:
		return m.stylize(styleIncorrect, "✗ "+label)
	}
	return "  " + label
}

func (m Model) renderFinished() string {
	return fmt.Sprintf(
		"Quiz finished — your score: %d / %d\n\nThanks for playing. You can restart to try again.\n\nHigh score: %s\n\n%s",
		m.session.Score(),
		m.session.Total(),
		m.highScore,
		m.stylize(styleSubtle, "[r] restart  [q] quit"),
	)
}

func (m Model) renderSettings() string {
	return m.stylize(styleSubtle, fmt.Sprintf(
		"[s] shuffle questions: %s  [a] shuffle answers: %s  [r] restart  [q] quit",
		onOff(m.settings.ShuffleQuestions),
		onOff(m.settings.ShuffleAnswers),
	))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
