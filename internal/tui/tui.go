// Package tui is a terminal front end for the calculator keypad.
package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robbyt/go-safecalc/engine"
	"github.com/robbyt/go-safecalc/keypad"
)

// Model is the bubbletea model wrapping a keypad.Calculator.
type Model struct {
	ctx      context.Context
	calc     *keypad.Calculator
	handler  keypad.Handler
	keys     keyMap
	help     help.Model
	width    int
	quitting bool
}

// New creates a Model that evaluates with ev and logs key presses to logger.
func New(ctx context.Context, ev engine.Evaluator, logger *slog.Logger) *Model {
	calc := keypad.NewCalculator(ev)
	return &Model{
		ctx:     ctx,
		calc:    calc,
		handler: keypad.LoggingMiddleware(logger, calc),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// Calculator returns the underlying calculator state.
func (m *Model) Calculator() *keypad.Calculator {
	return m.calc
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if k := keypad.Classify(msg.String()); k.Action != keypad.Ignored {
			m.handler.HandleKey(m.ctx, k, keypad.Keyboard)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	input := m.calc.Input()
	if input == "" {
		input = " "
	}

	display := displayStyle
	if !m.calc.Result().IsNumber() {
		display = errorDisplayStyle
	}

	parts := []string{
		titleStyle.Render("safecalc"),
		inputStyle.Render(input),
		display.Render(m.calc.Display()),
	}
	if n := m.calc.Notice(); n != "" {
		parts = append(parts, noticeStyle.Render(n))
	}
	parts = append(parts, renderKeypad(), m.help.ShortHelpView(m.keys.bindings()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func renderKeypad() string {
	rows := make([]string, 0, len(keypad.Layout))
	for _, row := range keypad.Layout {
		cells := make([]string, 0, len(row))
		for _, k := range row {
			style := buttonStyle
			if keypad.Classify(k).Action != keypad.Append {
				style = actionButtonStyle
			}
			cells = append(cells, style.Render(buttonLabel(k)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func buttonLabel(k string) string {
	switch k {
	case keypad.KeyBackspace:
		return "⌫"
	default:
		return strings.ToUpper(k)
	}
}

// Run starts the terminal UI and blocks until the user quits or ctx ends.
func Run(ctx context.Context, ev engine.Evaluator, logger *slog.Logger, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(ctx, ev, logger), opts...).Run()
	return err
}
