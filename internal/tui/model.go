// Package tui implements the interactive calculator: an input line, a
// result line, and a clickable button pad. The expression is re-evaluated
// on every edit.
package tui

import (
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kehrlein/deskcalc"
	"github.com/kehrlein/deskcalc/internal/config"
	"github.com/kehrlein/deskcalc/internal/display"
	"github.com/kehrlein/deskcalc/internal/logger"
)

// Fixed layout: title, input box, result box, pad, help line. The pad's
// origin is needed for mouse hit-testing.
const (
	boxWidth    = gridCols * cellWidth
	gridOriginX = 0
	gridOriginY = 7
)

type keyMap struct {
	Quit       key.Binding
	Backspace  key.Binding
	Clear      key.Binding
	ClearEntry key.Binding
	Sqrt       key.Binding
	Abs        key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Clear, k.ClearEntry, k.Sqrt, k.Abs, k.Backspace, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Clear, k.ClearEntry, k.Backspace}, {k.Sqrt, k.Abs, k.Quit}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		ClearEntry: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "clear entry"),
		),
		Sqrt: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sqrt("),
		),
		Abs: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "abs("),
		),
	}
}

// Model is the calculator's bubbletea model.
type Model struct {
	cfg    *config.Config
	grid   *Grid
	keys   keyMap
	help   help.Model
	input  string
	result string
	isErr  bool
	width  int
	height int
}

// New builds the initial model.
func New(cfg *config.Config) Model {
	return Model{
		cfg:  cfg,
		grid: NewGrid(),
		keys: defaultKeyMap(),
		help: help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		switch {
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			m.grid.MouseDown(msg.X, msg.Y, gridOriginX, gridOriginY)
		case msg.Action == tea.MouseActionRelease:
			if text, ok := m.grid.MouseUp(msg.X, msg.Y, gridOriginX, gridOriginY); ok {
				m.apply(text)
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Backspace):
			if m.input != "" {
				_, n := utf8.DecodeLastRuneInString(m.input)
				m.input = m.input[:len(m.input)-n]
				m.refresh()
			}
			return m, nil
		}
		switch s := msg.String(); s {
		case "q":
			// q quits only while the input is empty, so expressions may
			// still contain the letter via sqrt once typing started.
			if m.input == "" {
				return m, tea.Quit
			}
			return m, nil
		case " ":
			m.apply(" ")
			return m, nil
		default:
			if len(s) == 1 {
				if text, ok := m.grid.HandleKey(rune(s[0])); ok {
					m.apply(text)
				}
			}
			return m, nil
		}
	}
	return m, nil
}

// apply feeds one button press or keystroke worth of text to the input
// and re-evaluates.
func (m *Model) apply(text string) {
	switch text {
	case ClearAll:
		m.input = ""
	case ClearEntry:
		// Drop the last number or operator: pop back to the previous
		// whitespace.
		for m.input != "" {
			r, n := utf8.DecodeLastRuneInString(m.input)
			if r == ' ' {
				break
			}
			m.input = m.input[:len(m.input)-n]
		}
	default:
		if len(m.input)+len(text) > m.cfg.Input.MaxLength {
			m.result = "Error: Input too long"
			m.isErr = true
			return
		}
		m.input += text
	}
	m.refresh()
}

// refresh recomputes the result line from the current input.
func (m *Model) refresh() {
	m.isErr = false
	if m.input == "" {
		m.result = ""
		return
	}
	res, err := m.evaluate()
	if err != nil {
		logger.Debug("evaluate %q: %v", m.input, err)
		m.result = "Error: " + err.Error()
		m.isErr = true
		return
	}
	m.result = res
}

// evaluate runs the full pipeline: literal sanity check, tokenize,
// evaluate, format.
func (m *Model) evaluate() (string, error) {
	if err := display.CheckLiterals(m.input, m.cfg.Input.MaxLiteral); err != nil {
		return "", err
	}
	tokens, err := deskcalc.Tokenize(m.input)
	if err != nil {
		return "", err
	}
	v, err := deskcalc.Evaluate(tokens)
	if err != nil {
		return "", err
	}
	return display.FormatResult(v, m.cfg.Display.DecimalPlaces, m.cfg.MaxResult())
}

// tail truncates s from the left so it fits the box content width.
func tail(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return "…" + s[len(s)-width+1:]
}

func (m Model) View() string {
	contentWidth := boxWidth - 4 // borders and padding

	title := titleStyle.Render("deskcalc") +
		labelStyle.Render(fmt.Sprintf("  %d/%d", len(m.input), m.cfg.Input.MaxLength))

	input := inputBoxStyle.Width(boxWidth - 2).Render(tail(m.input, contentWidth))

	line := m.result
	style := resultStyle
	if m.isErr {
		style = errorStyle
	}
	result := resultBoxStyle.Width(boxWidth - 2).Render(style.Render(tail(line, contentWidth)))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		input,
		result,
		m.grid.View(),
		helpStyle.Render(m.help.View(m.keys)),
	)
}

// Run starts the interactive calculator and blocks until it quits.
func Run(cfg *config.Config) error {
	logger.Info("starting calculator")
	p := tea.NewProgram(New(cfg), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	logger.Info("calculator stopped")
	return err
}
