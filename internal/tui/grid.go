package tui

import "github.com/charmbracelet/lipgloss"

// Sentinel inputs produced by the clear buttons. The model interprets
// them instead of appending text.
const (
	ClearAll   = "CLEAR_ALL"
	ClearEntry = "CLEAR_ENTRY"
)

// Button is one key of the calculator pad.
type Button struct {
	// Label is painted on the key.
	Label string
	// Key is the keyboard shortcut producing the same input.
	Key rune
}

// Input returns the text the button feeds to the model: a clear sentinel,
// a function call opener, or the label itself.
func (b Button) Input() string {
	switch b.Label {
	case "C":
		return ClearAll
	case "CE":
		return ClearEntry
	case "sqrt":
		return "sqrt("
	case "abs":
		return "abs("
	}
	return b.Label
}

const (
	gridCols = 4
	gridRows = 6
	// Rendered size of one key, borders included.
	cellWidth  = 9
	cellHeight = 3
)

// Grid is the calculator's 6x4 button pad: clears and parens, then the
// function row, then digits with one operator per row.
type Grid struct {
	buttons []Button
	pressed int // index of the held button, or -1
}

func NewGrid() *Grid {
	return &Grid{
		buttons: []Button{
			{"C", 'c'}, {"CE", 'e'}, {"(", '('}, {")", ')'},
			{"sqrt", 's'}, {"abs", 'a'}, {"^", '^'}, {"%", '%'},
			{"7", '7'}, {"8", '8'}, {"9", '9'}, {"/", '/'},
			{"4", '4'}, {"5", '5'}, {"6", '6'}, {"*", '*'},
			{"1", '1'}, {"2", '2'}, {"3", '3'}, {"-", '-'},
			{"0", '0'}, {".", '.'}, {"!", '!'}, {"+", '+'},
		},
		pressed: -1,
	}
}

// HandleKey maps a typed rune to a button's input text.
func (g *Grid) HandleKey(r rune) (string, bool) {
	for _, b := range g.buttons {
		if b.Key == r {
			return b.Input(), true
		}
	}
	return "", false
}

// hit maps terminal coordinates to a button index, given the grid's
// top-left corner in the same coordinates.
func (g *Grid) hit(x, y, originX, originY int) (int, bool) {
	x -= originX
	y -= originY
	if x < 0 || y < 0 || x >= gridCols*cellWidth || y >= gridRows*cellHeight {
		return 0, false
	}
	return (y/cellHeight)*gridCols + x/cellWidth, true
}

// MouseDown marks the key under the cursor as held.
func (g *Grid) MouseDown(x, y, originX, originY int) {
	if i, ok := g.hit(x, y, originX, originY); ok {
		g.pressed = i
	}
}

// MouseUp releases the held key and returns its input text if the cursor
// is still over it, click-button style.
func (g *Grid) MouseUp(x, y, originX, originY int) (string, bool) {
	held := g.pressed
	g.pressed = -1
	if held < 0 {
		return "", false
	}
	if i, ok := g.hit(x, y, originX, originY); ok && i == held {
		return g.buttons[i].Input(), true
	}
	return "", false
}

// View renders the pad.
func (g *Grid) View() string {
	rows := make([]string, 0, gridRows)
	for r := 0; r < gridRows; r++ {
		cells := make([]string, 0, gridCols)
		for c := 0; c < gridCols; c++ {
			i := r*gridCols + c
			style := buttonStyle
			if i == g.pressed {
				style = buttonPressedStyle
			}
			cells = append(cells, style.Width(cellWidth-2).Render(g.buttons[i].Label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
