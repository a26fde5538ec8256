package board

import (
	"fmt"
	"strconv"
	"strings"
)

const cellWidth = 3

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// String renders the board as a text grid with a header row of column
// indices and one line per row.
func (b *Board) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Board(%d, %d):\n", b.n, b.n)

	sb.WriteString(center("x/y", cellWidth) + " |")
	for y := range b.n {
		sb.WriteString(center(strconv.Itoa(y), cellWidth) + "|")
	}
	sb.WriteByte('\n')

	for x := range b.n {
		sb.WriteString(center(strconv.Itoa(x), cellWidth) + " |")
		for y := range b.n {
			sb.WriteString(center(b.cells[x*b.n+y].Render(b.debug), cellWidth) + "|")
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Rows returns the glyph of every cell, row by row, as the current view
// shows them.
func (b *Board) Rows() [][]string {
	rows := make([][]string, b.n)
	for x := range b.n {
		rows[x] = make([]string, b.n)
		for y := range b.n {
			rows[x][y] = b.cells[x*b.n+y].Render(b.debug)
		}
	}
	return rows
}
