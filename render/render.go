package render

import (
	"connect4/game"
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
)

// Renderer draws boards as a framed grid with a 1-based column header.
type Renderer struct {
	au aurora.Aurora
}

// New returns a Renderer that emits ANSI colours when colors is set.
func New(colors bool) *Renderer {
	return &Renderer{au: aurora.NewAurora(colors)}
}

func (r *Renderer) Board(b *game.Board) string {
	var sb strings.Builder

	header := []string{}
	for col := 1; col <= b.Width(); col++ {
		header = append(header, fmt.Sprintf("%d", col))
	}
	sb.WriteString(r.au.Blue("  " + strings.Join(header, "   ")).String())
	sb.WriteString("\n")
	sb.WriteString(r.au.Blue(r.border("┌", "┬", "┐", b.Width())).String())
	sb.WriteString("\n")

	for row := 0; row < b.Height(); row++ {
		sb.WriteString(r.au.Blue("│").String())
		for col := 0; col < b.Width(); col++ {
			sb.WriteString(" ")
			sb.WriteString(r.Piece(b.Cell(row, col)))
			sb.WriteString(" ")
			sb.WriteString(r.au.Blue("│").String())
		}
		sb.WriteString("\n")

		if row < b.Height()-1 {
			sb.WriteString(r.au.Blue(r.border("├", "┼", "┤", b.Width())).String())
		} else {
			sb.WriteString(r.au.Blue(r.border("└", "┴", "┘", b.Width())).String())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Piece renders one cell: a red X for PlayerA, a yellow O for PlayerB and a
// blank for an empty cell.
func (r *Renderer) Piece(side game.Side) string {
	switch side {
	case game.PlayerA:
		return r.au.Red(string(side.Symbol())).String()
	case game.PlayerB:
		return r.au.Yellow(string(side.Symbol())).String()
	default:
		return " "
	}
}

// Banner highlights a status line.
func (r *Renderer) Banner(text string) string {
	return r.au.BgBlue(r.au.White(" " + text + " ")).String()
}

// Warning renders an input problem.
func (r *Renderer) Warning(text string) string {
	return r.au.Red(text).String()
}

func (r *Renderer) Fprint(w io.Writer, b *game.Board) error {
	_, err := io.WriteString(w, r.Board(b))
	return err
}

func (r *Renderer) border(left, middle, right string, width int) string {
	return left + strings.Repeat("───"+middle, width-1) + "───" + right
}
