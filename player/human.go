package player

import (
	"bufio"
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/render"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

var _ engine.Quitter = (*Human)(nil)

// Human asks a person at the console for a column until a playable one is
// entered.
type Human struct {
	Name     string
	in       *bufio.Scanner
	out      io.Writer
	renderer *render.Renderer
	err      error
}

func NewHuman(name string, in io.Reader, out io.Writer, renderer *render.Renderer) *Human {
	return &Human{
		Name:     name,
		in:       bufio.NewScanner(in),
		out:      out,
		renderer: renderer,
	}
}

// FindMove prompts for a 1-based column. When input runs out it returns
// game.NoColumn and Err reports why, which ends an engine game.
func (h *Human) FindMove(b *game.Board, side game.Side) (int, metrics.SearchMetric) {
	start := time.Now()
	for {
		fmt.Fprintf(h.out, "%s (%s), choose a column (1-%d): ", h.Name, h.renderer.Piece(side), b.Width())
		if !h.in.Scan() {
			h.err = h.in.Err()
			if h.err == nil {
				h.err = io.EOF
			}
			return game.NoColumn, metrics.SearchMetric{}
		}

		column, err := strconv.Atoi(strings.TrimSpace(h.in.Text()))
		if err != nil || column < 1 || column > b.Width() {
			fmt.Fprintln(h.out, h.renderer.Warning(fmt.Sprintf("Invalid column! Choose between 1 and %d.", b.Width())))
			continue
		}
		if b.Cell(0, column-1) != game.Empty {
			fmt.Fprintln(h.out, h.renderer.Warning("This column is full! Try another one."))
			continue
		}
		return column, metrics.SearchMetric{Duration: time.Since(start)}
	}
}

// Err returns the input error that ended the last prompt, if any.
func (h *Human) Err() error {
	return h.err
}

// Share returns another named player reading from the same console.
func (h *Human) Share(name string) *Human {
	return &Human{
		Name:     name,
		in:       h.in,
		out:      h.out,
		renderer: h.renderer,
	}
}
