package render

import (
	"bytes"
	"connect4/game"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoard(t *testing.T) {
	b := game.NewBoard()
	b.Drop(1, game.PlayerA)
	b.Drop(4, game.PlayerB)

	lines := strings.Split(strings.TrimSuffix(New(false).Board(b), "\n"), "\n")

	require.Len(t, lines, 2+2*game.Rows)
	require.Equal(t, "  1   2   3   4   5   6   7", lines[0])
	require.Equal(t, "┌───┬───┬───┬───┬───┬───┬───┐", lines[1])
	require.Equal(t, "│   │   │   │   │   │   │   │", lines[2])
	require.Equal(t, "├───┼───┼───┼───┼───┼───┼───┤", lines[3])
	require.Equal(t, "│ X │   │   │ O │   │   │   │", lines[12])
	require.Equal(t, "└───┴───┴───┴───┴───┴───┴───┘", lines[13])
}

func TestColors(t *testing.T) {
	require.Equal(t, "X", New(false).Piece(game.PlayerA))
	require.Equal(t, " ", New(false).Piece(game.Empty))
	require.Contains(t, New(true).Piece(game.PlayerA), "\x1b[", "Coloured output should carry ANSI codes")
	require.Contains(t, New(true).Piece(game.PlayerB), "O")
	require.Equal(t, " Draw ", New(false).Banner("Draw"))
	require.Equal(t, "invalid column", New(false).Warning("invalid column"))
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	r := New(false)

	require.NoError(t, r.Fprint(&buf, game.NewBoard()))
	require.Equal(t, r.Board(game.NewBoard()), buf.String())
}
