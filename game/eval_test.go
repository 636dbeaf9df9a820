package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreWindow(t *testing.T) {
	tests := []struct {
		name   string
		window [windowLength]Side
		want   int
	}{
		{"four of side", [4]Side{PlayerA, PlayerA, PlayerA, PlayerA}, 100},
		{"three of side and an empty cell", [4]Side{PlayerA, Empty, PlayerA, PlayerA}, 5},
		{"three of side blocked", [4]Side{PlayerA, PlayerB, PlayerA, PlayerA}, 0},
		{"two of side and two empty cells", [4]Side{Empty, PlayerA, Empty, PlayerA}, 2},
		{"two of side blocked", [4]Side{PlayerB, PlayerA, Empty, PlayerA}, 0},
		{"opponent three and an empty cell", [4]Side{PlayerB, PlayerB, Empty, PlayerB}, -4},
		{"opponent four is not penalized", [4]Side{PlayerB, PlayerB, PlayerB, PlayerB}, 0},
		{"single piece", [4]Side{Empty, Empty, PlayerA, Empty}, 0},
		{"empty window", [4]Side{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, scoreWindow(tt.window, PlayerA))
		})
	}
}

func TestScore(t *testing.T) {
	t.Run("empty board scores zero", func(t *testing.T) {
		require.Equal(t, 0, Score(NewBoard(), PlayerA))
		require.Equal(t, 0, Score(NewBoard(), PlayerB))
	})

	t.Run("centre pieces earn a bonus", func(t *testing.T) {
		b := NewBoard()
		b.Drop(Center+1, PlayerA)

		require.Equal(t, 3, Score(b, PlayerA), "Only the centre bonus should apply")
		require.Equal(t, 0, Score(b, PlayerB), "Opponent pieces give no centre bonus")
	})

	t.Run("open three is rewarded and penalized for the opponent", func(t *testing.T) {
		b := mustParse(t,
			".......",
			".......",
			".......",
			".......",
			".......",
			"XXX....",
		)

		// XXX. scores 5 and XX.. scores 2
		require.Equal(t, 7, Score(b, PlayerA))
		require.Equal(t, -4, Score(b, PlayerB))
	})

	t.Run("four in a row stacks every window", func(t *testing.T) {
		b := mustParse(t,
			".......",
			".......",
			".......",
			".......",
			".......",
			"XXXX...",
		)

		// centre 3, XXXX 100, XXX. 5, XX.. 2
		require.Equal(t, 110, Score(b, PlayerA))
	})

	t.Run("vertical and diagonal windows count", func(t *testing.T) {
		vertical := mustParse(t,
			".......",
			".......",
			".......",
			"O......",
			"O......",
			"O......",
		)
		// .OOO scores 5 and ..OO scores 2
		require.Equal(t, 7, Score(vertical, PlayerB))

		diagonal := mustParse(t,
			".......",
			".......",
			".......",
			"..O....",
			".OX....",
			"OXX....",
		)
		// Rising diagonal O O O . is the only open three for PlayerB,
		// the rest are two-piece windows with two empty cells.
		require.Greater(t, Score(diagonal, PlayerB), 5)
	})

	t.Run("score does not mutate the board", func(t *testing.T) {
		b := NewBoard()
		b.Drop(2, PlayerA)
		before := b.Key()

		Score(b, PlayerA)

		require.Equal(t, before, b.Key())
	})
}
