package game

// Side identifies the occupant of a board cell and the player owning it.
type Side int8

const (
	Empty Side = iota
	PlayerA
	PlayerB
)

const (
	Rows = 6
	Cols = 7

	// NoColumn stands in for a 1-based column when there is no move to play.
	NoColumn = 0

	// Center is the 0-based index of the middle column.
	Center = Cols / 2
)

// StateKey is a canonical snapshot of every cell of a board. Boards with
// identical cells produce equal keys regardless of how they were reached.
type StateKey string

// Evaluates the board to a heuristic score indicating how favorable the
// position is for side. Larger is better, no bounds apply.
type Evaluate func(b *Board, side Side) int

// Opponent returns the other player. Empty has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

func (s Side) String() string {
	switch s {
	case PlayerA:
		return "PlayerA"
	case PlayerB:
		return "PlayerB"
	default:
		return "Empty"
	}
}

// Symbol is the single character used for the side in text boards.
func (s Side) Symbol() byte {
	switch s {
	case PlayerA:
		return 'X'
	case PlayerB:
		return 'O'
	default:
		return '.'
	}
}

func (s Side) isPlayer() bool {
	return s == PlayerA || s == PlayerB
}
