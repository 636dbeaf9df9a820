package game

const (
	centerWeight = 3
	fourWeight   = 100
	threeWeight  = 5
	twoWeight    = 2
	blockPenalty = 4
	windowLength = 4
)

// Score evaluates the board for side by rewarding centre column control and
// summing a pattern score over every 4-cell window in the four directions.
// It is a heuristic: outright wins are expected to be detected by the caller.
func Score(b *Board, side Side) int {
	score := 0
	g := &b.cells

	// Centre column
	for i := 0; i < Rows; i++ {
		if g[i][Center] == side {
			score += centerWeight
		}
	}

	var window [windowLength]Side

	// Rows
	for i := 0; i < Rows; i++ {
		for j := 0; j < Cols-3; j++ {
			for k := range window {
				window[k] = g[i][j+k]
			}
			score += scoreWindow(window, side)
		}
	}

	// Columns
	for j := 0; j < Cols; j++ {
		for i := 0; i < Rows-3; i++ {
			for k := range window {
				window[k] = g[i+k][j]
			}
			score += scoreWindow(window, side)
		}
	}

	// Diagonals down-right
	for i := 0; i < Rows-3; i++ {
		for j := 0; j < Cols-3; j++ {
			for k := range window {
				window[k] = g[i+k][j+k]
			}
			score += scoreWindow(window, side)
		}
	}

	// Diagonals up-right
	for i := 0; i < Rows-3; i++ {
		for j := 0; j < Cols-3; j++ {
			for k := range window {
				window[k] = g[i+3-k][j+k]
			}
			score += scoreWindow(window, side)
		}
	}

	return score
}

// scoreWindow scores four aligned cells for side. The opponent penalty is
// applied independently of the side bonuses.
func scoreWindow(window [windowLength]Side, side Side) int {
	mine, theirs, empty := 0, 0, 0
	opponent := side.Opponent()
	for _, cell := range window {
		switch cell {
		case side:
			mine++
		case opponent:
			theirs++
		case Empty:
			empty++
		}
	}

	score := 0
	switch {
	case mine == 4:
		score += fourWeight
	case mine == 3 && empty == 1:
		score += threeWeight
	case mine == 2 && empty == 2:
		score += twoWeight
	}

	if theirs == 3 && empty == 1 {
		score -= blockPenalty
	}
	return score
}
