package learner

import "connect4/game"

// Table maps a board snapshot to the estimated return of each 1-based column
// played from it.
type Table map[game.StateKey]map[int]float64

// get returns Q(state, action), materializing a missing entry at 0.0. A state
// holding a nil action map counts as missing.
func (t Table) get(state game.StateKey, action int) float64 {
	actions := t[state]
	if actions == nil {
		actions = make(map[int]float64)
		t[state] = actions
	}
	value, ok := actions[action]
	if !ok {
		actions[action] = 0.0
	}
	return value
}

func (t Table) set(state game.StateKey, action int, value float64) {
	actions := t[state]
	if actions == nil {
		actions = make(map[int]float64)
		t[state] = actions
	}
	actions[action] = value
}

// Entries counts the (state, action) pairs held by the table.
func (t Table) Entries() int {
	n := 0
	for _, actions := range t {
		n += len(actions)
	}
	return n
}

// Copy returns a deep copy of the table.
func (t Table) Copy() Table {
	c := make(Table, len(t))
	for state, actions := range t {
		ac := make(map[int]float64, len(actions))
		for action, value := range actions {
			ac[action] = value
		}
		c[state] = ac
	}
	return c
}
