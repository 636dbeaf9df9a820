// meta/meta.go
package meta

// DEPTH is the default minimax search depth.
const DEPTH = 4

// MIN_DEPTH and MAX_DEPTH bound the depth accepted from users.
const MIN_DEPTH = 1
const MAX_DEPTH = 10

// EPISODES is the default number of self-play training games.
const EPISODES = 10000

// SAVE_INTERVAL is the number of episodes between checkpoints.
const SAVE_INTERVAL = 1000

// MODEL_PATH is where the Q-table is stored by default.
const MODEL_PATH = "q_learning_model.json"

// GAMES is the default length of an agent vs minimax series.
const GAMES = 1

// GO_ROUTINES defines the number of games of a series played concurrently.
const GO_ROUTINES = 4

// OUTPUT_DIR is the root for experiment records.
const OUTPUT_DIR = "experiments"
