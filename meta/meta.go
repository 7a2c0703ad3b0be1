// meta/meta.go
package meta

// MIN_STICKS and MAX_STICKS bound the initial pile offered by the menu.
const MIN_STICKS = 10
const MAX_STICKS = 100

// DEFAULT_STICKS is the pile used when none is configured.
const DEFAULT_STICKS = 10

// TRAINING_ROUNDS is the number of self-play rounds behind a trained AI.
const TRAINING_ROUNDS = 1000

// EXPORT_FILE receives the trained policy after every training session.
const EXPORT_FILE = "hat-contents.txt"

// EVAL_GAMES is the number of evaluation games per experiment session.
const EVAL_GAMES = 500

// SERVER_ADDR is where the move service listens by default.
const SERVER_ADDR = ":8080"
