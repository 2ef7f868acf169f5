package searcher

import "errors"

var (
	// ErrAlreadyExpanded signals a lost expansion race. Recoverable: the
	// worker re-selects and continues.
	ErrAlreadyExpanded = errors.New("node already expanded")

	// ErrNoLegalMoves indicates the game-state port violated its contract:
	// a non-terminal state must always provide at least one move.
	ErrNoLegalMoves = errors.New("state has no legal moves")
)
