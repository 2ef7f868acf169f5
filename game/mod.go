package game

import "fmt"

// Any game that aims to be playable by an MCTS agent implements the State
// interface below (the searcher package depends only on this package; game
// implementations live in subpackages and the engine package imports both).

// Player identifies one of the two sides of a perfect-information game.
type Player int

const (
	Black Player = iota
	White
)

func (p Player) Other() Player {
	if p == Black {
		return White
	}
	return Black
}

func (p Player) String() string {
	switch p {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return fmt.Sprintf("player(%d)", int(p))
}

// Result is the outcome of a finished game.
type Result int

const (
	BlackWins Result = iota
	WhiteWins
	Tie
)

func (r Result) String() string {
	switch r {
	case BlackWins:
		return "black wins"
	case WhiteWins:
		return "white wins"
	case Tie:
		return "tie"
	}
	return fmt.Sprintf("result(%d)", int(r))
}

// IsWinFor reports whether the result is a win for the given player.
// A tie is not a win for either side.
func (r Result) IsWinFor(p Player) bool {
	return (r == BlackWins && p == Black) || (r == WhiteWins && p == White)
}

// Move is a single action by one player. Implementations must be value
// types comparable with ==.
type Move interface {
	fmt.Stringer
}

// State should be immutable - operations on State always return a new copy.
// A state must provide at least one legal move for the player to act; games
// where a player can be unable to place a piece express that as a
// distinguished pass move.
type State interface {
	CurrentPlayer() Player
	LegalMoves(p Player) []Move
	Play(m Move) State
	GameOver() bool
	// Result returns the outcome and true iff the game is over.
	Result() (Result, bool)
}
