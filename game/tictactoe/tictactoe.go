// Package tictactoe implements 3x3 Tic-Tac-Toe. Black plays X and moves
// first; White plays O.
package tictactoe

import (
	"fmt"
	"strings"

	"mcts/game"
)

// Move places a mark at the given cell. Rows and columns are 0-indexed
// from the top-left corner.
type Move struct {
	Row, Col int
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

type cell int8

const (
	empty cell = iota
	markX
	markO
)

func (c cell) String() string {
	switch c {
	case markX:
		return "X"
	case markO:
		return "O"
	}
	return "_"
}

func markOf(p game.Player) cell {
	if p == game.Black {
		return markX
	}
	return markO
}

// State is a Tic-Tac-Toe position. The zero value is not valid; use
// NewState or Parse.
type State struct {
	board [3][3]cell
	turn  game.Player
}

// NewState returns the empty board with Black (X) to move.
func NewState() State {
	return State{turn: game.Black}
}

// Parse builds a position from three rows of "X", "O" and "_" separated by
// "/", e.g. "X_X/_O_/__O". The player to move is given explicitly since it
// is not always derivable from the marks.
func Parse(board string, turn game.Player) (State, error) {
	rows := strings.Split(board, "/")
	if len(rows) != 3 {
		return State{}, fmt.Errorf("expected 3 rows, got %d", len(rows))
	}
	s := State{turn: turn}
	for r, row := range rows {
		if len(row) != 3 {
			return State{}, fmt.Errorf("row %d: expected 3 cells, got %d", r, len(row))
		}
		for c, ch := range row {
			switch ch {
			case 'X', 'x':
				s.board[r][c] = markX
			case 'O', 'o':
				s.board[r][c] = markO
			case '_', '.':
				s.board[r][c] = empty
			default:
				return State{}, fmt.Errorf("row %d: unexpected cell %q", r, ch)
			}
		}
	}
	return s, nil
}

func (s State) CurrentPlayer() game.Player {
	return s.turn
}

func (s State) LegalMoves(p game.Player) []game.Move {
	if s.GameOver() {
		return nil
	}
	var moves []game.Move
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if s.board[r][c] == empty {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

func (s State) Play(m game.Move) game.State {
	move, ok := m.(Move)
	if !ok {
		panic(fmt.Sprintf("not a tictactoe move: %v", m))
	}
	next := s // arrays copy by value
	next.board[move.Row][move.Col] = markOf(s.turn)
	next.turn = s.turn.Other()
	return next
}

func (s State) GameOver() bool {
	_, over := s.Result()
	return over
}

func (s State) Result() (game.Result, bool) {
	switch s.winnerMark() {
	case markX:
		return game.BlackWins, true
	case markO:
		return game.WhiteWins, true
	}
	if s.full() {
		return game.Tie, true
	}
	return 0, false
}

var lines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

func (s State) winnerMark() cell {
	for _, line := range lines {
		first := s.board[line[0][0]][line[0][1]]
		if first == empty {
			continue
		}
		if s.board[line[1][0]][line[1][1]] == first && s.board[line[2][0]][line[2][1]] == first {
			return first
		}
	}
	return empty
}

func (s State) full() bool {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if s.board[r][c] == empty {
				return false
			}
		}
	}
	return true
}

func (s State) String() string {
	var b strings.Builder
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			b.WriteString(s.board[r][c].String())
		}
		if r < 2 {
			b.WriteByte('/')
		}
	}
	return b.String()
}
