// Package connectfour implements 7x6 Connect-Four. Black moves first.
package connectfour

import (
	"fmt"
	"strings"

	"mcts/game"
)

const (
	Columns = 7
	Rows    = 6
)

// Move drops a disc into the given column (0-indexed from the left).
type Move struct {
	Col int
}

func (m Move) String() string {
	return fmt.Sprintf("col %d", m.Col)
}

type cell int8

const (
	empty cell = iota
	blackDisc
	whiteDisc
)

func discOf(p game.Player) cell {
	if p == game.Black {
		return blackDisc
	}
	return whiteDisc
}

// State is a Connect-Four position. board[col][row] with row 0 at the
// bottom; height[col] is the number of discs in that column.
type State struct {
	board  [Columns][Rows]cell
	height [Columns]int8
	turn   game.Player
	winner cell
}

// NewState returns the empty board with Black to move.
func NewState() State {
	return State{turn: game.Black}
}

func (s State) CurrentPlayer() game.Player {
	return s.turn
}

func (s State) LegalMoves(p game.Player) []game.Move {
	if s.GameOver() {
		return nil
	}
	var moves []game.Move
	for col := 0; col < Columns; col++ {
		if s.height[col] < Rows {
			moves = append(moves, Move{Col: col})
		}
	}
	return moves
}

func (s State) Play(m game.Move) game.State {
	move, ok := m.(Move)
	if !ok {
		panic(fmt.Sprintf("not a connectfour move: %v", m))
	}
	if s.height[move.Col] >= Rows {
		panic(fmt.Sprintf("column %d is full", move.Col))
	}
	next := s
	row := int(next.height[move.Col])
	disc := discOf(s.turn)
	next.board[move.Col][row] = disc
	next.height[move.Col]++
	if next.connects(move.Col, row, disc) {
		next.winner = disc
	}
	next.turn = s.turn.Other()
	return next
}

// connects reports whether the disc just placed at (col,row) completes a
// line of four.
func (s State) connects(col, row int, disc cell) bool {
	dirs := [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
	for _, d := range dirs {
		run := 1
		for _, sign := range []int{1, -1} {
			c, r := col+sign*d[0], row+sign*d[1]
			for c >= 0 && c < Columns && r >= 0 && r < Rows && s.board[c][r] == disc {
				run++
				c += sign * d[0]
				r += sign * d[1]
			}
		}
		if run >= 4 {
			return true
		}
	}
	return false
}

func (s State) GameOver() bool {
	_, over := s.Result()
	return over
}

func (s State) Result() (game.Result, bool) {
	switch s.winner {
	case blackDisc:
		return game.BlackWins, true
	case whiteDisc:
		return game.WhiteWins, true
	}
	for col := 0; col < Columns; col++ {
		if s.height[col] < Rows {
			return 0, false
		}
	}
	return game.Tie, true
}

func (s State) String() string {
	var b strings.Builder
	for row := Rows - 1; row >= 0; row-- {
		for col := 0; col < Columns; col++ {
			switch s.board[col][row] {
			case blackDisc:
				b.WriteByte('B')
			case whiteDisc:
				b.WriteByte('W')
			default:
				b.WriteByte('.')
			}
		}
		if row > 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
