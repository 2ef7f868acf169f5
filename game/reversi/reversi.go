// Package reversi implements 8x8 Reversi (Othello). Black moves first. A
// player with no flipping placement must play the pass move; the game ends
// when neither player can place a disc.
package reversi

import (
	"fmt"
	"strings"

	"mcts/game"
)

const Size = 8

// Move places a disc at the given cell, or passes when Pass is set.
type Move struct {
	Row, Col int
	Pass     bool
}

func (m Move) String() string {
	if m.Pass {
		return "pass"
	}
	// Conventional notation: column letter then 1-indexed row
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
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

// State is a Reversi position.
type State struct {
	board [Size][Size]cell
	turn  game.Player
}

// NewState returns the standard starting position with Black to move.
func NewState() State {
	s := State{turn: game.Black}
	s.board[3][3] = whiteDisc
	s.board[4][4] = whiteDisc
	s.board[3][4] = blackDisc
	s.board[4][3] = blackDisc
	return s
}

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// flipsFrom returns the number of opponent discs flipped in one direction
// by placing own at (r,c).
func (s State) flipsFrom(r, c, dr, dc int, own cell) int {
	other := blackDisc
	if own == blackDisc {
		other = whiteDisc
	}
	n := 0
	r, c = r+dr, c+dc
	for r >= 0 && r < Size && c >= 0 && c < Size && s.board[r][c] == other {
		n++
		r, c = r+dr, c+dc
	}
	if n == 0 || r < 0 || r >= Size || c < 0 || c >= Size || s.board[r][c] != own {
		return 0
	}
	return n
}

func (s State) validPlacement(r, c int, own cell) bool {
	if s.board[r][c] != empty {
		return false
	}
	for _, d := range directions {
		if s.flipsFrom(r, c, d[0], d[1], own) > 0 {
			return true
		}
	}
	return false
}

func (s State) placements(p game.Player) []game.Move {
	own := discOf(p)
	var moves []game.Move
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if s.validPlacement(r, c, own) {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

func (s State) CurrentPlayer() game.Player {
	return s.turn
}

func (s State) LegalMoves(p game.Player) []game.Move {
	if s.GameOver() {
		return nil
	}
	moves := s.placements(p)
	if len(moves) == 0 {
		return []game.Move{Move{Pass: true}}
	}
	return moves
}

func (s State) Play(m game.Move) game.State {
	move, ok := m.(Move)
	if !ok {
		panic(fmt.Sprintf("not a reversi move: %v", m))
	}
	next := s
	if !move.Pass {
		own := discOf(s.turn)
		next.board[move.Row][move.Col] = own
		for _, d := range directions {
			n := s.flipsFrom(move.Row, move.Col, d[0], d[1], own)
			for i := 1; i <= n; i++ {
				next.board[move.Row+i*d[0]][move.Col+i*d[1]] = own
			}
		}
	}
	next.turn = s.turn.Other()
	return next
}

func (s State) GameOver() bool {
	return len(s.placements(game.Black)) == 0 && len(s.placements(game.White)) == 0
}

func (s State) Result() (game.Result, bool) {
	if !s.GameOver() {
		return 0, false
	}
	black, white := s.Count()
	switch {
	case black > white:
		return game.BlackWins, true
	case white > black:
		return game.WhiteWins, true
	}
	return game.Tie, true
}

// Count returns the number of black and white discs on the board.
func (s State) Count() (black, white int) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch s.board[r][c] {
			case blackDisc:
				black++
			case whiteDisc:
				white++
			}
		}
	}
	return black, white
}

func (s State) String() string {
	var b strings.Builder
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch s.board[r][c] {
			case blackDisc:
				b.WriteByte('B')
			case whiteDisc:
				b.WriteByte('W')
			default:
				b.WriteByte('.')
			}
		}
		if r < Size-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
