package tictactoe

import (
	"testing"

	"mcts/game"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("round trips a mixed board", func(t *testing.T) {
		s, err := Parse("X_X/_O_/__O", game.Black)
		require.NoError(t, err)
		require.Equal(t, "X_X/_O_/__O", s.String(), "Parse then String should round trip")
		require.Equal(t, game.Black, s.CurrentPlayer())
	})

	t.Run("rejects malformed boards", func(t *testing.T) {
		_, err := Parse("X_X/_O_", game.Black)
		require.Error(t, err, "two rows should not parse")
		_, err = Parse("X_X/_O_/__?", game.Black)
		require.Error(t, err, "unknown cell should not parse")
	})
}

func TestLegalMoves(t *testing.T) {
	t.Run("empty board has nine moves", func(t *testing.T) {
		s := NewState()
		require.Len(t, s.LegalMoves(game.Black), 9)
	})

	t.Run("finished game has no moves", func(t *testing.T) {
		s, err := Parse("XXX/OO_/___", game.White)
		require.NoError(t, err)
		require.Empty(t, s.LegalMoves(game.White), "no moves once the game is over")
	})
}

func TestPlay(t *testing.T) {
	s := NewState()
	next := s.Play(Move{Row: 1, Col: 1}).(State)

	require.Equal(t, "___/_X_/___", next.String(), "Black plays X")
	require.Equal(t, game.White, next.CurrentPlayer(), "turn should alternate")
	require.Equal(t, "___/___/___", s.String(), "Play should not mutate the original state")
}

func TestResult(t *testing.T) {
	cases := []struct {
		name  string
		board string
		want  game.Result
		over  bool
	}{
		{"row win for X", "XXX/OO_/___", game.BlackWins, true},
		{"column win for O", "OX_/OXX/O__", game.WhiteWins, true},
		{"diagonal win for X", "X_O/_XO/__X", game.BlackWins, true},
		{"tie on full board", "XOX/XXO/OXO", game.Tie, true},
		{"in progress", "X__/_O_/___", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Parse(tc.board, game.Black)
			require.NoError(t, err)
			got, over := s.Result()
			require.Equal(t, tc.over, over)
			if tc.over {
				require.Equal(t, tc.want, got)
			}
		})
	}
}
