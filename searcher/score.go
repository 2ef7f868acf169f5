package searcher

import (
	"math"

	"mcts/game"

	"github.com/rs/zerolog/log"
)

// Hyperparameters for MCTS

// DefaultExploreBias is intentionally higher than the classic sqrt(2):
// simulation counts must be high before exploitation dominates.
const DefaultExploreBias = 3.0

// DefaultJitter perturbs each worker's explore constant so concurrent
// workers do not deterministically descend the same path.
const DefaultJitter = 0.10

// traversalScore scores candidate child c under parent p for the search
// player. Unvisited children score +Inf; children whose saturated worst
// case is a proven loss score -Inf. On the opponent's turn wins are
// inverted, so siblings are ordered by the opponent's maximum.
func traversalScore(p, c *Node, player game.Player, bias float64) float64 {
	n := c.stats.plays.Load()
	if n == 0 {
		return math.Inf(1)
	}
	if wcWins, wcPlays := c.WorstCase(); wcPlays > 0 && wcWins == 0 {
		return math.Inf(-1)
	}

	w := c.stats.wins.Load()
	if w > n {
		log.Warn().
			Int64("wins", w).
			Int64("plays", n).
			Msg("consistency violation: wins exceed plays, clamping")
		w = n
	}
	if p.state.CurrentPlayer() != player {
		w = n - w
	}

	parentPlays := p.stats.plays.Load()
	if parentPlays < 1 {
		parentPlays = 1
	}

	mean := float64(w) / float64(n)
	return mean + bias*math.Sqrt(math.Log(float64(parentPlays))/float64(n))
}
