package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"mcts/agent"
	"mcts/communication/server"
	"mcts/engine"
	"mcts/experiments"
	"mcts/game"
	"mcts/game/connectfour"
	"mcts/game/reversi"
	"mcts/game/tictactoe"
	"mcts/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	game       string
	black      string
	white      string
	workers    int
	duration   time.Duration
	rollouts   int
	jitter     float64
	bias       float64
	serve      string
	experiment string
	verbose    bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.game, "game", "reversi", "game to play: tictactoe, connectfour or reversi")
	flag.StringVar(&cfg.black, "black", "mcts", "black agent: mcts or random")
	flag.StringVar(&cfg.white, "white", "random", "white agent: mcts or random")
	flag.IntVar(&cfg.workers, "workers", searcher.DefaultWorkers, "search goroutines per move")
	flag.DurationVar(&cfg.duration, "duration", searcher.DefaultDuration, "wall-clock budget per move")
	flag.IntVar(&cfg.rollouts, "rollouts", 0, "rollout budget per move (overrides duration)")
	flag.Float64Var(&cfg.jitter, "jitter", searcher.DefaultJitter, "per-worker explore jitter in [0,1)")
	flag.Float64Var(&cfg.bias, "bias", searcher.DefaultExploreBias, "exploration constant")
	flag.StringVar(&cfg.serve, "serve", "", "serve a match against the engine on this address instead of playing locally")
	flag.StringVar(&cfg.experiment, "experiment", "", "run an experiment: speedup or strength")
	flag.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}

func run(cfg config) error {
	switch cfg.experiment {
	case "":
	case "speedup":
		return experiments.RunSpeedupExperiment()
	case "strength":
		return experiments.RunStrengthExperiment()
	default:
		return fmt.Errorf("unknown experiment %q", cfg.experiment)
	}

	state, err := newGame(cfg.game)
	if err != nil {
		return err
	}

	if cfg.serve != "" {
		// Human plays Black, the engine White
		mcts := agent.NewMCTSAgent(game.White, newMCTS(cfg))
		return server.New(state, game.Black, mcts).ListenAndServe(cfg.serve)
	}

	black, err := newAgent(cfg.black, game.Black, cfg)
	if err != nil {
		return err
	}
	white, err := newAgent(cfg.white, game.White, cfg)
	if err != nil {
		return err
	}

	result, err := engine.LocalEngine(state, black, white).Run()
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}

func newGame(name string) (game.State, error) {
	switch name {
	case "tictactoe":
		return tictactoe.NewState(), nil
	case "connectfour":
		return connectfour.NewState(), nil
	case "reversi":
		return reversi.NewState(), nil
	}
	return nil, fmt.Errorf("unknown game %q", name)
}

func newAgent(kind string, player game.Player, cfg config) (agent.Agent, error) {
	switch kind {
	case "mcts":
		return agent.NewMCTSAgent(player, newMCTS(cfg)), nil
	case "random":
		return agent.NewRandomAgent(uint64(time.Now().UnixNano())), nil
	}
	return nil, fmt.Errorf("unknown agent %q", kind)
}

func newMCTS(cfg config) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithWorkers(cfg.workers),
		searcher.WithJitter(cfg.jitter),
		searcher.WithExploreBias(cfg.bias),
		searcher.WithMetrics(),
	}
	if cfg.rollouts > 0 {
		options = append(options, searcher.WithRollouts(cfg.rollouts))
	} else {
		options = append(options, searcher.WithDuration(cfg.duration))
	}
	return searcher.NewMCTS(options...)
}
