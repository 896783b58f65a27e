// solve finds a proven-minimal move sequence for one ADVANCE mode
// problem file and prints it as a source-row list.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/flipull/config"
	"github.com/domino14/flipull/problem"
	"github.com/domino14/flipull/solver"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if len(cfg.Args) != 1 {
		log.Fatal().Msg("usage: solve [flags] <problem-file>")
	}
	path := cfg.Args[0]

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("cannot read problem file")
	}
	prob, err := problem.ParseProblem(string(raw))
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("cannot parse problem")
	}

	s := &solver.Solver{}
	if err := s.Init(prob); err != nil {
		log.Fatal().Err(err).Msg("initializing solver")
	}
	if cfg.Threads > 0 {
		s.SetThreads(cfg.Threads)
	}
	s.SetMaxDepth(cfg.MaxDepth)
	s.SetMaxNodes(cfg.MaxNodes)
	s.SetClearThreshold(cfg.ClearThreshold)
	s.SetTableMemFraction(cfg.TableMemFraction)

	ctx := context.Background()
	if cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TimeLimit)
		defer cancel()
	}

	res, err := s.Solve(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("search failed")
	}

	switch res.Status {
	case solver.StatusSolved:
		if err := res.Solution.Verify(prob, cfg.ClearThreshold); err != nil {
			log.Fatal().Err(err).Msg("solution failed verification")
		}
		fmt.Println(res.Solution)
	case solver.StatusUnsolvable:
		log.Info().Msg("NO SOLUTION EXISTS")
		os.Exit(1)
	case solver.StatusInconclusive:
		log.Info().Msg("INCONCLUSIVE; retry with larger bounds")
		os.Exit(2)
	}
}
