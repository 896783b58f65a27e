// format renders a solved problem as a human-readable playback or as an
// emulator-movie paste (FCEUX TAS editor or BizHawk TAStudio).
package main

import (
	"fmt"
	"os"

	"github.com/namsral/flag"
	"github.com/rs/zerolog/log"

	"github.com/domino14/flipull/movie"
	"github.com/domino14/flipull/problem"
	"github.com/domino14/flipull/solver"
)

func main() {
	fs := flag.NewFlagSet("format", flag.ContinueOnError)
	format := fs.String("format", "pretty", "output format: pretty, fceux, neshawk")
	clearThreshold := fs.Int("clear-threshold", solver.DefaultClearThreshold, "blocks the stage-clear animation erases; use 0 for the final stage")
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("parsing flags")
	}
	if fs.NArg() != 2 {
		log.Fatal().Msg("usage: format [flags] <problem-file> <solution-file>")
	}

	prob, err := readProblem(fs.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load problem")
	}
	sol, err := readSolution(fs.Arg(1))
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load solution")
	}

	if err := sol.Verify(prob, *clearThreshold); err != nil {
		log.Fatal().Err(err).Msg("solution failed verification")
	}

	switch *format {
	case "pretty":
		out, err := movie.FormatPretty(prob, sol)
		if err != nil {
			log.Fatal().Err(err).Msg("rendering playback")
		}
		fmt.Print(out)
	case "fceux", "neshawk":
		inputs, err := movie.Render(prob, sol, movie.DefaultTiming())
		if err != nil {
			log.Fatal().Err(err).Msg("rendering movie")
		}
		if *format == "fceux" {
			fmt.Print(movie.FormatFCEUX(inputs))
		} else {
			fmt.Print(movie.FormatNesHawk(inputs))
		}
	default:
		log.Fatal().Str("format", *format).Msg("unknown format")
	}
}

func readProblem(path string) (*problem.Problem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return problem.ParseProblem(string(raw))
}

func readSolution(path string) (*solver.Solution, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return solver.ParseSolution(string(raw))
}
