package config

import (
	"time"

	"github.com/namsral/flag"
)

type Config struct {
	Threads          int
	MaxDepth         int
	MaxNodes         uint64
	ClearThreshold   int
	TableMemFraction float64
	TimeLimit        time.Duration
	Debug            bool

	// Args holds the positional arguments left after flag parsing.
	Args []string
}

func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("flipull", flag.ContinueOnError)
	fs.IntVar(&c.Threads, "threads", 0, "worker goroutines for frontier expansion; 0 picks a default from CPU count")
	fs.IntVar(&c.MaxDepth, "max-depth", 0, "depth bound for the search; 0 is unbounded")
	fs.Uint64Var(&c.MaxNodes, "max-nodes", 0, "node bound for the search; 0 derives a budget from system memory")
	fs.IntVar(&c.ClearThreshold, "clear-threshold", 3, "blocks the stage-clear animation erases; use 0 for the final stage")
	fs.Float64Var(&c.TableMemFraction, "table-mem-fraction", 0.25, "fraction of system memory backing the default node budget")
	fs.DurationVar(&c.TimeLimit, "time-limit", 0, "wall-clock bound for the search; 0 is unbounded")
	fs.BoolVar(&c.Debug, "debug", false, "debug logging")
	err := fs.Parse(args)
	c.Args = fs.Args()
	return err
}
