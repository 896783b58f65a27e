// Package solver finds a proven-minimal move sequence clearing an ADVANCE
// mode stage, or proves that none exists. The search is a layered
// breadth-first expansion over positions: all edges cost one move, so the
// first cleared position dequeued is at minimal depth. A transposition
// table keyed on canonical position keys prunes re-reached states and
// holds the back-pointers for path reconstruction.
package solver

import (
	"context"
	"errors"
	"runtime"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/flipull/move"
	"github.com/domino14/flipull/position"
	"github.com/domino14/flipull/problem"
)

// DefaultClearThreshold is how many leftover blocks the stage-clear
// animation erases. The final stage erases none.
const DefaultClearThreshold = 3

const defaultTableMemFraction = 0.25

// Status is the three-way search outcome. Unsolvable is a proof (the
// whole reachable graph was examined); Inconclusive only means a bound
// was hit first.
type Status uint8

const (
	StatusSolved Status = iota
	StatusUnsolvable
	StatusInconclusive
)

func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusUnsolvable:
		return "unsolvable"
	case StatusInconclusive:
		return "inconclusive"
	}
	return "unknown"
}

// Result reports the outcome of one Solve call. Solution is non-nil only
// when Status is StatusSolved; its length is the proven-minimal move
// count.
type Result struct {
	Status   Status
	Solution *Solution
	Depth    int
	Nodes    uint64
	Elapsed  time.Duration
}

type Solver struct {
	initial    *position.Position
	candidates []move.Move

	ttable *TranspositionTable

	threads          int
	maxDepth         int
	maxNodes         uint64
	clearThreshold   int
	tableMemFraction float64

	nodes uint64
}

// Init prepares the solver for one problem. Call the setters after Init
// to override the defaults.
func (s *Solver) Init(p *problem.Problem) error {
	pos, candidates := p.Position()
	if len(candidates) == 0 {
		return errors.New("problem admits no throwable source row")
	}
	s.initial = pos
	s.candidates = candidates
	s.threads = runtime.NumCPU() - 1
	if s.threads < 1 {
		s.threads = 1
	}
	s.clearThreshold = DefaultClearThreshold
	s.tableMemFraction = defaultTableMemFraction
	s.ttable = &TranspositionTable{}
	return nil
}

func (s *Solver) SetThreads(threads int) {
	if threads < 1 {
		threads = 1
	}
	s.threads = threads
}

// SetMaxDepth bounds the search depth; 0 means unbounded.
func (s *Solver) SetMaxDepth(depth int) {
	s.maxDepth = depth
}

// SetMaxNodes bounds the number of distinct positions examined; 0 means
// use the transposition table's memory-derived budget.
func (s *Solver) SetMaxNodes(nodes uint64) {
	s.maxNodes = nodes
}

// SetClearThreshold overrides the leftover-block allowance (0 for the
// final stage).
func (s *Solver) SetClearThreshold(threshold int) {
	s.clearThreshold = threshold
}

// SetTableMemFraction overrides the fraction of system memory backing the
// default node budget.
func (s *Solver) SetTableMemFraction(fraction float64) {
	s.tableMemFraction = fraction
}

// Candidates exposes the problem's fixed candidate-move set, in the
// enumeration order that also serves as the tie-break among equal-length
// solutions.
func (s *Solver) Candidates() []move.Move {
	return s.candidates
}

type frontierNode struct {
	pos *position.Position
	key position.Key
}

type childCand struct {
	parent  position.Key
	mv      move.Move
	pos     *position.Position
	key     position.Key
	cleared bool
}

// Solve runs the search. Cancellation or deadline expiry on ctx yields an
// inconclusive result, never an error; errors are reserved for internal
// defects.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	start := time.Now()
	s.nodes = 0
	s.ttable.Reset(s.tableMemFraction)

	maxNodes := s.maxNodes
	if maxNodes == 0 {
		maxNodes = s.ttable.NodeBudget()
	}

	rootKey := s.initial.Key()
	s.ttable.Insert(rootKey, TableEntry{Depth: 0})
	s.nodes = 1

	log.Info().
		Int("threads", s.threads).
		Int("max-depth", s.maxDepth).
		Uint64("max-nodes", maxNodes).
		Int("clear-threshold", s.clearThreshold).
		Msg("search-start")

	if s.initial.Stuck(s.candidates) {
		if s.initial.BlockCount() <= s.clearThreshold {
			return s.finish(StatusSolved, NewSolution(nil), 0, start), nil
		}
		return s.finish(StatusUnsolvable, nil, 0, start), nil
	}

	frontier := []frontierNode{{pos: s.initial, key: rootKey}}

	for depth := 0; ; depth++ {
		if s.maxDepth > 0 && depth >= s.maxDepth {
			return s.finish(StatusInconclusive, nil, depth, start), nil
		}
		if ctx.Err() != nil {
			return s.finish(StatusInconclusive, nil, depth, start), nil
		}

		cands, err := s.expandLayer(ctx, frontier)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return s.finish(StatusInconclusive, nil, depth, start), nil
			}
			return nil, err
		}

		// Merge sequentially, in frontier-then-candidate order. This is
		// what makes the search reproducible regardless of scheduling:
		// the first route to a key always wins, and the first cleared
		// child in merge order is the solution.
		var next []frontierNode
		for _, c := range cands {
			inserted := s.ttable.Insert(c.key, TableEntry{
				Depth:     uint8(depth + 1),
				Parent:    c.parent,
				Move:      c.mv,
				HasParent: true,
			})
			if !inserted {
				continue
			}
			s.nodes++
			if s.nodes > maxNodes {
				return s.finish(StatusInconclusive, nil, depth+1, start), nil
			}
			if c.cleared {
				return s.finish(StatusSolved, s.reconstruct(c.key), depth+1, start), nil
			}
			next = append(next, frontierNode{pos: c.pos, key: c.key})
		}

		if len(next) == 0 {
			return s.finish(StatusUnsolvable, nil, depth+1, start), nil
		}

		log.Debug().
			Int("depth", depth+1).
			Int("frontier", len(next)).
			Uint64("nodes", s.nodes).
			Msg("layer-expanded")
		frontier = next
	}
}

// expandLayer shards the frontier across worker goroutines, each applying
// every candidate move to its slice of positions. Workers only read the
// transposition table (a racy prefilter; the merge re-checks), so the
// per-depth barrier at g.Wait is the only synchronization the table's
// depth invariant needs.
func (s *Solver) expandLayer(ctx context.Context, frontier []frontierNode) ([]childCand, error) {
	threads := s.threads
	if threads > len(frontier) {
		threads = len(frontier)
	}

	chunkSize := (len(frontier) + threads - 1) / threads
	chunks := lo.Chunk(frontier, chunkSize)

	results := make([][]childCand, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			var out []childCand
			for ni, node := range chunk {
				if ni%64 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				for _, m := range s.candidates {
					child, _, ok := node.pos.Apply(m)
					if !ok {
						continue
					}
					key := child.Key()
					if _, seen := s.ttable.Lookup(key); seen {
						continue
					}
					out = append(out, childCand{
						parent:  node.key,
						mv:      m,
						pos:     child,
						key:     key,
						cleared: child.BlockCount() <= s.clearThreshold && child.Stuck(s.candidates),
					})
				}
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lo.Flatten(results), nil
}

// reconstruct walks the back-pointers from a cleared position to the
// root.
func (s *Solver) reconstruct(goal position.Key) *Solution {
	var moves []move.Move
	k := goal
	for {
		entry, ok := s.ttable.Lookup(k)
		if !ok || !entry.HasParent {
			break
		}
		moves = append(moves, entry.Move)
		k = entry.Parent
	}
	slices.Reverse(moves)
	return NewSolution(lo.Map(moves, func(m move.Move, _ int) move.SourceRow {
		return m.Src()
	}))
}

func (s *Solver) finish(status Status, sol *Solution, depth int, start time.Time) *Result {
	res := &Result{
		Status:   status,
		Solution: sol,
		Depth:    depth,
		Nodes:    s.nodes,
		Elapsed:  time.Since(start),
	}
	log.Info().
		Str("status", status.String()).
		Int("depth", depth).
		Uint64("nodes", s.nodes).
		Uint64("tt-created", s.ttable.Created()).
		Uint64("tt-lookups", s.ttable.Lookups()).
		Uint64("tt-hits", s.ttable.Hits()).
		Dur("elapsed", res.Elapsed).
		Msg("search-end")
	return res
}
