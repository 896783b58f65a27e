package solver

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"

	"github.com/domino14/flipull/board"
	"github.com/domino14/flipull/move"
	"github.com/domino14/flipull/position"
	"github.com/domino14/flipull/problem"
)

func mustProblem(t *testing.T, s string) *problem.Problem {
	t.Helper()
	p, err := problem.ParseProblem(s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// twoGroups has two disjoint groups of kind-1 blocks. Clearing it fully
// takes one throw per group, and the bottom-row group is reachable first
// in candidate order.
const twoGroups = `1 10
........
........
........
........
........
........
........
........
11......
........
........
..11....
`

func solve(t *testing.T, p *problem.Problem, threads int, configure func(*Solver)) *Result {
	t.Helper()
	var s Solver
	if err := s.Init(p); err != nil {
		t.Fatal(err)
	}
	s.SetThreads(threads)
	if configure != nil {
		configure(&s)
	}
	res, err := s.Solve(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestSolveTwoGroups(t *testing.T) {
	is := is.New(t)
	p := mustProblem(t, twoGroups)

	res := solve(t, p, 1, func(s *Solver) {
		s.SetClearThreshold(0)
	})
	is.Equal(res.Status, StatusSolved)
	is.Equal(res.Depth, 2)
	is.Equal(res.Solution.String(), "11 8")
	is.NoErr(res.Solution.Verify(p, 0))
}

func TestSolveDeterministicAcrossThreads(t *testing.T) {
	is := is.New(t)
	p := mustProblem(t, twoGroups)

	var solutions []string
	for _, threads := range []int{1, 2, 8} {
		for run := 0; run < 3; run++ {
			res := solve(t, p, threads, func(s *Solver) {
				s.SetClearThreshold(0)
			})
			is.Equal(res.Status, StatusSolved)
			solutions = append(solutions, res.Solution.String())
		}
	}
	for _, sol := range solutions {
		is.Equal(sol, solutions[0])
	}
}

func TestSolveUnsolvable(t *testing.T) {
	is := is.New(t)
	// Held kind 2 can never erase the kind-1 blocks, so no throw is ever
	// legal and four blocks exceed the leftover allowance.
	p := mustProblem(t, `2 30
........
........
........
........
........
........
........
........
........
........
........
..1111..
`)

	res := solve(t, p, 1, nil)
	is.Equal(res.Status, StatusUnsolvable)
	is.Equal(res.Solution, (*Solution)(nil))
}

func TestSolveStuckButCleared(t *testing.T) {
	is := is.New(t)
	// Same shape, but three leftover blocks are within the default
	// allowance: the initial position already counts as cleared.
	p := mustProblem(t, `2 30
........
........
........
........
........
........
........
........
........
........
........
...111..
`)

	res := solve(t, p, 1, nil)
	is.Equal(res.Status, StatusSolved)
	is.Equal(res.Solution.Len(), 0)
	is.NoErr(res.Solution.Verify(p, DefaultClearThreshold))
}

func TestSolveBounds(t *testing.T) {
	is := is.New(t)
	p := mustProblem(t, twoGroups)

	res := solve(t, p, 1, func(s *Solver) {
		s.SetClearThreshold(0)
		s.SetMaxDepth(1)
	})
	is.Equal(res.Status, StatusInconclusive)

	res = solve(t, p, 1, func(s *Solver) {
		s.SetClearThreshold(0)
		s.SetMaxNodes(2)
	})
	is.Equal(res.Status, StatusInconclusive)
}

func TestSolveCancellation(t *testing.T) {
	is := is.New(t)
	p := mustProblem(t, twoGroups)

	var s Solver
	is.NoErr(s.Init(p))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := s.Solve(ctx)
	is.NoErr(err)
	is.Equal(res.Status, StatusInconclusive)
}

// bruteMinimal is an exhaustive sequential breadth-first search used only
// as an oracle. It returns the minimal number of moves to reach a stuck
// position with at most clearThreshold blocks, or found=false if no such
// position is reachable.
func bruteMinimal(p *problem.Problem, clearThreshold int) (minMoves int, found bool) {
	pos, candidates := p.Position()

	type node struct {
		pos   *position.Position
		depth int
	}
	visited := map[position.Key]bool{pos.Key(): true}
	queue := []node{{pos: pos, depth: 0}}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if n.pos.Stuck(candidates) {
			if n.pos.BlockCount() <= clearThreshold {
				return n.depth, true
			}
			continue
		}
		for _, m := range candidates {
			child, _, ok := n.pos.Apply(m)
			if !ok {
				continue
			}
			k := child.Key()
			if visited[k] {
				continue
			}
			visited[k] = true
			queue = append(queue, node{pos: child, depth: n.depth + 1})
		}
	}
	return 0, false
}

// randomProblem fills the bottom two block-area rows with random kinds.
// Such boards are always settled, so they are valid stages.
func randomProblem(t *testing.T, rng *frand.RNG) *problem.Problem {
	t.Helper()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d 12\n", 1+rng.Intn(4))
	for row := 0; row < problem.ScreenHeight-2; row++ {
		sb.WriteString("........\n")
	}
	for row := 0; row < 2; row++ {
		for col := 0; col < board.NumCols; col++ {
			fmt.Fprintf(&sb, "%d", 1+rng.Intn(4))
		}
		sb.WriteString("..\n")
	}
	return mustProblem(t, sb.String())
}

func TestSolveMatchesBruteForce(t *testing.T) {
	rng := frand.NewCustom(make([]byte, 32), 1024, 12)

	for i := 0; i < 12; i++ {
		t.Run(fmt.Sprintf("random-%d", i), func(t *testing.T) {
			is := is.New(t)
			p := randomProblem(t, rng)

			want, found := bruteMinimal(p, DefaultClearThreshold)
			res := solve(t, p, 4, nil)
			if !found {
				is.Equal(res.Status, StatusUnsolvable)
				return
			}
			is.Equal(res.Status, StatusSolved)
			is.Equal(res.Solution.Len(), want)
			is.NoErr(res.Solution.Verify(p, DefaultClearThreshold))
		})
	}
}

func TestCandidatesOrder(t *testing.T) {
	is := is.New(t)
	p := mustProblem(t, twoGroups)

	var s Solver
	is.NoErr(s.Init(p))
	cands := s.Candidates()
	for i := 1; i < len(cands); i++ {
		is.True(cands[i-1].Src() > cands[i].Src()) // bottom row first
	}
	is.Equal(cands[0], move.NewRowMove(11, board.Row6))
}
