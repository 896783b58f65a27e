package solver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/flipull/move"
	"github.com/domino14/flipull/problem"
)

// A Solution is the ordered sequence of source rows to throw from. The
// destination of each throw is implied: it is fixed per source row for a
// given problem.
type Solution struct {
	srcs []move.SourceRow
}

func NewSolution(srcs []move.SourceRow) *Solution {
	return &Solution{srcs: srcs}
}

func (s *Solution) SourceRows() []move.SourceRow {
	return s.srcs
}

func (s *Solution) Len() int {
	return len(s.srcs)
}

// Verify replays the solution through the transition function and checks
// that it ends the puzzle cleared: every move legal within budget, no
// legal move remaining afterwards, and at most clearThreshold blocks left.
func (s *Solution) Verify(p *problem.Problem, clearThreshold int) error {
	pos, candidates := p.Position()

	for i, src := range s.srcs {
		if pos.MovesLeft() == 0 {
			return fmt.Errorf("move budget exhausted before move %d", i)
		}
		m, found := lo.Find(candidates, func(m move.Move) bool {
			return m.Src() == src
		})
		if !found {
			return fmt.Errorf("move %d throws from row %d, which has no candidate", i, src)
		}
		next, _, ok := pos.Apply(m)
		if !ok {
			return fmt.Errorf("move %d is illegal: %s", i, m.ShortDescription())
		}
		pos = next
	}

	if !pos.Stuck(candidates) {
		return fmt.Errorf("legal moves remain after the final position:\n%s", pos)
	}
	if n := pos.BlockCount(); n > clearThreshold {
		return fmt.Errorf("final position is not cleared (%d blocks remain):\n%s", n, pos)
	}
	return nil
}

// ParseSolution reads a whitespace-separated source-row list.
func ParseSolution(s string) (*Solution, error) {
	var srcs []move.SourceRow
	for i, token := range strings.Fields(s) {
		v, err := strconv.ParseUint(token, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("move %d is not a number: %q", i, token)
		}
		src := move.SourceRow(v)
		if !src.Valid() {
			return nil, fmt.Errorf("move %d is not a valid source row: %d", i, v)
		}
		srcs = append(srcs, src)
	}
	return &Solution{srcs: srcs}, nil
}

func (s *Solution) String() string {
	return strings.Join(lo.Map(s.srcs, func(src move.SourceRow, _ int) string {
		return strconv.Itoa(int(src))
	}), " ")
}
