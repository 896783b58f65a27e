package position

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/flipull/board"
	"github.com/domino14/flipull/move"
)

func parsePosition(t *testing.T, s string) *Position {
	t.Helper()
	p, err := Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRoundTrip(t *testing.T) {
	is := is.New(t)
	cases := []string{
		"0 1 10\n......\n......\n......\n......\n......\n......\n",
		"11 5 10\n1.1.1.\n111111\n222222\n333333\n444444\n444444\n",
	}
	for _, c := range cases {
		is.Equal(parsePosition(t, c).String(), c)
	}
}

func TestApply(t *testing.T) {
	is := is.New(t)

	cases := []struct {
		before string
		mv     move.Move
		after  string
	}{
		{
			before: "11 3 5\n......\n......\n222222\n333333\n344444\n311111\n",
			mv:     move.NewRowMove(9, board.Row4),
			after:  "9 3 4\n......\n......\n......\n.22222\n.44444\n211111\n",
		},
		{
			before: "0 1 5\n......\n11....\n11....\n11....\n11222.\n312223\n",
			mv:     move.NewColumnMove(5, board.ColA),
			after:  "5 3 4\n......\n.1....\n.1....\n.1....\n.1222.\n112223\n",
		},
	}

	for _, tc := range cases {
		before := parsePosition(t, tc.before)
		next, _, ok := before.Apply(tc.mv)
		is.True(ok)
		is.Equal(next.String(), tc.after)
		// Apply never mutates its receiver.
		is.Equal(before.String(), tc.before)
	}
}

func TestApplyExhaustedBudget(t *testing.T) {
	is := is.New(t)
	p := parsePosition(t, "11 1 0\n......\n......\n......\n......\n......\n111111\n")
	_, _, ok := p.Apply(move.NewRowMove(11, board.Row6))
	is.True(!ok)
}

func TestKey(t *testing.T) {
	is := is.New(t)

	a := parsePosition(t, "11 3 5\n......\n......\n......\n......\n......\n311111\n")
	b := parsePosition(t, "11 3 5\n......\n......\n......\n......\n......\n311111\n")
	is.Equal(a.Key(), b.Key())

	// The hero row is not part of state identity.
	c := parsePosition(t, "4 3 5\n......\n......\n......\n......\n......\n311111\n")
	is.Equal(a.Key(), c.Key())

	// The held block and the budget are.
	d := parsePosition(t, "11 2 5\n......\n......\n......\n......\n......\n311111\n")
	is.True(a.Key() != d.Key())
	e := parsePosition(t, "11 3 4\n......\n......\n......\n......\n......\n311111\n")
	is.True(a.Key() != e.Key())

	// And so is every cell.
	f := parsePosition(t, "11 3 5\n......\n......\n......\n......\n......\n131111\n")
	is.True(a.Key() != f.Key())
}

func TestStuckAndCleared(t *testing.T) {
	is := is.New(t)

	// Held block 2 cannot erase anything on a field of 1s and no column
	// is reachable: stuck with four blocks remaining.
	p := parsePosition(t, "11 2 9\n......\n......\n......\n......\n......\n..1111\n")
	candidates := []move.Move{
		move.NewRowMove(11, board.Row6),
		move.NewColumnMove(10, board.ColA),
	}
	is.True(p.Stuck(candidates))
	is.True(!p.Cleared(candidates, 3))
	is.True(p.Cleared(candidates, 4))

	q := parsePosition(t, "11 1 9\n......\n......\n......\n......\n......\n..1111\n")
	is.True(!q.Stuck(candidates))
	is.Equal(len(q.LegalMoves(candidates)), 1)
}
