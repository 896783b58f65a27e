package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseBlocks(t *testing.T, s string) Blocks {
	t.Helper()
	b, err := Parse(s)
	require.NoError(t, err)
	return b
}

func TestBlocksRoundTrip(t *testing.T) {
	cases := []string{
		"......\n......\n......\n......\n......\n......\n",
		"1.1.1.\n111111\n222222\n333333\n444444\n444444\n",
	}
	for _, c := range cases {
		b := parseBlocks(t, c)
		assert.Equal(t, c, b.String())
	}
}

func TestBlocksParseErrors(t *testing.T) {
	_, err := Parse("......\n")
	assert.Error(t, err)
	_, err = Parse("......\n......\n......\n......\n......\n.....\n")
	assert.Error(t, err)
	_, err = Parse("......\n......\n......\n......\n......\n....5.\n")
	assert.Error(t, err)
}

func TestThrowRow(t *testing.T) {
	var empty Blocks
	_, _, _, ok := empty.ThrowRow(Row1, Block1)
	assert.False(t, ok, "throw into an empty field must be illegal")

	cases := []struct {
		name     string
		before   string
		row      Row
		held     Block
		after    string
		nextHeld Block
		lastCol  Col
		lastRow  Row
	}{
		{
			name:     "stop on a different kind",
			before:   "2.1111\n333311\n222222\n333333\n444444\n333333\n",
			row:      Row1,
			held:     Block1,
			after:    "1.....\n333311\n222222\n333333\n444444\n333333\n",
			nextHeld: Block2,
			lastCol:  ColB,
			lastRow:  Row1,
		},
		{
			name:     "wild erases a full row and shifts everything down",
			before:   "211111\n333311\n222222\n333333\n444444\n333333\n",
			row:      Row6,
			held:     Wild,
			after:    "......\n211111\n333311\n222222\n333333\n444444\n",
			nextHeld: Block3,
			lastCol:  ColA,
			lastRow:  Row6,
		},
		{
			name:     "flight turns down the left wall",
			before:   "......\n......\n222222\n333333\n344444\n411111\n",
			row:      Row4,
			held:     Block3,
			after:    "......\n......\n......\n.22222\n244444\n311111\n",
			nextHeld: Block4,
			lastCol:  ColA,
			lastRow:  Row5,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := parseBlocks(t, tc.before)
			res, next, tr, ok := before.ThrowRow(tc.row, tc.held)
			require.True(t, ok)
			assert.Equal(t, tc.after, res.String())
			assert.Equal(t, tc.nextHeld, next)
			assert.Equal(t, tc.lastCol, tr.Col)
			assert.Equal(t, tc.lastRow, tr.Row)
			// The receiver is never mutated.
			assert.Equal(t, tc.before, before.String())
		})
	}
}

func TestThrowColumn(t *testing.T) {
	var empty Blocks
	_, _, _, ok := empty.ThrowColumn(ColA, Block1)
	assert.False(t, ok, "drop into an empty column must be illegal")

	cases := []struct {
		name     string
		before   string
		col      Col
		held     Block
		after    string
		nextHeld Block
		lastCol  Col
		lastRow  Row
	}{
		{
			name:     "vertical erasure leaves holes",
			before:   ".....1\n....21\n...322\n..4322\n..4322\n..4322\n",
			col:      ColF,
			held:     Block1,
			after:    "......\n....2.\n...321\n..4322\n..4322\n..4322\n",
			nextHeld: Block2,
			lastCol:  ColF,
			lastRow:  Row2,
		},
		{
			name:     "wild erases a full column",
			before:   "......\n11....\n11....\n11....\n11222.\n112223\n",
			col:      ColA,
			held:     Wild,
			after:    "......\n.1....\n.1....\n.1....\n.1222.\n.12223\n",
			nextHeld: Block1,
			lastCol:  ColA,
			lastRow:  Row6,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := parseBlocks(t, tc.before)
			res, next, tr, ok := before.ThrowColumn(tc.col, tc.held)
			require.True(t, ok)
			assert.Equal(t, tc.after, res.String())
			assert.Equal(t, tc.nextHeld, next)
			assert.Equal(t, tc.lastCol, tr.Col)
			assert.Equal(t, tc.lastRow, tr.Row)
		})
	}
}

func TestCount(t *testing.T) {
	var b Blocks
	assert.Equal(t, 0, b.Count())
	b.Set(ColA, Row6, Block1)
	b.Set(ColF, Row1, Block4)
	assert.Equal(t, 2, b.Count())
}

func TestCanErase(t *testing.T) {
	assert.True(t, Block1.CanErase(Block1))
	assert.False(t, Block1.CanErase(Block2))
	assert.True(t, Wild.CanErase(Block4))
	assert.False(t, Block4.CanErase(Wild))
}
