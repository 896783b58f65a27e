package board

import (
	"fmt"
	"strings"
)

// A Block is one throwable block kind. The zero value marks an empty cell.
// Wild erases whatever it first hits; it can be held but never sits on the
// field in ADVANCE mode.
type Block uint8

const (
	Empty Block = iota
	Block1
	Block2
	Block3
	Block4
	Wild
)

func (b Block) Valid() bool {
	return b >= Block1 && b <= Wild
}

func (b Block) IsNormal() bool {
	return b >= Block1 && b <= Block4
}

func (b Block) IsWild() bool {
	return b == Wild
}

// CanErase returns whether a thrown block b erases a field block of the
// given kind on first contact.
func (b Block) CanErase(other Block) bool {
	if b == Wild {
		return true
	}
	return b == other
}

func (b Block) String() string {
	if b == Empty {
		return "."
	}
	if b == Wild {
		return "5"
	}
	return string(rune('0' + b))
}

// Col is a column of the 6x6 block area, A through F from the left wall.
type Col uint8

const (
	ColA Col = iota + 1
	ColB
	ColC
	ColD
	ColE
	ColF
)

const NumCols = 6

func (c Col) Valid() bool {
	return c >= ColA && c <= ColF
}

func (c Col) Index() int {
	return int(c) - 1
}

func (c Col) String() string {
	return string(rune('A' + c - 1))
}

// Row is a row of the 6x6 block area, 1 (top) through 6 (bottom).
type Row uint8

const (
	Row1 Row = iota + 1
	Row2
	Row3
	Row4
	Row5
	Row6
)

const NumRows = 6

func (r Row) Valid() bool {
	return r >= Row1 && r <= Row6
}

func (r Row) Index() int {
	return int(r) - 1
}

func (r Row) String() string {
	return string(rune('0' + r))
}

// AllCols and AllRows are in enumeration order; code that needs a
// deterministic sweep over the area iterates these.
func AllCols() [NumCols]Col {
	return [NumCols]Col{ColA, ColB, ColC, ColD, ColE, ColF}
}

func AllRows() [NumRows]Row {
	return [NumRows]Row{Row1, Row2, Row3, Row4, Row5, Row6}
}

// Travel describes the flight of a thrown block: the last square it passed
// through before stopping (or falling off) and the number of squares
// traversed. The solver ignores it; the movie encoder uses it for timing.
type Travel struct {
	Col    Col
	Row    Row
	Length int
}

// Blocks is the bottom-left 6x6 block area of the screen. The backing
// array is 7x7 with sentinel cells along the left edge and the floor:
//
//	   ABCDEF
//	1 #......
//	2 #......
//	3 #......
//	4 #......
//	5 #......
//	6 #......
//	  #######
//
// A thrown block travels right-to-left along a row, turns downward when it
// meets the left sentinel, and stops at the floor sentinel. Blocks is a
// comparable value; copies are cheap and the throw methods never mutate
// their receiver.
type Blocks struct {
	sq [7 * 7]Block
}

const (
	dirUp   = -7
	dirLeft = -1
	dirDown = 7
)

var sentinels = [7 * 7]bool{
	true, false, false, false, false, false, false,
	true, false, false, false, false, false, false,
	true, false, false, false, false, false, false,
	true, false, false, false, false, false, false,
	true, false, false, false, false, false, false,
	true, false, false, false, false, false, false,
	true, true, true, true, true, true, true,
}

func crToIdx(c Col, r Row) int {
	return 7*r.Index() + c.Index() + 1
}

func idxToCR(idx int) (Col, Row) {
	return Col(idx % 7), Row(idx/7 + 1)
}

// At returns the block at the given square, or Empty.
func (b Blocks) At(c Col, r Row) Block {
	return b.sq[crToIdx(c, r)]
}

// Set places (or clears) a block. It exists for construction and test
// fixtures; play never mutates a field in place.
func (b *Blocks) Set(c Col, r Row, blk Block) {
	b.sq[crToIdx(c, r)] = blk
}

// Count returns the number of blocks remaining on the field.
func (b Blocks) Count() int {
	n := 0
	for _, blk := range b.sq {
		if blk != Empty {
			n++
		}
	}
	return n
}

// ThrowRow throws the held block horizontally into the given row, entering
// from the right. It returns the resulting field, the block held after the
// throw, and the travel record. ok is false when the throw is illegal
// (it would sail through without hitting anything, or the first block hit
// cannot be erased).
func (b Blocks) ThrowRow(r Row, held Block) (res Blocks, next Block, tr Travel, ok bool) {
	return b.throw(crToIdx(ColF, r), dirLeft, held)
}

// ThrowColumn drops the held block into the given column from above. Same
// contract as ThrowRow.
func (b Blocks) ThrowColumn(c Col, held Block) (res Blocks, next Block, tr Travel, ok bool) {
	return b.throw(crToIdx(c, Row1), dirDown, held)
}

func (b Blocks) throw(start, dir int, held Block) (Blocks, Block, Travel, bool) {
	vert := dir == dirDown

	// The erase rule differs by throw direction: a horizontal erasure pulls
	// the column above down one square; a vertical erasure leaves a hole.
	// The direction is fixed at entry even if the path later turns downward.
	res := b
	erase := func(idx int) {
		if vert {
			res.sq[idx] = Empty
		} else {
			res.eraseShift(idx)
		}
	}

	path := b.path(start, dir)

	// Find the first block along the path. Nothing hit means the throw is
	// illegal.
	i := 0
	for ; i < len(path); i++ {
		if b.sq[path[i]] != Empty {
			break
		}
	}
	if i == len(path) {
		return Blocks{}, Empty, Travel{}, false
	}

	first := b.sq[path[i]]
	if !held.CanErase(first) {
		return Blocks{}, Empty, Travel{}, false
	}

	erase(path[i])
	nextHeld := first
	lastJ := i

	for j := i + 1; j < len(path); j++ {
		blk := b.sq[path[j]]
		if blk == first {
			erase(path[j])
		} else if blk != Empty {
			// A different kind stops the flight: it is replaced by the
			// erasing kind and becomes the new held block. The travel
			// record keeps the square *before* the replacement.
			res.sq[path[j]] = first
			nextHeld = blk
			break
		}
		// Empty squares are passed through.
		lastJ = j
	}

	c, r := idxToCR(path[lastJ])
	return res, nextHeld, Travel{Col: c, Row: r, Length: lastJ + 1}, true
}

// eraseShift removes the block at idx and shifts everything above it in
// the same column down one square.
func (b *Blocks) eraseShift(idx int) {
	for idx+dirUp >= 0 {
		b.sq[idx] = b.sq[idx+dirUp]
		idx += dirUp
	}
	b.sq[idx] = Empty
}

// path lists the squares a thrown block passes through from start in
// direction dir, turning downward when a leftward flight reaches the left
// sentinel and ending at the floor.
func (b Blocks) path(start, dir int) []int {
	path := make([]int, 0, 12)
	idx := start
	for {
		path = append(path, idx)
		next := idx + dir
		if sentinels[next] {
			if dir != dirLeft {
				return path
			}
			next = idx + dirDown
			if sentinels[next] {
				return path
			}
			dir = dirDown
		}
		idx = next
	}
}

// Parse reads the 6-line, 6-char text form of a block area. Wild never
// appears on the field, so the alphabet is ".1234".
func Parse(s string) (Blocks, error) {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	if len(lines) != NumRows {
		return Blocks{}, fmt.Errorf("block area must be exactly %d lines, got %d", NumRows, len(lines))
	}

	var b Blocks
	for ri, line := range lines {
		if len(line) != NumCols {
			return Blocks{}, fmt.Errorf("block area line %d must be exactly %d chars: %q", ri+1, NumCols, line)
		}
		for ci := 0; ci < NumCols; ci++ {
			blk, err := blockFromChar(line[ci])
			if err != nil {
				return Blocks{}, err
			}
			b.Set(Col(ci+1), Row(ri+1), blk)
		}
	}
	return b, nil
}

func blockFromChar(ch byte) (Block, error) {
	switch ch {
	case '.':
		return Empty, nil
	case '1', '2', '3', '4':
		return Block(ch - '0'), nil
	}
	return Empty, fmt.Errorf("invalid block char: %q", ch)
}

func (b Blocks) String() string {
	var sb strings.Builder
	for _, r := range AllRows() {
		for _, c := range AllCols() {
			sb.WriteString(b.At(c, r).String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
