// Package move defines the closed move alphabet of ADVANCE mode. A move is
// the screen row the hero throws from plus the destination the thrown block
// reaches in the block area: either a horizontal flight into one of its six
// rows, or a fall into one of its six columns.
package move

import (
	"fmt"

	"github.com/domino14/flipull/board"
)

// SourceRow is the screen row the hero occupies when throwing, 0 (top)
// through 11 (bottom). Rows 6 through 11 are level with block rows 1
// through 6.
type SourceRow uint8

const NumSourceRows = 12

const MaxSourceRow SourceRow = NumSourceRows - 1

func (s SourceRow) Valid() bool {
	return s <= MaxSourceRow
}

// BlocksRow maps a source row onto the block-area row it is level with.
// ok is false for rows 0 through 5, which sit above the block area.
func (s SourceRow) BlocksRow() (board.Row, bool) {
	if s < 6 {
		return 0, false
	}
	return board.Row(s - 5), true
}

// AllSourceRows returns the rows bottom-up, 11 first. This is the
// enumeration order for candidate moves and therefore the tie-break order
// among equal-length solutions.
func AllSourceRows() [NumSourceRows]SourceRow {
	return [NumSourceRows]SourceRow{11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
}

// DstKind tags the two destination variants.
type DstKind uint8

const (
	// DstRow throws horizontally into a block-area row.
	DstRow DstKind = iota
	// DstColumn drops into a block-area column from above.
	DstColumn
)

// Move is an immutable (source, destination) pair. The destination is
// fixed per source row for a given problem, because walls and pipes never
// change during play.
type Move struct {
	src  SourceRow
	kind DstKind
	row  board.Row
	col  board.Col
}

func NewRowMove(src SourceRow, r board.Row) Move {
	return Move{src: src, kind: DstRow, row: r}
}

func NewColumnMove(src SourceRow, c board.Col) Move {
	return Move{src: src, kind: DstColumn, col: c}
}

func (m Move) Src() SourceRow {
	return m.src
}

func (m Move) Kind() DstKind {
	return m.kind
}

// Row is the destination row; only meaningful when Kind is DstRow.
func (m Move) Row() board.Row {
	return m.row
}

// Col is the destination column; only meaningful when Kind is DstColumn.
func (m Move) Col() board.Col {
	return m.col
}

// ShortDescription is a compact human-readable form, useful for logging.
func (m Move) ShortDescription() string {
	if m.kind == DstRow {
		return fmt.Sprintf("%d>row%s", m.src, m.row)
	}
	return fmt.Sprintf("%d>col%s", m.src, m.col)
}

func (m Move) String() string {
	return fmt.Sprintf("<move src: %d dst: %s>", m.src, m.dstString())
}

func (m Move) dstString() string {
	if m.kind == DstRow {
		return "row " + m.row.String()
	}
	return "col " + m.col.String()
}
