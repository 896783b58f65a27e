package move

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/flipull/board"
)

func TestBlocksRow(t *testing.T) {
	is := is.New(t)

	_, ok := SourceRow(5).BlocksRow()
	is.True(!ok)

	r, ok := SourceRow(6).BlocksRow()
	is.True(ok)
	is.Equal(r, board.Row1)

	r, ok = MaxSourceRow.BlocksRow()
	is.True(ok)
	is.Equal(r, board.Row6)
}

func TestAllSourceRowsOrder(t *testing.T) {
	is := is.New(t)

	rows := AllSourceRows()
	is.Equal(rows[0], MaxSourceRow)
	is.Equal(rows[NumSourceRows-1], SourceRow(0))
	for i := 1; i < NumSourceRows; i++ {
		is.True(rows[i-1] > rows[i])
	}
}

func TestMoveAccessors(t *testing.T) {
	is := is.New(t)

	m := NewRowMove(9, board.Row4)
	is.Equal(m.Src(), SourceRow(9))
	is.Equal(m.Kind(), DstRow)
	is.Equal(m.Row(), board.Row4)
	is.Equal(m.ShortDescription(), "9>row4")

	m = NewColumnMove(2, board.ColB)
	is.Equal(m.Kind(), DstColumn)
	is.Equal(m.Col(), board.ColB)
	is.Equal(m.ShortDescription(), "2>colB")
}

func TestSourceRowValid(t *testing.T) {
	is := is.New(t)
	is.True(SourceRow(0).Valid())
	is.True(SourceRow(11).Valid())
	is.True(!SourceRow(12).Valid())
}
