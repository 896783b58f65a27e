// Package position models one instant of an ADVANCE mode puzzle: the block
// field, the held block, the hero's screen row, and the remaining move
// budget. Positions are values; Apply always returns a fresh Position and
// never mutates its receiver, so positions retained by a search table can
// be shared freely across goroutines.
package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/flipull/board"
	"github.com/domino14/flipull/move"
)

type Position struct {
	heroRow   move.SourceRow
	blocks    board.Blocks
	held      board.Block
	movesLeft uint8
}

// New places the hero on the bottom row, where every puzzle starts.
func New(blocks board.Blocks, held board.Block, movesLeft uint8) *Position {
	return &Position{
		heroRow:   move.MaxSourceRow,
		blocks:    blocks,
		held:      held,
		movesLeft: movesLeft,
	}
}

func (p *Position) HeroRow() move.SourceRow {
	return p.heroRow
}

func (p *Position) Blocks() board.Blocks {
	return p.blocks
}

func (p *Position) Held() board.Block {
	return p.held
}

func (p *Position) MovesLeft() uint8 {
	return p.movesLeft
}

func (p *Position) BlockCount() int {
	return p.blocks.Count()
}

// Apply plays one move: the hero walks to the move's source row and throws
// the held block. ok is false when the move is illegal here — the budget is
// exhausted or the throw would not change the field. A legal move always
// yields a brand-new Position.
func (p *Position) Apply(m move.Move) (next *Position, tr board.Travel, ok bool) {
	if p.movesLeft == 0 {
		return nil, board.Travel{}, false
	}

	var blocks board.Blocks
	var held board.Block
	switch m.Kind() {
	case move.DstRow:
		blocks, held, tr, ok = p.blocks.ThrowRow(m.Row(), p.held)
	case move.DstColumn:
		blocks, held, tr, ok = p.blocks.ThrowColumn(m.Col(), p.held)
	}
	if !ok {
		return nil, board.Travel{}, false
	}

	return &Position{
		heroRow:   m.Src(),
		blocks:    blocks,
		held:      held,
		movesLeft: p.movesLeft - 1,
	}, tr, true
}

// LegalMoves filters the problem's candidate set down to the moves legal
// in this position, preserving candidate order.
func (p *Position) LegalMoves(candidates []move.Move) []move.Move {
	var legal []move.Move
	for _, m := range candidates {
		if _, _, ok := p.Apply(m); ok {
			legal = append(legal, m)
		}
	}
	return legal
}

// Stuck reports whether no candidate move is legal. A stuck position ends
// the puzzle; whether it is a win depends on the blocks remaining.
func (p *Position) Stuck(candidates []move.Move) bool {
	for _, m := range candidates {
		if _, _, ok := p.Apply(m); ok {
			return false
		}
	}
	return true
}

// Cleared reports whether the puzzle is won from this position: play has
// ended and no more than threshold blocks remain (the stage-clear
// animation erases up to that many leftovers).
func (p *Position) Cleared(candidates []move.Move, threshold int) bool {
	return p.blocks.Count() <= threshold && p.Stuck(candidates)
}

// KeyLen is 36 field cells plus the held block plus the move budget.
const KeyLen = board.NumCols*board.NumRows + 2

// Key is the canonical form of a Position: byte-identical keys mean
// identical tile contents and counters. The hero row is deliberately
// excluded — it affects neither legality nor transitions, only the frame
// timing of the rendered movie.
type Key [KeyLen]byte

func (p *Position) Key() Key {
	var k Key
	i := 0
	for _, r := range board.AllRows() {
		for _, c := range board.AllCols() {
			k[i] = byte(p.blocks.At(c, r))
			i++
		}
	}
	k[i] = byte(p.held)
	k[i+1] = p.movesLeft
	return k
}

// Parse reads the text form: a "heroRow held movesLeft" line followed by
// the six field lines.
func Parse(s string) (*Position, error) {
	line, rest, found := strings.Cut(s, "\n")
	if !found {
		return nil, fmt.Errorf("position string is missing its header line: %q", s)
	}

	tokens := strings.Fields(line)
	if len(tokens) != 3 {
		return nil, fmt.Errorf("position header must have exactly 3 tokens: %q", line)
	}

	heroRow, err := strconv.ParseUint(tokens[0], 10, 8)
	if err != nil {
		return nil, fmt.Errorf("hero row is not a number: %q", tokens[0])
	}
	if !move.SourceRow(heroRow).Valid() {
		return nil, fmt.Errorf("invalid hero row: %d", heroRow)
	}

	held, err := strconv.ParseUint(tokens[1], 10, 8)
	if err != nil {
		return nil, fmt.Errorf("held block is not a number: %q", tokens[1])
	}
	if !board.Block(held).Valid() {
		return nil, fmt.Errorf("invalid held block value: %d", held)
	}

	movesLeft, err := strconv.ParseUint(tokens[2], 10, 8)
	if err != nil {
		return nil, fmt.Errorf("move budget is not a number: %q", tokens[2])
	}

	blocks, err := board.Parse(rest)
	if err != nil {
		return nil, err
	}

	return &Position{
		heroRow:   move.SourceRow(heroRow),
		blocks:    blocks,
		held:      board.Block(held),
		movesLeft: uint8(movesLeft),
	}, nil
}

func (p *Position) String() string {
	return fmt.Sprintf("%d %d %d\n%s", p.heroRow, p.held, p.movesLeft, p.blocks)
}
