// Package problem models a full ADVANCE mode stage as captured from the
// game: the 8x12 screen with its walls and pipes, the initial held block,
// and the move budget. A Problem validates the stage invariants once and
// then supplies the solver with its initial position and the fixed
// candidate-move set.
package problem

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/flipull/board"
	"github.com/domino14/flipull/move"
	"github.com/domino14/flipull/position"
)

var ErrInvalidStage = errors.New("stage violates ADVANCE mode constraints")

// Tile is one screen cell: empty, a block, a wall, or a pipe. Blocks
// share numbering with board.Block.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileBlock1
	TileBlock2
	TileBlock3
	TileBlock4
	TileWild
	TileWall
	TilePipe
)

func (t Tile) IsBlock() bool {
	return t >= TileBlock1 && t <= TileWild
}

func (t Tile) IsNormalBlock() bool {
	return t >= TileBlock1 && t <= TileBlock4
}

func (t Tile) IsWall() bool {
	return t == TileWall
}

func (t Tile) IsPipe() bool {
	return t == TilePipe
}

const (
	ScreenWidth  = 8
	ScreenHeight = 12
)

// Screen is the raw 8x12 tile grid, row 0 at the top. The block area
// occupies columns 0-5 of rows 6-11.
type Screen struct {
	tiles [ScreenWidth * ScreenHeight]Tile
}

func (s *Screen) At(col, row int) Tile {
	return s.tiles[ScreenWidth*row+col]
}

func (s *Screen) Set(col, row int, t Tile) {
	s.tiles[ScreenWidth*row+col] = t
}

func tileFromChar(ch byte) (Tile, error) {
	switch ch {
	case '.':
		return TileEmpty, nil
	case '1', '2', '3', '4', '5':
		return Tile(ch - '0'), nil
	case '#':
		return TileWall, nil
	case '|':
		return TilePipe, nil
	}
	return TileEmpty, fmt.Errorf("invalid screen tile char: %q", ch)
}

func (t Tile) char() byte {
	switch {
	case t == TileEmpty:
		return '.'
	case t.IsBlock():
		return '0' + byte(t)
	case t == TileWall:
		return '#'
	}
	return '|'
}

// ParseScreen reads the 12-line, 8-char text form.
func ParseScreen(s string) (*Screen, error) {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	if len(lines) != ScreenHeight {
		return nil, fmt.Errorf("screen must be exactly %d lines, got %d", ScreenHeight, len(lines))
	}

	scr := &Screen{}
	for row, line := range lines {
		if len(line) != ScreenWidth {
			return nil, fmt.Errorf("screen line %d must be exactly %d chars: %q", row, ScreenWidth, line)
		}
		for col := 0; col < ScreenWidth; col++ {
			t, err := tileFromChar(line[col])
			if err != nil {
				return nil, err
			}
			scr.Set(col, row, t)
		}
	}
	return scr, nil
}

func (s *Screen) String() string {
	var sb strings.Builder
	for row := 0; row < ScreenHeight; row++ {
		for col := 0; col < ScreenWidth; col++ {
			sb.WriteByte(s.At(col, row).char())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// inBlocksArea reports whether a screen cell lies in the bottom-left 6x6
// block area.
func inBlocksArea(col, row int) bool {
	return col < board.NumCols && row >= ScreenHeight-board.NumRows
}

type Problem struct {
	screen    *Screen
	held      board.Block
	movesLeft uint8
}

// New validates the stage invariants: blocks (normal kinds only) may only
// sit inside the block area, and every wall outside it must rest on the
// top edge or on another wall.
func New(screen *Screen, held board.Block, movesLeft uint8) (*Problem, error) {
	if !held.Valid() {
		return nil, fmt.Errorf("%w: invalid held block value %d", ErrInvalidStage, held)
	}
	for row := 0; row < ScreenHeight; row++ {
		for col := 0; col < ScreenWidth; col++ {
			t := screen.At(col, row)
			if inBlocksArea(col, row) {
				if t != TileEmpty && !t.IsNormalBlock() {
					return nil, fmt.Errorf("%w: block area cell (%d,%d) must be empty or a normal block", ErrInvalidStage, col, row)
				}
				continue
			}
			if t.IsBlock() {
				return nil, fmt.Errorf("%w: block outside the block area at (%d,%d)", ErrInvalidStage, col, row)
			}
			if t.IsWall() && row > 0 && !screen.At(col, row-1).IsWall() {
				return nil, fmt.Errorf("%w: wall at (%d,%d) has no wall above it", ErrInvalidStage, col, row)
			}
		}
	}
	return &Problem{screen: screen, held: held, movesLeft: movesLeft}, nil
}

func (p *Problem) Screen() *Screen {
	return p.screen
}

func (p *Problem) Held() board.Block {
	return p.held
}

func (p *Problem) MovesLeft() uint8 {
	return p.movesLeft
}

// Position maps the problem onto the solver's view: the initial position
// and the candidate moves, one per throwable source row, enumerated bottom
// row first. The candidate set is computed once — walls and pipes never
// move, and a horizontal throw into a row that later empties degrades
// naturally into a fall down column A.
func (p *Problem) Position() (*position.Position, []move.Move) {
	var blocks board.Blocks
	for _, r := range board.AllRows() {
		for _, c := range board.AllCols() {
			t := p.screen.At(c.Index(), ScreenHeight-board.NumRows+r.Index())
			if t.IsNormalBlock() {
				blocks.Set(c, r, board.Block(t))
			}
		}
	}

	pos := position.New(blocks, p.held, p.movesLeft)

	var moves []move.Move
	for _, src := range move.AllSourceRows() {
		if m, ok := p.candidateFor(src); ok {
			moves = append(moves, m)
		}
	}
	return pos, moves
}

// candidateFor derives the destination reached by a throw from the given
// source row, scanning the row right to left for the first obstruction.
func (p *Problem) candidateFor(src move.SourceRow) (move.Move, bool) {
	row := int(src)
	for col := ScreenWidth - 1; col >= 0; col-- {
		t := p.screen.At(col, row)
		if t == TileEmpty {
			continue
		}
		if t.IsBlock() {
			// Level with a block row: a horizontal throw.
			br, _ := src.BlocksRow()
			return move.NewRowMove(src, br), true
		}
		// A wall or pipe deflects the block downward into the next column
		// over. The move only exists if that column can ever hold a block.
		fallCol := col + 1
		if fallCol >= board.NumCols {
			return move.Move{}, false
		}
		for r := row; r < ScreenHeight; r++ {
			if p.screen.At(fallCol, r).IsBlock() {
				return move.NewColumnMove(src, board.Col(fallCol+1)), true
			}
		}
		return move.Move{}, false
	}
	// Nothing in the way: the block sails to the left wall and falls down
	// column A.
	return move.NewColumnMove(src, board.ColA), true
}

// ParseProblem reads the text form: a "held movesLeft" line followed by
// the twelve screen lines.
func ParseProblem(s string) (*Problem, error) {
	line, rest, found := strings.Cut(s, "\n")
	if !found {
		return nil, fmt.Errorf("problem string is missing its header line: %q", s)
	}

	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("problem header must have exactly 2 tokens: %q", line)
	}

	held, err := strconv.ParseUint(tokens[0], 10, 8)
	if err != nil {
		return nil, fmt.Errorf("held block is not a number: %q", tokens[0])
	}

	movesLeft, err := strconv.ParseUint(tokens[1], 10, 8)
	if err != nil {
		return nil, fmt.Errorf("move budget is not a number: %q", tokens[1])
	}

	screen, err := ParseScreen(rest)
	if err != nil {
		return nil, err
	}

	return New(screen, board.Block(held), uint8(movesLeft))
}

func (p *Problem) String() string {
	return fmt.Sprintf("%d %d\n%s", p.held, p.movesLeft, p.screen)
}
