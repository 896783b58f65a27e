package rom

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/flipull/board"
	"github.com/domino14/flipull/problem"
)

// NumStages is how many ADVANCE mode stages the game ships.
const NumStages = 50

// Stage records sit in CHR banks 0 (stages 1-25) and 2 (stages 26-50).
// Each stage has a 4-byte pointer record: a pointer to the 50-byte block
// layout (48 grid bytes, move budget, held block) and a pointer to the
// 24-byte wall/pipe bitplanes (12 wall rows then 12 pipe rows, MSB =
// leftmost column). Pointers are PPU addresses; the low 14 bits index
// into the bank.

// ExtractStage decodes one stage (1-based, 1..50) into a validated
// Problem.
func ExtractStage(r *ROM, stage int) (*problem.Problem, error) {
	if stage < 1 || stage > NumStages {
		return nil, fmt.Errorf("stage must be within 1..%d: %d", NumStages, stage)
	}

	bank := r.CHRBank(0)
	ptrsOffset := 0x0A00 + 4*(stage-1)
	if stage > 25 {
		bank = r.CHRBank(2)
		ptrsOffset = 0x1A00 + 4*(stage-26)
	}

	screen := &problem.Screen{}

	// Block layout, move budget, held block.
	ptr := int(readU16LE(bank[ptrsOffset:]) & 0x3FFF)
	buf := bank[ptr : ptr+48+2]

	for row := 0; row < board.NumRows; row++ {
		for col := 0; col < problem.ScreenWidth; col++ {
			v := buf[8*row+col]
			if v == 0 {
				continue
			}
			if v > 4 {
				return nil, fmt.Errorf("invalid block value %d at stage %d (%d,%d)", v, stage, col, row)
			}
			screen.Set(col, row+problem.ScreenHeight-board.NumRows, problem.Tile(v))
		}
	}

	movesLeft := buf[48]
	held := board.Block(buf[49])

	// Wall and pipe bitplanes.
	ptr = int(readU16LE(bank[ptrsOffset+2:]) & 0x3FFF)
	buf = bank[ptr : ptr+12*2]

	for row, v := range buf[:12] {
		for col := 0; col < problem.ScreenWidth; col++ {
			if v&(1<<(7-col)) != 0 {
				screen.Set(col, row, problem.TileWall)
			}
		}
	}
	for row, v := range buf[12:] {
		for col := 0; col < problem.ScreenWidth; col++ {
			if v&(1<<(7-col)) != 0 {
				screen.Set(col, row, problem.TilePipe)
			}
		}
	}

	p, err := problem.New(screen, held, movesLeft)
	if err != nil {
		return nil, fmt.Errorf("stage %d: %w", stage, err)
	}

	log.Debug().
		Int("stage", stage).
		Uint8("moves-left", movesLeft).
		Int("blocks", countBlocks(screen)).
		Msg("stage-extracted")
	return p, nil
}

func countBlocks(s *problem.Screen) int {
	n := 0
	for row := 0; row < problem.ScreenHeight; row++ {
		for col := 0; col < problem.ScreenWidth; col++ {
			if s.At(col, row).IsBlock() {
				n++
			}
		}
	}
	return n
}
