// Package rom decodes ADVANCE mode stages out of the game's iNES image.
// It is strictly an input adapter: the solver core never sees ROM bytes,
// only the problem.Problem this package produces.
package rom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash"
)

const (
	headerLen = 16

	prgLen       = 0x8000
	chrBankLen   = 0x2000
	chrBankCount = 4
	chrLen       = chrBankLen * chrBankCount
)

var ErrNotINES = errors.New("not an iNES image")

// ROM is the loaded cartridge image: 32 KiB PRG and four 8 KiB CHR banks.
// The stage data lives in CHR.
type ROM struct {
	prg []byte
	chr []byte
}

func FromINESFile(path string) (*ROM, error) {
	ines, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read ROM file %q: %w", path, err)
	}
	return FromINES(ines)
}

func FromINES(ines []byte) (*ROM, error) {
	if len(ines) < headerLen {
		return nil, fmt.Errorf("%w: EOF inside header", ErrNotINES)
	}
	header, body := ines[:headerLen], ines[headerLen:]

	if string(header[:4]) != "NES\x1a" {
		return nil, fmt.Errorf("%w: missing magic", ErrNotINES)
	}

	if len(body) < prgLen {
		return nil, fmt.Errorf("%w: EOF inside PRG", ErrNotINES)
	}
	prg, chr := body[:prgLen], body[prgLen:]
	if len(chr) != chrLen {
		return nil, fmt.Errorf("%w: CHR size mismatch (expect %#06x, got %#06x)", ErrNotINES, chrLen, len(chr))
	}

	return &ROM{prg: prg, chr: chr}, nil
}

// CHRBank returns one 8 KiB CHR bank.
func (r *ROM) CHRBank(id int) []byte {
	return r.chr[chrBankLen*id : chrBankLen*(id+1)]
}

// Fingerprint identifies the image contents in logs and artifacts.
func (r *ROM) Fingerprint() uint64 {
	h := xxhash.New()
	h.Write(r.prg)
	h.Write(r.chr)
	return h.Sum64()
}

func readU16LE(buf []byte) uint16 {
	return binary.LittleEndian.Uint16(buf[:2])
}
