package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/flipull/position"
)

const bignum = 1<<63 - 2

// maxCell covers block kinds 1-4 plus the wild held block.
const maxCell = 5

// Zobrist hashes canonical position keys down to 64 bits.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// The hash is recomputed from the key rather than updated incrementally:
// a throw shifts whole columns, so there is no cheap XOR delta to exploit.
// Collisions are tolerable — the transposition table uses the hash only to
// pick a shard and always compares full keys.
type Zobrist struct {
	cellTable   [position.KeyLen - 2][maxCell + 1]uint64
	heldTable   [maxCell + 1]uint64
	budgetTable [256]uint64
}

func (z *Zobrist) Initialize() {
	for i := range z.cellTable {
		for j := 1; j <= maxCell; j++ {
			z.cellTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	for j := 1; j <= maxCell; j++ {
		z.heldTable[j] = frand.Uint64n(bignum) + 1
	}
	for j := range z.budgetTable {
		z.budgetTable[j] = frand.Uint64n(bignum) + 1
	}
}

func (z *Zobrist) Hash(k position.Key) uint64 {
	key := uint64(0)
	for i := 0; i < position.KeyLen-2; i++ {
		if k[i] != 0 {
			key ^= z.cellTable[i][k[i]]
		}
	}
	key ^= z.heldTable[k[position.KeyLen-2]]
	key ^= z.budgetTable[k[position.KeyLen-1]]
	return key
}
