package solver

import (
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/flipull/move"
	"github.com/domino14/flipull/position"
	"github.com/domino14/flipull/zobrist"
)

// Rough per-entry footprint (key, entry, map overhead), used only to turn
// a memory fraction into a default node budget.
const entrySizeEstimate = 192

const numShards = 512

// TableEntry records the minimal depth at which a position was first
// reached, plus the back-pointer used for path reconstruction. The root
// entry has no parent.
type TableEntry struct {
	Depth     uint8
	Parent    position.Key
	Move      move.Move
	HasParent bool
}

type ttShard struct {
	mu      sync.RWMutex
	entries map[position.Key]TableEntry
}

// TranspositionTable maps canonical keys to the minimal depth at which
// each position was reached. Entries are keyed by the full canonical key;
// the zobrist hash only selects a shard, so a hash collision can never
// conflate two distinct positions.
type TranspositionTable struct {
	shards [numShards]ttShard

	created atomic.Uint64
	lookups atomic.Uint64
	hits    atomic.Uint64

	nodeBudget uint64
	zobrist    *zobrist.Zobrist
}

// Reset empties the table and derives the default node budget from the
// given fraction of system memory.
func (t *TranspositionTable) Reset(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	t.nodeBudget = uint64(fractionOfMemory * (float64(totalMem) / float64(entrySizeEstimate)))

	for i := range t.shards {
		t.shards[i].entries = make(map[position.Key]TableEntry)
	}

	if t.zobrist == nil {
		log.Debug().Msg("creating zobrist hash")
		t.zobrist = &zobrist.Zobrist{}
		t.zobrist.Initialize()
	}

	log.Info().
		Uint64("node-budget", t.nodeBudget).
		Uint64("total-system-memory-bytes", totalMem).
		Int("shards", numShards).
		Msg("transposition-table-reset")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
}

// NodeBudget is the memory-derived default for the solver's node bound.
func (t *TranspositionTable) NodeBudget() uint64 {
	return t.nodeBudget
}

func (t *TranspositionTable) shardFor(k position.Key) *ttShard {
	return &t.shards[t.zobrist.Hash(k)&(numShards-1)]
}

func (t *TranspositionTable) Lookup(k position.Key) (TableEntry, bool) {
	t.lookups.Add(1)
	sh := t.shardFor(k)
	sh.mu.RLock()
	entry, ok := sh.entries[k]
	sh.mu.RUnlock()
	if ok {
		t.hits.Add(1)
	}
	return entry, ok
}

// Insert stores the entry unless the key is already present at an
// equal-or-lower depth, and reports whether it stored anything. A key
// re-reached at a strictly lower depth replaces the stale entry.
func (t *TranspositionTable) Insert(k position.Key, entry TableEntry) bool {
	sh := t.shardFor(k)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if old, ok := sh.entries[k]; ok && old.Depth <= entry.Depth {
		return false
	}
	sh.entries[k] = entry
	t.created.Add(1)
	return true
}

// Created returns the number of stored entries since the last Reset.
func (t *TranspositionTable) Created() uint64 {
	return t.created.Load()
}

// Lookups and Hits expose probe counters for logging.
func (t *TranspositionTable) Lookups() uint64 {
	return t.lookups.Load()
}

func (t *TranspositionTable) Hits() uint64 {
	return t.hits.Load()
}
