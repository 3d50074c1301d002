package engine

import "math"

// The table stores fixed-width records: a 40-bit verification tag (high
// hash bits), a 13-bit generation, a 37-bit visit count and a 38-bit
// signed win accumulator. Go has no bit-fields, so the widths live in
// the accessors; every read and write is masked to the declared width.
const (
	hashBits   = 40
	genBits    = 13
	visitsBits = 37
	winsBits   = 38
)

const (
	hashMask   = 1<<hashBits - 1
	genMask    = 1<<genBits - 1
	visitsMask = 1<<visitsBits - 1
	winsMask   = 1<<winsBits - 1
)

// The iteration budget must stay strictly below MaxIterations so the
// visit field cannot overflow even if every generation keeps hitting
// the same entry: 2^genBits budgets of at most MaxIterations-1 visits
// fit in 2^visitsBits.
const MaxIterations = 1 << (visitsBits - genBits)

// Visit counts at or above this sentinel mark an entry as exact; only
// the sign of its win accumulator matters then.
const solvedThreshold = 1 << (winsBits - 2)

const maxGeneration = 1 << genBits

const bucketSize = 4

const (
	// The index must leave high bits enough for a useful tag.
	minTableIndexBits = 10
	maxTableIndexBits = 24

	defaultTableIndexBits = 22
)

type ttEntry struct {
	tagGen uint64 // tag(40) | generation(13)
	visits uint64
	wins   int64
}

func (e *ttEntry) isEmpty() bool {
	return e.tagGen == 0 && e.visits == 0 && e.wins == 0
}

func (e *ttEntry) tag() uint64 {
	return e.tagGen & hashMask
}

func (e *ttEntry) generation() uint32 {
	return uint32(e.tagGen >> hashBits & genMask)
}

func (e *ttEntry) setGeneration(gen uint32) {
	e.tagGen = e.tag() | uint64(gen&genMask)<<hashBits
}

func (e *ttEntry) Visits() uint64 {
	return e.visits & visitsMask
}

func (e *ttEntry) setVisits(n uint64) {
	e.visits = n & visitsMask
}

func (e *ttEntry) addVisits(n uint64) {
	e.setVisits(e.Visits() + n)
}

// Wins sign-extends the 38-bit accumulator.
func (e *ttEntry) Wins() int64 {
	return e.wins << (64 - winsBits) >> (64 - winsBits)
}

func (e *ttEntry) setWins(n int64) {
	e.wins = n & winsMask
}

func (e *ttEntry) addWins(n int64) {
	e.setWins(e.Wins() + n)
}

func (e *ttEntry) solved() bool {
	return e.Visits() >= solvedThreshold
}

type ttBucket struct {
	entries [bucketSize]ttEntry
}

// Outcomes of an upsert, tracked as search diagnostics.
const (
	upsertFound = iota
	upsertNewWrite
	upsertStaleEvict
	upsertCapacityEvict
)

type transTable struct {
	buckets   []ttBucket
	indexBits uint
	mask      uint64
}

func newTransTable(indexBits int) *transTable {
	var size = 1 << uint(indexBits)
	return &transTable{
		buckets:   make([]ttBucket, size),
		indexBits: uint(indexBits),
		mask:      uint64(size - 1),
	}
}

func (tt *transTable) bucket(hash uint64) *ttBucket {
	return &tt.buckets[hash&tt.mask]
}

func (tt *transTable) tagOf(hash uint64) uint64 {
	return hash >> tt.indexBits & hashMask
}

// probe returns the entry matching the hash tag, or nil on a miss.
func (tt *transTable) probe(hash uint64) *ttEntry {
	var b = tt.bucket(hash)
	var tag = tt.tagOf(hash)
	for i := range b.entries {
		var entry = &b.entries[i]
		if !entry.isEmpty() && entry.tag() == tag {
			return entry
		}
	}
	return nil
}

// upsert makes sure an entry for the hash exists and reports how. An
// existing entry gets its generation refreshed. Otherwise a zeroed
// entry is claimed: an empty slot if the bucket has one, else the
// least-visited entry aged past generationBound, else, when the whole
// bucket is fresh, the least-visited entry outright. That last case is
// a capacity collision; it may discard live data and is reported
// separately. Entries never revert to empty, so empty slots form a
// suffix and the match scan cannot pass one.
func (tt *transTable) upsert(hash uint64, generation, generationBound uint32) int {
	var b = tt.bucket(hash)
	var tag = tt.tagOf(hash)

	var minVisits = uint64(math.MaxUint64)
	var minIndex = -1
	for i := range b.entries {
		var entry = &b.entries[i]
		if entry.isEmpty() {
			b.overwrite(i, tag, generation)
			return upsertNewWrite
		}
		if entry.tag() == tag {
			entry.setGeneration(generation)
			return upsertFound
		}
		if entry.generation() < generationBound && entry.Visits() < minVisits {
			minVisits = entry.Visits()
			minIndex = i
		}
	}

	if minIndex >= 0 {
		b.overwrite(minIndex, tag, generation)
		return upsertStaleEvict
	}
	for i := range b.entries {
		if b.entries[i].Visits() < minVisits {
			minVisits = b.entries[i].Visits()
			minIndex = i
		}
	}
	b.overwrite(minIndex, tag, generation)
	return upsertCapacityEvict
}

func (b *ttBucket) overwrite(i int, tag uint64, generation uint32) {
	b.entries[i] = ttEntry{tagGen: tag | uint64(generation&genMask)<<hashBits}
}
