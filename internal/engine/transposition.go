package engine

import (
	"math/bits"

	"github.com/hailam/chessplay/internal/board"
)

// TTFlag indicates the type of bound stored in a transposition table entry.
// TTInvalid is the zero value so a freshly allocated (never written) slot
// reports as empty instead of as a false Exact bound.
type TTFlag uint8

const (
	TTInvalid    TTFlag = iota // Slot never written, or cleared
	TTExact                    // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

const (
	ttBoundBits      = 2
	ttBoundMask      = (1 << ttBoundBits) - 1
	ttGenerationBits = 8 - ttBoundBits
	ttGenerationMod  = 1 << ttGenerationBits // generation wraps mod 64
)

// clusterSize is the number of entries sharing a bucket. A Store competing
// for a bucket never has to evict an unrelated position that happens to
// share the same low hash bits - it just takes the next free or least
// relevant slot in the cluster instead.
const clusterSize = 4

// TTEntry is one slot in a cluster. Key16 holds only the low 16 bits of the
// position hash; the cluster index already accounts for the rest, so this
// is enough to reject the vast majority of collisions cheaply.
type TTEntry struct {
	Key16      uint16
	BestMove   board.Move
	Score      int16
	StaticEval int16
	Depth      int8
	genBound   uint8 // low 2 bits: TTFlag, high 6 bits: generation
}

// Bound returns the bound type packed into this entry.
func (e TTEntry) Bound() TTFlag {
	return TTFlag(e.genBound & ttBoundMask)
}

// Generation returns the search generation this entry was last written in.
func (e TTEntry) Generation() uint8 {
	return e.genBound >> ttBoundBits
}

func packGenBound(generation uint8, bound TTFlag) uint8 {
	return (generation << ttBoundBits) | (uint8(bound) & ttBoundMask)
}

// ttCluster is one bucket of entries probed and stored together.
type ttCluster struct {
	entries [clusterSize]TTEntry
}

// TranspositionTable is a hash table for storing search results, organized
// as clusters of entries: every probe and store touches one cluster, and
// replacement only ever competes within it.
type TranspositionTable struct {
	clusters    []ttCluster
	numClusters uint64
	generation  uint8 // wraps mod 64, see Generation()/packGenBound

	hits   uint64
	probes uint64
}

// NewTranspositionTable creates a transposition table with the given size in MB.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	clusterBytes := uint64(clusterSize) * 8 // 8 logical bytes per entry
	numClusters := (uint64(sizeMB) * 1024 * 1024) / clusterBytes
	if numClusters == 0 {
		numClusters = 1
	}
	return &TranspositionTable{
		clusters:    make([]ttCluster, numClusters),
		numClusters: numClusters,
	}
}

// clusterIndex maps a 64-bit hash onto [0, numClusters) using the high bits
// of a 128-bit multiply, so table sizes don't need to be a power of two.
func (tt *TranspositionTable) clusterIndex(hash uint64) uint64 {
	hi, _ := bits.Mul64(hash, tt.numClusters)
	return hi
}

// Prefetch hints that hash's cluster will be probed or stored soon. Go has
// no portable cache-prefetch intrinsic, so this approximates one by
// touching the cluster's first entry, pulling its cache line in early.
func (tt *TranspositionTable) Prefetch(hash uint64) {
	idx := tt.clusterIndex(hash)
	_ = tt.clusters[idx].entries[0].Key16
}

// Probe looks up hash's cluster and returns the first entry whose key
// matches, if any. A torn read on a table shared across Lazy-SMP workers
// just yields a key mismatch or an Invalid bound, never a wrong cutoff.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes++
	idx := tt.clusterIndex(hash)
	key16 := uint16(hash)
	cluster := &tt.clusters[idx]
	for i := range cluster.entries {
		e := cluster.entries[i]
		if e.Bound() != TTInvalid && e.Key16 == key16 {
			tt.hits++
			return e, true
		}
	}
	return TTEntry{}, false
}

// Store writes a search result into hash's cluster, replacing the matching
// entry if present, otherwise the emptiest or least relevant slot.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, staticEval int, flag TTFlag, bestMove board.Move) {
	idx := tt.clusterIndex(hash)
	key16 := uint16(hash)
	cluster := &tt.clusters[idx]

	replace := -1
	worstRelevance := 1 << 30
	for i := range cluster.entries {
		e := &cluster.entries[i]
		if e.Bound() == TTInvalid {
			replace = i
			break
		}
		if e.Key16 == key16 {
			// Protect a deep, still-relevant entry from being clobbered by a
			// much shallower non-exact result for the same position.
			if flag != TTExact && depth < int(e.Depth)-5 {
				return
			}
			if bestMove == board.NoMove {
				bestMove = e.BestMove
			}
			replace = i
			break
		}
		age := (int(tt.generation) - int(e.Generation()) + ttGenerationMod) % ttGenerationMod
		relevance := int(e.Depth) - age
		if relevance < worstRelevance {
			worstRelevance = relevance
			replace = i
		}
	}

	e := &cluster.entries[replace]
	e.Key16 = key16
	e.BestMove = bestMove
	e.Score = int16(score)
	e.StaticEval = int16(staticEval)
	e.Depth = int8(depth)
	e.genBound = packGenBound(tt.generation, flag)
}

// NewSearch advances the generation counter, aging every existing entry by
// one step without touching the table itself.
func (tt *TranspositionTable) NewSearch() {
	tt.generation = (tt.generation + 1) % ttGenerationMod
}

// Clear clears the transposition table.
func (tt *TranspositionTable) Clear() {
	for i := range tt.clusters {
		tt.clusters[i] = ttCluster{}
	}
	tt.generation = 0
	tt.hits = 0
	tt.probes = 0
}

// HashFull returns the permille (parts per thousand) of the table that is
// used, sampled from the first 1000/clusterSize clusters.
func (tt *TranspositionTable) HashFull() int {
	sampleClusters := 1000 / clusterSize
	if sampleClusters > len(tt.clusters) {
		sampleClusters = len(tt.clusters)
	}
	if sampleClusters == 0 {
		return 0
	}
	filled := 0
	for i := 0; i < sampleClusters; i++ {
		for _, e := range tt.clusters[i].entries {
			if e.Bound() != TTInvalid && e.Generation() == tt.generation {
				filled++
			}
		}
	}
	return (filled * 1000) / (sampleClusters * clusterSize)
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Size returns the number of entry slots in the table.
func (tt *TranspositionTable) Size() uint64 {
	return tt.numClusters * clusterSize
}

// AdjustScoreFromTT adjusts a score read from the transposition table back
// to be relative to the current ply. Mate scores are stored relative to the
// root so they stay meaningful when read back at a different ply.
func AdjustScoreFromTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT adjusts a score for storage in the transposition table.
func AdjustScoreToTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}
