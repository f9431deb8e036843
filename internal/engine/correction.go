package engine

import (
	"github.com/hailam/chessplay/internal/board"
)

// correctionTableSize is the number of buckets in each correction table.
// Power-of-two sized so indexing is a cheap mask, matching the table's
// intentionally coarse granularity: many positions alias to the same
// bucket, which is what lets a handful of search results generalize a
// correction across a whole family of positions.
const correctionTableSize = 2048

// correctionGrain scales the 16-bit stored values up so fractional
// corrections (from the gravity update's integer division) aren't lost to
// rounding; Get divides back out by the same factor.
const correctionGrain = 256

// correctionMaxAbs bounds a single bucket's contribution to the static
// eval, in internal score units (after dividing out correctionGrain).
const correctionMaxAbs = 256

// CorrectionHistory adjusts static evaluation using two independent
// tables, keyed by non-pawn material structure and by pawn structure
// respectively (spec's material-key/pawn-key split). Keying on these
// coarser structural hashes instead of the full position hash lets a
// correction learned in one position generalize to any other position
// sharing the same material/pawn skeleton. Grounded on Caissa's
// EvalCorrection table (original_source/), adapted to Stockfish-style
// gravity updates as the teacher's own CorrectionHistory already used.
type CorrectionHistory struct {
	material [2][correctionTableSize]int16 // [color][materialKey bucket]
	pawn     [2][correctionTableSize]int16 // [color][pawnKey bucket]
}

// NewCorrectionHistory creates a new correction history table.
func NewCorrectionHistory() *CorrectionHistory {
	return &CorrectionHistory{}
}

func materialIndex(pos *board.Position, c board.Color) uint64 {
	return pos.NonPawnHash[c] & (correctionTableSize - 1)
}

func pawnIndex(pos *board.Position) uint64 {
	return pos.PawnKey & (correctionTableSize - 1)
}

// Get returns the correction to add to the static evaluation of pos, from
// the side-to-move's perspective.
func (ch *CorrectionHistory) Get(pos *board.Position) int {
	us := pos.SideToMove
	m := int(ch.material[us][materialIndex(pos, us)])
	p := int(ch.pawn[us][pawnIndex(pos)])
	return (m + p) / correctionGrain
}

// Update records a correction based on the difference between the search
// result and the static evaluation, using a gravity update: the stored
// value moves a fraction of the way toward the observed error each time,
// so noisy individual results average out over many updates.
func (ch *CorrectionHistory) Update(pos *board.Position, searchScore, staticEval, depth int) {
	if depth < 1 {
		return
	}

	diff := (searchScore - staticEval) * correctionGrain
	bonus := clampInt(diff*depth/8, -correctionMaxAbs*correctionGrain, correctionMaxAbs*correctionGrain)

	us := pos.SideToMove
	updateBucket(&ch.material[us][materialIndex(pos, us)], bonus)
	updateBucket(&ch.pawn[us][pawnIndex(pos)], bonus)
}

func updateBucket(entry *int16, bonus int) {
	old := int(*entry)
	newVal := old + (bonus-old)/16
	newVal = clampInt(newVal, -32000, 32000)
	*entry = int16(newVal)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clear resets all correction values.
func (ch *CorrectionHistory) Clear() {
	for c := 0; c < 2; c++ {
		for i := range ch.material[c] {
			ch.material[c][i] = 0
		}
		for i := range ch.pawn[c] {
			ch.pawn[c][i] = 0
		}
	}
}

// Age scales down all correction values (called between games).
func (ch *CorrectionHistory) Age() {
	for c := 0; c < 2; c++ {
		for i := range ch.material[c] {
			ch.material[c][i] /= 2
		}
		for i := range ch.pawn[c] {
			ch.pawn[c][i] /= 2
		}
	}
}

// Snapshot returns a flat copy of both tables for persistence.
func (ch *CorrectionHistory) Snapshot() ([2][correctionTableSize]int16, [2][correctionTableSize]int16) {
	return ch.material, ch.pawn
}

// Restore loads previously persisted tables, e.g. from disk at startup.
func (ch *CorrectionHistory) Restore(material, pawn [2][correctionTableSize]int16) {
	ch.material = material
	ch.pawn = pawn
}
