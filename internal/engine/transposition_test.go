package engine

import (
	"testing"

	"github.com/hailam/chessplay/internal/board"
)

func TestTranspositionStoreProbeRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(1)

	hash := uint64(0x1234567890abcdef)
	tt.Store(hash, 6, 120, 100, TTExact, board.Move(0x0102))

	entry, found := tt.Probe(hash)
	if !found {
		t.Fatal("expected cache hit after store")
	}
	if entry.Score != 120 {
		t.Errorf("Score = %d, want 120", entry.Score)
	}
	if entry.StaticEval != 100 {
		t.Errorf("StaticEval = %d, want 100", entry.StaticEval)
	}
	if entry.Depth != 6 {
		t.Errorf("Depth = %d, want 6", entry.Depth)
	}
	if entry.Bound() != TTExact {
		t.Errorf("Bound() = %v, want TTExact", entry.Bound())
	}
	if entry.BestMove != board.Move(0x0102) {
		t.Errorf("BestMove = %v, want 0x0102", entry.BestMove)
	}
}

func TestTranspositionProbeMissReturnsInvalid(t *testing.T) {
	tt := NewTranspositionTable(1)

	entry, found := tt.Probe(0xdeadbeef)
	if found {
		t.Fatal("expected cache miss on empty table")
	}
	if entry.Bound() != TTInvalid {
		t.Errorf("miss should report TTInvalid bound, got %v", entry.Bound())
	}
}

func TestTranspositionStorePreservesMoveWhenNewMoveInvalid(t *testing.T) {
	tt := NewTranspositionTable(1)

	hash := uint64(0xabc123)
	move := board.Move(0x0203)
	tt.Store(hash, 8, 50, 40, TTExact, move)

	// A later store for the same key with no move shouldn't erase it.
	tt.Store(hash, 8, 55, 45, TTExact, board.NoMove)

	entry, found := tt.Probe(hash)
	if !found {
		t.Fatal("expected cache hit")
	}
	if entry.BestMove != move {
		t.Errorf("BestMove = %v, want preserved %v", entry.BestMove, move)
	}
}

func TestTranspositionStoreProtectsDeepEntryFromShallowBound(t *testing.T) {
	tt := NewTranspositionTable(1)

	hash := uint64(0x55aa55aa)
	tt.Store(hash, 20, 300, 280, TTExact, board.Move(0x0405))

	// A much shallower non-exact store for the same position should be dropped.
	tt.Store(hash, 2, -300, -280, TTUpperBound, board.Move(0x0607))

	entry, _ := tt.Probe(hash)
	if entry.Depth != 20 {
		t.Errorf("deep entry was overwritten by a shallow non-exact store: depth=%d", entry.Depth)
	}
}

func TestTranspositionClusterHandlesCollidingKeys(t *testing.T) {
	tt := NewTranspositionTable(1)

	// Four distinct hashes landing in the same cluster is expected to work
	// without evicting each other, since a cluster holds clusterSize entries.
	hashes := []uint64{0x1000, 0x2000, 0x3000, 0x4000}
	for i, h := range hashes {
		tt.Store(h, 4, i, i, TTExact, board.NoMove)
	}
	for i, h := range hashes {
		entry, found := tt.Probe(h)
		if !found {
			t.Errorf("hash %x: expected hit", h)
			continue
		}
		if int(entry.Score) != i {
			t.Errorf("hash %x: Score = %d, want %d", h, entry.Score, i)
		}
	}
}

func TestTranspositionNewSearchAgesEntries(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.NewSearch()
	tt.NewSearch()

	if tt.generation != 2 {
		t.Errorf("generation = %d, want 2", tt.generation)
	}
}

func TestTranspositionGenerationWraps(t *testing.T) {
	tt := NewTranspositionTable(1)
	for i := 0; i < ttGenerationMod+1; i++ {
		tt.NewSearch()
	}
	if tt.generation != 1 {
		t.Errorf("generation should wrap mod %d, got %d", ttGenerationMod, tt.generation)
	}
}

func TestTranspositionClearResetsTable(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(0x42, 4, 10, 5, TTExact, board.NoMove)
	tt.Clear()

	_, found := tt.Probe(0x42)
	if found {
		t.Error("expected miss after Clear")
	}
}

func TestTranspositionHitRateTracksProbes(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(0x99, 4, 10, 5, TTExact, board.NoMove)

	tt.Probe(0x99) // hit
	tt.Probe(0x77) // miss

	rate := tt.HitRate()
	if rate <= 0 || rate >= 100 {
		t.Errorf("HitRate = %.1f, want strictly between 0 and 100", rate)
	}
}
