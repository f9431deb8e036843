package engine

import (
	"testing"

	"github.com/hailam/chessplay/internal/board"
)

func TestCorrectionHistoryZeroByDefault(t *testing.T) {
	ch := NewCorrectionHistory()
	pos := board.NewPosition()

	if got := ch.Get(pos); got != 0 {
		t.Errorf("expected 0 correction before any update, got %d", got)
	}
}

func TestCorrectionHistoryUpdateMovesTowardError(t *testing.T) {
	ch := NewCorrectionHistory()
	pos := board.NewPosition()

	staticEval := 50
	searchScore := 150 // search found the position better than static eval said

	for i := 0; i < 20; i++ {
		ch.Update(pos, searchScore, staticEval, 4)
	}

	got := ch.Get(pos)
	if got <= 0 {
		t.Errorf("expected positive correction after repeated positive error, got %d", got)
	}
}

func TestCorrectionHistoryIgnoresShallowDepth(t *testing.T) {
	ch := NewCorrectionHistory()
	pos := board.NewPosition()

	ch.Update(pos, 500, 0, 0)
	if got := ch.Get(pos); got != 0 {
		t.Errorf("depth 0 update should be a no-op, got %d", got)
	}
}

func TestCorrectionHistoryClampsExtremeUpdates(t *testing.T) {
	ch := NewCorrectionHistory()
	pos := board.NewPosition()

	for i := 0; i < 10000; i++ {
		ch.Update(pos, Infinity, -Infinity, 64)
	}

	got := ch.Get(pos)
	if got > correctionMaxAbs || got < -correctionMaxAbs {
		t.Errorf("correction %d exceeds clamp bound %d", got, correctionMaxAbs)
	}
}

func TestCorrectionHistorySnapshotRestore(t *testing.T) {
	ch := NewCorrectionHistory()
	pos := board.NewPosition()
	ch.Update(pos, 300, 100, 8)

	material, pawn := ch.Snapshot()

	restored := NewCorrectionHistory()
	restored.Restore(material, pawn)

	if ch.Get(pos) != restored.Get(pos) {
		t.Errorf("restored correction %d differs from original %d", restored.Get(pos), ch.Get(pos))
	}
}

func TestCorrectionHistoryClearResetsAll(t *testing.T) {
	ch := NewCorrectionHistory()
	pos := board.NewPosition()
	ch.Update(pos, 300, 100, 8)
	ch.Clear()

	if got := ch.Get(pos); got != 0 {
		t.Errorf("expected 0 after Clear, got %d", got)
	}
}

func TestCorrectionHistoryAgeHalves(t *testing.T) {
	ch := NewCorrectionHistory()
	pos := board.NewPosition()
	for i := 0; i < 5; i++ {
		ch.Update(pos, 400, 0, 10)
	}

	before := ch.Get(pos)
	if before == 0 {
		t.Fatal("expected nonzero correction before aging")
	}

	ch.Age()
	after := ch.Get(pos)

	if after >= before {
		t.Errorf("expected Age to shrink correction toward 0: before=%d after=%d", before, after)
	}
}

func TestSharedHistoryGetUpdate(t *testing.T) {
	sh := NewSharedHistory()

	if got := sh.Get(12, 28); got != 0 {
		t.Errorf("expected 0 before any update, got %d", got)
	}

	sh.Update(12, 28, 64)
	if got := sh.Get(12, 28); got != 64 {
		t.Errorf("expected 64 after update, got %d", got)
	}

	sh.Update(12, 28, 64)
	if got := sh.Get(12, 28); got != 128 {
		t.Errorf("expected 128 after second update, got %d", got)
	}
}

func TestSharedHistoryAgesOnOverflow(t *testing.T) {
	sh := NewSharedHistory()
	sh.Update(0, 1, 450000)

	if got := sh.Get(0, 1); got > 400000 {
		t.Errorf("expected aging to keep value near bound, got %d", got)
	}
}

func TestSharedHistoryClearResetsAll(t *testing.T) {
	sh := NewSharedHistory()
	sh.Update(4, 20, 300)
	sh.Clear()

	if got := sh.Get(4, 20); got != 0 {
		t.Errorf("expected 0 after Clear, got %d", got)
	}
}
