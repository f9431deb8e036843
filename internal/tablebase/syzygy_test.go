package tablebase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hailam/chessplay/internal/board"
)

func TestSyzygyProberNoFiles(t *testing.T) {
	dir := t.TempDir()
	sp := NewSyzygyProber(dir)

	if sp.Available() {
		t.Error("expected no tablebases available in empty dir")
	}
	if sp.MaxPieces() != 0 {
		t.Errorf("expected MaxPieces 0, got %d", sp.MaxPieces())
	}

	pos := board.NewPosition()
	if result := sp.Probe(pos); result.Found {
		t.Error("Probe should never report Found on an empty tablebase dir")
	}
}

func TestSyzygyProberDetectsLocalFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "KQvK.rtbw"), []byte{0}, 0644); err != nil {
		t.Fatalf("failed to write stub tablebase file: %v", err)
	}

	sp := NewSyzygyProber(dir)

	if !sp.Available() {
		t.Error("expected tablebases available after writing a .rtbw file")
	}
	if sp.MaxPieces() != 3 {
		t.Errorf("expected MaxPieces 3 for KQvK, got %d", sp.MaxPieces())
	}
	if !sp.HasLocalFiles() {
		t.Error("HasLocalFiles should be true")
	}

	// A present file is still never decoded, so Probe must still miss.
	pos := board.NewPosition()
	if result := sp.Probe(pos); result.Found {
		t.Error("Probe should still report not-found since the WDL format isn't parsed")
	}
}

func TestPositionToMaterial(t *testing.T) {
	pos := board.NewPosition()
	material := positionToMaterial(pos)
	if material != "KQRRBBNNPPPPPPPPvKQRRBBNNPPPPPPPP" {
		t.Errorf("unexpected material key for starting position: %s", material)
	}
}

func TestCachedProberWrapsSyzygy(t *testing.T) {
	dir := t.TempDir()
	sp := NewSyzygyProber(dir)
	cp := NewCachedProber(sp, 16)

	pos := board.NewPosition()
	first := cp.Probe(pos)
	second := cp.Probe(pos)

	if first.Found || second.Found {
		t.Error("expected not-found results through the cache")
	}
	if cp.CacheSize() != 1 {
		t.Errorf("expected 1 cached entry, got %d", cp.CacheSize())
	}
	if cp.HitRate() <= 0 {
		t.Errorf("expected a nonzero hit rate after repeated probe, got %.2f", cp.HitRate())
	}
	if cp.MaxPieces() != sp.MaxPieces() {
		t.Errorf("CachedProber.MaxPieces should delegate to inner prober")
	}
}
