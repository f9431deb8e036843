package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "chessplay-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	dbDir := filepath.Join(tmpDir, "db")
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("Failed to open badger db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &Storage{db: db}
}

func TestCorrectionTablesRoundTrip(t *testing.T) {
	s := openTestStorage(t)

	want := &CorrectionTables{}
	want.Material[0][5] = 42
	want.Material[1][2047] = -17
	want.Pawn[0][0] = 100

	if err := s.SaveCorrectionTables(want); err != nil {
		t.Fatalf("SaveCorrectionTables failed: %v", err)
	}

	got, err := s.LoadCorrectionTables()
	if err != nil {
		t.Fatalf("LoadCorrectionTables failed: %v", err)
	}

	if got.Material[0][5] != 42 {
		t.Errorf("Material[0][5] = %d, want 42", got.Material[0][5])
	}
	if got.Material[1][2047] != -17 {
		t.Errorf("Material[1][2047] = %d, want -17", got.Material[1][2047])
	}
	if got.Pawn[0][0] != 100 {
		t.Errorf("Pawn[0][0] = %d, want 100", got.Pawn[0][0])
	}
}

func TestLoadCorrectionTablesMissing(t *testing.T) {
	s := openTestStorage(t)

	got, err := s.LoadCorrectionTables()
	if err != nil {
		t.Fatalf("LoadCorrectionTables failed on empty db: %v", err)
	}
	if got.Material[0][0] != 0 || got.Pawn[1][100] != 0 {
		t.Errorf("expected zero-valued tables for missing key, got %+v", got)
	}
}

func TestTuningOverridesRoundTrip(t *testing.T) {
	s := openTestStorage(t)

	want := TuningOverrides{"NullMoveR": 3, "LMRBase": 75}
	if err := s.SaveTuningOverrides(want); err != nil {
		t.Fatalf("SaveTuningOverrides failed: %v", err)
	}

	got, err := s.LoadTuningOverrides()
	if err != nil {
		t.Fatalf("LoadTuningOverrides failed: %v", err)
	}
	if got["NullMoveR"] != 3 || got["LMRBase"] != 75 {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadTuningOverridesMissing(t *testing.T) {
	s := openTestStorage(t)

	got, err := s.LoadTuningOverrides()
	if err != nil {
		t.Fatalf("LoadTuningOverrides failed on empty db: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty overrides, got %+v", got)
	}
}

func TestDataPaths(t *testing.T) {
	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}

	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	t.Logf("Data directory: %s", dataDir)
}

func TestNNUEDir(t *testing.T) {
	nnueDir, err := GetNNUEDir()
	if err != nil {
		t.Fatalf("GetNNUEDir failed: %v", err)
	}
	if _, err := os.Stat(nnueDir); os.IsNotExist(err) {
		t.Errorf("NNUE directory was not created: %s", nnueDir)
	}
}
