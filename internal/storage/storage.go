package storage

import (
	"encoding/json"

	"github.com/dgraph-io/badger/v4"
)

const correctionTableSize = 2048

// Storage keys
const (
	keyCorrectionTables = "correction_tables"
	keyTuning           = "tuning_overrides"
)

// CorrectionTables mirrors engine.CorrectionHistory's two tables so they
// can be persisted across engine restarts: a well-populated correction
// table built up over a long analysis session is worth keeping, the same
// way Stockfish-family engines persist hash/eval learning via an external
// "experience" file.
type CorrectionTables struct {
	Material [2][correctionTableSize]int16 `json:"material"`
	Pawn     [2][correctionTableSize]int16 `json:"pawn"`
}

// TuningOverrides holds search parameter overrides kept across restarts
// (e.g. a tuned null-move or LMR constant found via self-play), keyed by
// option name. No UCI option sets them and internal/uci does not load them.
type TuningOverrides map[string]int

// Storage wraps BadgerDB for persisting engine state between runs.
type Storage struct {
	db *badger.DB
}

// NewStorage opens (creating if needed) the engine's persistent store.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveCorrectionTables persists the engine's eval-correction history.
func (s *Storage) SaveCorrectionTables(t *CorrectionTables) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyCorrectionTables), data)
	})
}

// LoadCorrectionTables loads a previously saved eval-correction history,
// returning a zero-valued table (and no error) if none was saved yet.
func (s *Storage) LoadCorrectionTables() (*CorrectionTables, error) {
	t := &CorrectionTables{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyCorrectionTables))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, t)
		})
	})

	return t, err
}

// SaveTuningOverrides persists UCI tuning overrides.
func (s *Storage) SaveTuningOverrides(overrides TuningOverrides) error {
	data, err := json.Marshal(overrides)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyTuning), data)
	})
}

// LoadTuningOverrides loads previously saved tuning overrides, returning
// an empty map (and no error) if none were saved yet.
func (s *Storage) LoadTuningOverrides() (TuningOverrides, error) {
	overrides := make(TuningOverrides)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyTuning))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &overrides)
		})
	})

	return overrides, err
}
