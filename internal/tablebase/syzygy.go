package tablebase

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hailam/chessplay/internal/board"
)

// DefaultCacheDir returns the default local directory Syzygy tablebase
// files (.rtbw/.rtbz) are expected to live in.
func DefaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./syzygy"
	}
	return filepath.Join(home, ".chessplay", "syzygy")
}

// SyzygyProber probes local Syzygy tablebase files. It only recognizes
// which material signatures have files present on disk; it does not parse
// the WDL/DTZ file format, since no pure-Go Syzygy reader is wired in, so
// Probe/ProbeRoot always report not-found even when a file is present.
// Fetching tablebase files over the network is out of scope here.
type SyzygyProber struct {
	path      string
	maxPieces int
	available bool
	mu        sync.RWMutex
}

// NewSyzygyProber creates a new Syzygy prober rooted at path.
// If path is empty, uses the default cache directory.
func NewSyzygyProber(path string) *SyzygyProber {
	if path == "" {
		path = DefaultCacheDir()
	}

	sp := &SyzygyProber{path: path}
	sp.refresh()
	return sp
}

// refresh checks available tablebase files and updates maxPieces.
func (sp *SyzygyProber) refresh() {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	entries, err := os.ReadDir(sp.path)
	if err != nil {
		sp.available = false
		sp.maxPieces = 0
		log.Printf("[Syzygy] Path does not exist: %s", sp.path)
		return
	}

	maxPieces := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".rtbw") {
			continue
		}
		material := strings.TrimSuffix(entry.Name(), ".rtbw")
		if n := len(strings.Map(func(r rune) rune {
			if r == 'v' {
				return -1
			}
			return r
		}, material)); n > maxPieces {
			maxPieces = n
		}
	}

	sp.maxPieces = maxPieces
	sp.available = maxPieces > 0
	if sp.available {
		log.Printf("[Syzygy] Found local tablebases at %s (max %d pieces)", sp.path, sp.maxPieces)
	} else {
		log.Printf("[Syzygy] No local tablebases found at %s", sp.path)
	}
}

// SetPath updates the tablebase path and refreshes available files.
func (sp *SyzygyProber) SetPath(path string) {
	if path == "" {
		path = DefaultCacheDir()
	}
	sp.mu.Lock()
	sp.path = path
	sp.mu.Unlock()
	sp.refresh()
}

// Probe looks up a position in the tablebase. Currently always reports
// not-found: no pure-Go Syzygy file reader is wired in, so a locally
// present file is detected (see HasLocalFiles/LocalMaxPieces) but not
// decoded.
func (sp *SyzygyProber) Probe(pos *board.Position) ProbeResult {
	if CountPieces(pos) > sp.MaxPieces() {
		return ProbeResult{Found: false}
	}
	if !sp.checkLocalFile(positionToMaterial(pos)) {
		return ProbeResult{Found: false}
	}
	return ProbeResult{Found: false}
}

// ProbeRoot finds the best move from the tablebase. See Probe's caveat.
func (sp *SyzygyProber) ProbeRoot(pos *board.Position) RootResult {
	if CountPieces(pos) > sp.MaxPieces() {
		return RootResult{Found: false}
	}
	return RootResult{Found: false}
}

// MaxPieces returns the maximum number of pieces the prober will consider.
func (sp *SyzygyProber) MaxPieces() int {
	sp.mu.RLock()
	defer sp.mu.RUnlock()
	if sp.maxPieces == 0 {
		return 0
	}
	return sp.maxPieces
}

// Available returns true if any local tablebase files were found.
func (sp *SyzygyProber) Available() bool {
	sp.mu.RLock()
	defer sp.mu.RUnlock()
	return sp.available
}

// LocalMaxPieces returns the max pieces available locally.
func (sp *SyzygyProber) LocalMaxPieces() int {
	return sp.MaxPieces()
}

// HasLocalFiles returns true if local tablebase files exist.
func (sp *SyzygyProber) HasLocalFiles() bool {
	return sp.Available()
}

// Path returns the current tablebase path.
func (sp *SyzygyProber) Path() string {
	sp.mu.RLock()
	defer sp.mu.RUnlock()
	return sp.path
}

// positionToMaterial converts a position to a material key like "KQvKR",
// the naming convention Syzygy tablebase files use.
func positionToMaterial(pos *board.Position) string {
	var white, black strings.Builder

	for i := int(board.Queen); i >= int(board.Pawn); i-- {
		pt := board.PieceType(i)
		count := (pos.Pieces[board.White][pt]).PopCount()
		for i := 0; i < count; i++ {
			white.WriteByte(pieceChar(pt))
		}
	}

	for i := int(board.Queen); i >= int(board.Pawn); i-- {
		pt := board.PieceType(i)
		count := (pos.Pieces[board.Black][pt]).PopCount()
		for i := 0; i < count; i++ {
			black.WriteByte(pieceChar(pt))
		}
	}

	return "K" + white.String() + "vK" + black.String()
}

func pieceChar(pt board.PieceType) byte {
	switch pt {
	case board.Queen:
		return 'Q'
	case board.Rook:
		return 'R'
	case board.Bishop:
		return 'B'
	case board.Knight:
		return 'N'
	case board.Pawn:
		return 'P'
	default:
		return '?'
	}
}

// checkLocalFile checks if a tablebase file exists locally.
func (sp *SyzygyProber) checkLocalFile(material string) bool {
	wdlPath := filepath.Join(sp.path, material+".rtbw")
	_, err := os.Stat(wdlPath)
	return err == nil
}
