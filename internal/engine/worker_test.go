package engine

import (
	"sync/atomic"
	"testing"

	"github.com/hailam/chessplay/internal/board"
)

func newTestWorker() *Worker {
	tt := NewTranspositionTable(1)
	var stop atomic.Bool
	return NewWorker(0, tt, NewPawnTable(1), NewSharedHistory(), &stop)
}

func TestWorkerBestMoveNodeFractionAfterSearch(t *testing.T) {
	w := newTestWorker()
	pos := board.NewPosition()
	w.InitSearch(pos)

	move, _ := w.SearchDepth(4, -Infinity, Infinity)
	if move == board.NoMove {
		t.Fatal("expected a move from the starting position")
	}

	fraction := w.BestMoveNodeFraction(move)
	if fraction <= 0 || fraction > 1 {
		t.Errorf("BestMoveNodeFraction = %v, want in (0, 1]", fraction)
	}
}

func TestWorkerRootMoveNodesPopulatedEachDepth(t *testing.T) {
	w := newTestWorker()
	pos := board.NewPosition()
	w.InitSearch(pos)

	w.SearchDepth(3, -Infinity, Infinity)
	firstIterationMoves := len(w.rootMoveNodes)
	if firstIterationMoves == 0 {
		t.Fatal("expected root move node counts to be populated")
	}

	w.SearchDepth(4, -Infinity, Infinity)
	if len(w.rootMoveNodes) == 0 {
		t.Error("expected root move node counts after second iteration too")
	}
}

func TestWorkerBestMoveNodeFractionZeroBeforeSearch(t *testing.T) {
	w := newTestWorker()
	if got := w.BestMoveNodeFraction(board.NoMove); got != 0 {
		t.Errorf("expected 0 before any search, got %v", got)
	}
}
