package engine

import (
	"testing"
	"time"

	"github.com/hailam/chessplay/internal/board"
)

func TestTimeManagerInitSuddenDeath(t *testing.T) {
	tm := NewTimeManager()
	limits := UCILimits{
		Time: [2]time.Duration{10 * time.Second, 10 * time.Second},
		Inc:  [2]time.Duration{100 * time.Millisecond, 100 * time.Millisecond},
	}
	tm.Init(limits, board.White, 20)

	if tm.OptimumTime() <= 0 {
		t.Error("expected positive optimum time")
	}
	if tm.MaximumTime() < tm.OptimumTime() {
		t.Error("maximum time should be at least optimum time")
	}
}

func TestTimeManagerFixedMoveTime(t *testing.T) {
	tm := NewTimeManager()
	limits := UCILimits{MoveTime: 500 * time.Millisecond}
	tm.Init(limits, board.White, 1)

	if tm.OptimumTime() != 500*time.Millisecond || tm.MaximumTime() != 500*time.Millisecond {
		t.Errorf("fixed move time should set both bounds to 500ms, got optimum=%v max=%v",
			tm.OptimumTime(), tm.MaximumTime())
	}
}

func TestAdjustForNodeFractionShortensOnHighConfidence(t *testing.T) {
	tm := NewTimeManager()
	tm.optimumTime = time.Second

	tm.AdjustForNodeFraction(0.99)
	if tm.optimumTime != 250*time.Millisecond {
		t.Errorf("fraction > 0.98 should cut optimum to 25%%, got %v", tm.optimumTime)
	}
}

func TestAdjustForNodeFractionLeavesLowConfidenceAlone(t *testing.T) {
	tm := NewTimeManager()
	tm.optimumTime = time.Second

	tm.AdjustForNodeFraction(0.3)
	if tm.optimumTime != time.Second {
		t.Errorf("low node fraction shouldn't adjust optimum time, got %v", tm.optimumTime)
	}
}

func TestAdjustForStabilityShrinksOptimum(t *testing.T) {
	tm := NewTimeManager()
	tm.optimumTime = time.Second

	tm.AdjustForStability(6)
	if tm.optimumTime != 400*time.Millisecond {
		t.Errorf("stability >= 6 should cut optimum to 40%%, got %v", tm.optimumTime)
	}
}

func TestAdjustForInstabilityGrowsOptimumUpToMaximum(t *testing.T) {
	tm := NewTimeManager()
	tm.optimumTime = time.Second
	tm.maximumTime = 1200 * time.Millisecond

	tm.AdjustForInstability(4)
	if tm.optimumTime != tm.maximumTime {
		t.Errorf("very unstable case should clamp optimum to maximum, got %v", tm.optimumTime)
	}
}
