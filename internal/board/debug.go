package board

// DebugMoveValidation gates expensive invariant checks throughout the board
// and engine packages (e.g. verifying IsLegal's make/unmake result against
// an independent attacker scan). It defaults to off so release builds pay
// nothing for them; the UCI layer flips it on via `setoption name Debug
// value true` for engine development.
var DebugMoveValidation bool
