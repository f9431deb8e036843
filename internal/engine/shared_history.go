package engine

// SharedHistory is a from/to history table shared across all Lazy SMP
// workers, so a quiet move that causes cutoffs on one thread also improves
// move ordering on the others. Like the transposition table, it tolerates
// benign data races between workers: a torn read/write on one bucket only
// costs a slightly worse move-order guess, never correctness.
type SharedHistory struct {
	table [64][64]int32
}

// NewSharedHistory creates an empty shared history table.
func NewSharedHistory() *SharedHistory {
	return &SharedHistory{}
}

// Get returns the shared history score for a from/to move.
func (sh *SharedHistory) Get(from, to int) int {
	return int(sh.table[from][to])
}

// Update adds bonus to the shared history score for a from/to move,
// aging the whole table down when a bucket nears overflow.
func (sh *SharedHistory) Update(from, to, bonus int) {
	sh.table[from][to] += int32(bonus)
	if sh.table[from][to] > 400000 {
		sh.Age()
	} else if sh.table[from][to] < -400000 {
		sh.table[from][to] = -400000
	}
}

// Age scales down all history scores (called between games or on overflow).
func (sh *SharedHistory) Age() {
	for i := range sh.table {
		for j := range sh.table[i] {
			sh.table[i][j] /= 2
		}
	}
}

// Clear resets the shared history table.
func (sh *SharedHistory) Clear() {
	sh.table = [64][64]int32{}
}
