package board

// Zobrist hash keys for position hashing.
//
// The key table is generated deterministically from a fixed SplitMix64
// seed so that the same build always produces the same hash for the same
// position, and so the table's exact layout (and therefore every derived
// hash) is reproducible across runs and platforms.
var (
	zobristPiece        [2][7][64]uint64 // [Color][PieceType][Square], PieceType 6 unused (NoPieceType guard)
	zobristEnPassant    [8]uint64        // one per file
	zobristCastlingRook [2][8]uint64     // [Color][rook starting file] - castling-rook identity keys
	zobristSideToMove   uint64
)

// zobristSeed is the fixed SplitMix64 seed the key table is generated from.
const zobristSeed uint64 = 0xa7a57e2fba74af2c

func init() {
	initZobrist()
}

// splitMix64 is the generator used to fill the Zobrist key table. It is a
// simple, fast, well-distributed PRNG commonly used to seed other
// generators; here it's used directly because its output needs no further
// mixing for a flat table of independent 64-bit keys.
type splitMix64 struct {
	state uint64
}

func newSplitMix64(seed uint64) *splitMix64 {
	return &splitMix64{state: seed}
}

func (s *splitMix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return z
}

// initZobrist fills the key table in the exact order spec.md 6.3 specifies:
// [color, piece, square] row-major with color the minor index, square the
// middle index, piece the major index (2x6x64 = 768 keys); then 8
// en-passant-file keys; then 16 castling-rook-identity keys (color x file);
// then 1 side-to-move key. 793 keys total.
func initZobrist() {
	rng := newSplitMix64(zobristSeed)

	for pt := Pawn; pt <= King; pt++ {
		for sq := A1; sq <= H8; sq++ {
			for c := White; c <= Black; c++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}

	for c := White; c <= Black; c++ {
		for file := 0; file < 8; file++ {
			zobristCastlingRook[c][file] = rng.next()
		}
	}

	zobristSideToMove = rng.next()
}

// ZobristPiece returns the Zobrist key for a piece on a square.
func ZobristPiece(c Color, pt PieceType, sq Square) uint64 {
	return zobristPiece[c][pt][sq]
}

// ZobristEnPassant returns the Zobrist key for an en passant file.
func ZobristEnPassant(file int) uint64 {
	return zobristEnPassant[file]
}

// ZobristCastling returns the combined Zobrist contribution of a full set of
// castling rights: the XOR of each (color, rook-file) identity key that is
// still granted. Incremental updates XOR the old rights' value out and the
// new rights' value in, which correctly toggles only the bits that changed
// since XOR of the unchanged keys cancels.
func ZobristCastling(cr CastlingRights) uint64 {
	var h uint64
	for _, c := range [2]Color{White, Black} {
		for _, f := range cr.Files(c) {
			h ^= zobristCastlingRook[c][f]
		}
	}
	return h
}

// ZobristSideToMove returns the Zobrist key for side to move.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}
