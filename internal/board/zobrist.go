package board

// Zobrist hash keys for incremental position hashing.
// Seeded with a fixed PRNG so keys are reproducible across runs.
var (
	zobristPiece      [2][6][64]uint64 // [Color][PieceType][Square]
	zobristEnPassant  [8]uint64        // one per file
	zobristCastling   [4]uint64        // WK, WQ, BK, BQ, XORed individually per active right
	zobristSideToMove uint64           // XOR when black to move
)

// Castling-right indices into zobristCastling, matching the order WK, WQ,
// BK, BQ used throughout the board package.
const (
	zobristCastleWK = 0
	zobristCastleWQ = 1
	zobristCastleBK = 2
	zobristCastleBQ = 3
)

func init() {
	initZobrist()
}

// prng is a small xorshift64* generator used only to seed the Zobrist
// tables deterministically; it is not used anywhere on the hot path.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}

	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}

	zobristSideToMove = rng.next()
}

// ZobristPiece returns the key for a piece of the given color and type on
// a square.
func ZobristPiece(c Color, pt PieceType, sq Square) uint64 {
	return zobristPiece[c][pt][sq]
}

// ZobristKeyFor is an alias matching the "key_for" naming used for a
// single piece placement.
func ZobristKeyFor(c Color, pt PieceType, sq Square) uint64 {
	return ZobristPiece(c, pt, sq)
}

// ZobristKeyForMove returns the XOR of a moving piece's key on its origin
// and destination squares, the key delta for a non-capturing, non-special
// piece move.
func ZobristKeyForMove(c Color, pt PieceType, from, to Square) uint64 {
	return ZobristPiece(c, pt, from) ^ ZobristPiece(c, pt, to)
}

// ZobristEnPassant returns the key for an en passant file (0-7).
func ZobristEnPassant(file int) uint64 {
	return zobristEnPassant[file]
}

// ZobristCastleWK, ZobristCastleWQ, ZobristCastleBK, ZobristCastleBQ
// return the individual castling-right keys; a position's key XORs in
// exactly the ones for rights that are currently available.
func ZobristCastleWK() uint64 { return zobristCastling[zobristCastleWK] }
func ZobristCastleWQ() uint64 { return zobristCastling[zobristCastleWQ] }
func ZobristCastleBK() uint64 { return zobristCastling[zobristCastleBK] }
func ZobristCastleBQ() uint64 { return zobristCastling[zobristCastleBQ] }

// ZobristSideToMove returns the key XORed in when it is Black's turn.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}

// CastlingZobrist returns the XOR of the individual keys for every right
// active in cr. Computing a delta as CastlingZobrist(old)^CastlingZobrist(new)
// toggles exactly the keys for rights that changed, since a right present
// in both cancels out.
func CastlingZobrist(cr CastlingRights) uint64 {
	var h uint64
	if cr&WhiteKingSideCastle != 0 {
		h ^= zobristCastling[zobristCastleWK]
	}
	if cr&WhiteQueenSideCastle != 0 {
		h ^= zobristCastling[zobristCastleWQ]
	}
	if cr&BlackKingSideCastle != 0 {
		h ^= zobristCastling[zobristCastleBK]
	}
	if cr&BlackQueenSideCastle != 0 {
		h ^= zobristCastling[zobristCastleBQ]
	}
	return h
}
