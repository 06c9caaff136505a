package board

// MaxGameLength bounds how many plies a single Position can record in its
// history; once it is reached pushHistory records no further snapshots and
// leaves MoveNumber unchanged. 1024 plies is far beyond any realistic game; the
// searcher's own move buffers use the smaller MoveList cap instead, since
// "longest game ever" and "most pseudo-legal moves in one position" are
// different quantities that the original implementation conflated under
// one constant.
const MaxGameLength = 1024

// snapshot captures everything needed to undo one ply: all piece
// placement, derived occupancy, whose turn it is, and the handful of
// scalars that make/unmake must roll back exactly.
type snapshot struct {
	Pieces         [2][6]Bitboard
	Occupied       [2]Bitboard
	AllOccupied    Bitboard
	KingSquare     [2]Square
	SideToMove     Color
	CastlingRights CastlingRights
	HasCastled     [2]bool
	EnPassant      Square
	FiftyMoveCounter int
	FullMoveNumber int
	Hash           uint64
	Checkers       Bitboard
}

func (p *Position) snapshotInto(dst *snapshot) {
	dst.Pieces = p.Pieces
	dst.Occupied = p.Occupied
	dst.AllOccupied = p.AllOccupied
	dst.KingSquare = p.KingSquare
	dst.SideToMove = p.SideToMove
	dst.CastlingRights = p.CastlingRights
	dst.HasCastled = p.HasCastled
	dst.EnPassant = p.EnPassant
	dst.FiftyMoveCounter = p.FiftyMoveCounter
	dst.FullMoveNumber = p.FullMoveNumber
	dst.Hash = p.Hash
	dst.Checkers = p.Checkers
}

func (p *Position) restoreFrom(src *snapshot) {
	p.Pieces = src.Pieces
	p.Occupied = src.Occupied
	p.AllOccupied = src.AllOccupied
	p.KingSquare = src.KingSquare
	p.SideToMove = src.SideToMove
	p.CastlingRights = src.CastlingRights
	p.HasCastled = src.HasCastled
	p.EnPassant = src.EnPassant
	p.FiftyMoveCounter = src.FiftyMoveCounter
	p.FullMoveNumber = src.FullMoveNumber
	p.Hash = src.Hash
	p.Checkers = src.Checkers
}

// pushHistory snapshots the current state into the ring at the current
// MoveNumber, then advances MoveNumber. Must be called before any field
// on p is mutated for the move about to be applied.
func (p *Position) pushHistory() {
	if p.MoveNumber >= MaxGameLength-1 {
		return
	}
	p.snapshotInto(&p.History[p.MoveNumber])
	p.MoveNumber++
}

// Undo restores the position to the state immediately before the last
// make (MakeMove or DoNullMove). No-op if there is no prior state.
func (p *Position) Undo() {
	if p.MoveNumber == 0 {
		return
	}
	p.MoveNumber--
	p.restoreFrom(&p.History[p.MoveNumber])
}

// RepetitionCount returns how many times the current Zobrist key has
// occurred previously in this game's history, scanning back in steps of
// two plies (same side to move) from move_number-fifty_move_counter up to
// move_number-2, as required for threefold repetition detection.
func (p *Position) RepetitionCount() int {
	count := 0
	start := p.MoveNumber - p.FiftyMoveCounter
	if start < 0 {
		start = 0
	}
	for i := start; i <= p.MoveNumber-2; i += 2 {
		if i < 0 {
			continue
		}
		if p.History[i].Hash == p.Hash {
			count++
		}
	}
	return count
}
