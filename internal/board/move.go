package board

import "fmt"

// Move encodes a chess move in 32 bits, least significant bit first:
//
//	bits 0-5:   from square (0-63)
//	bits 6-11:  to square (0-63)
//	bits 12-14: moving piece type (Pawn=0 .. King=5)
//	bit  15:    capture flag
//	bits 16-18: special-move flag
//
// The remaining bits are unused. A Move of 0 is reserved for "no move".
type Move uint32

// Flag is the special-move tag carried in a Move's flag field.
type Flag uint8

const (
	FlagNone      Flag = 0
	FlagCastleK   Flag = 1
	FlagCastleQ   Flag = 2
	FlagEnPassant Flag = 3
	FlagPromoN    Flag = 4
	FlagPromoB    Flag = 5
	FlagPromoR    Flag = 6
	FlagPromoQ    Flag = 7
)

const (
	moveFromShift    = 0
	moveToShift      = 6
	movePieceShift   = 12
	moveCaptureShift = 15
	moveFlagShift    = 16

	moveSquareMask = 0x3F
	movePieceMask  = 0x7
	moveFlagMask   = 0x7
)

// NoMove represents an invalid or null move / empty slot.
const NoMove Move = 0

// NewMove builds a move with an explicit piece type, capture bit and flag.
// Most callers should prefer the more specific constructors below.
func NewMove(from, to Square, pt PieceType, capture bool, flag Flag) Move {
	m := Move(from&moveSquareMask)<<moveFromShift |
		Move(to&moveSquareMask)<<moveToShift |
		Move(pt&movePieceMask)<<movePieceShift |
		Move(flag&moveFlagMask)<<moveFlagShift
	if capture {
		m |= 1 << moveCaptureShift
	}
	return m
}

// NewQuietMove builds a plain, non-capturing, non-special move.
func NewQuietMove(from, to Square, pt PieceType) Move {
	return NewMove(from, to, pt, false, FlagNone)
}

// NewCaptureMove builds a normal capturing move.
func NewCaptureMove(from, to Square, pt PieceType) Move {
	return NewMove(from, to, pt, true, FlagNone)
}

// NewCastling builds a castling move for the king's own movement.
func NewCastling(from, to Square, kingSide bool) Move {
	flag := FlagCastleQ
	if kingSide {
		flag = FlagCastleK
	}
	return NewMove(from, to, King, false, flag)
}

// NewEnPassant builds an en passant capture.
func NewEnPassant(from, to Square) Move {
	return NewMove(from, to, Pawn, true, FlagEnPassant)
}

// promoFlagByPiece maps a promotion piece type to its move flag.
var promoFlagByPiece = map[PieceType]Flag{
	Knight: FlagPromoN,
	Bishop: FlagPromoB,
	Rook:   FlagPromoR,
	Queen:  FlagPromoQ,
}

var promoPieceByFlag = map[Flag]PieceType{
	FlagPromoN: Knight,
	FlagPromoB: Bishop,
	FlagPromoR: Rook,
	FlagPromoQ: Queen,
}

// NewPromotion builds a pawn promotion move, with or without a capture.
func NewPromotion(from, to Square, promo PieceType, capture bool) Move {
	return NewMove(from, to, Pawn, capture, promoFlagByPiece[promo])
}

// From returns the origin square.
func (m Move) From() Square {
	return Square((m >> moveFromShift) & moveSquareMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> moveToShift) & moveSquareMask)
}

// PieceType returns the type of the moving piece.
func (m Move) PieceType() PieceType {
	return PieceType((m >> movePieceShift) & movePieceMask)
}

// IsCapture returns true if the capture bit is set. This bit is also set
// for en passant, since a pawn is removed from the board.
func (m Move) IsCapture() bool {
	return (m>>moveCaptureShift)&1 != 0
}

// MoveFlag returns the special-move flag.
func (m Move) MoveFlag() Flag {
	return Flag((m >> moveFlagShift) & moveFlagMask)
}

// IsCastleKingSide returns true if this move is kingside castling.
func (m Move) IsCastleKingSide() bool {
	return m.MoveFlag() == FlagCastleK
}

// IsCastleQueenSide returns true if this move is queenside castling.
func (m Move) IsCastleQueenSide() bool {
	return m.MoveFlag() == FlagCastleQ
}

// IsCastling returns true if this move is castling of either side.
func (m Move) IsCastling() bool {
	f := m.MoveFlag()
	return f == FlagCastleK || f == FlagCastleQ
}

// IsEnPassant returns true if this move is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.MoveFlag() == FlagEnPassant
}

// IsPromotion returns true if this move promotes a pawn.
func (m Move) IsPromotion() bool {
	switch m.MoveFlag() {
	case FlagPromoN, FlagPromoB, FlagPromoR, FlagPromoQ:
		return true
	default:
		return false
	}
}

// Promotion returns the promotion piece type; only valid if IsPromotion.
func (m Move) Promotion() PieceType {
	return promoPieceByFlag[m.MoveFlag()]
}

// IsQuiet returns true if this is neither a capture nor a promotion.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// String returns the UCI-style coordinate form of the move, e.g. "e2e4",
// "e7e8q". This is a diagnostic rendering distinct from SAN (see san.go).
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		promoChars := map[PieceType]byte{Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q'}
		s += string(promoChars[m.Promotion()])
	}
	return s
}

// ParseUCIMove parses a UCI coordinate move string against a position,
// filling in piece type, capture and special flags by consulting pos.
func ParseUCIMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}
	pt := piece.Type()
	capture := !pos.IsEmpty(to)

	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo, capture), nil
	}

	if pt == King && abs(int(to)-int(from)) == 2 {
		return NewCastling(from, to, to > from), nil
	}
	if pt == Pawn && to == pos.EnPassant {
		return NewEnPassant(from, to), nil
	}
	if capture {
		return NewCaptureMove(from, to, pt), nil
	}
	return NewQuietMove(from, to, pt), nil
}

// MoveList is a fixed-size list of moves to avoid per-position allocation.
// 256 is a safe upper bound for the number of pseudo-legal moves in any
// one chess position; MaxGameLength (history.go) bounds game length
// instead, a distinct quantity.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set sets the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Truncate drops the list to length n, discarding the tail.
func (ml *MoveList) Truncate(n int) {
	ml.count = n
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
