package board

import (
	"log"
)

// GenerateLegalMoves generates all legal moves for the position: pseudo-legal
// generation followed by a make/undo filter. There is no pin-based fast
// path; every move is proven legal by actually making and unmaking it.
func (p *Position) GenerateLegalMoves() *MoveList {
	pseudo := p.GeneratePseudoLegalMoves()
	result := NewMoveList()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if p.MakeMove(m) {
			result.Add(m)
			p.Undo()
		}
	}
	return result
}

// GeneratePseudoLegalMoves generates all pseudo-legal moves (may leave king in check).
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return ml
}

// GenerateCapturesAndPromotions runs generate_legal and keeps only moves
// that capture or promote, for use by quiescence search.
func (p *Position) GenerateCapturesAndPromotions() *MoveList {
	legal := p.GenerateLegalMoves()
	result := NewMoveList()
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.IsCapture() || m.IsPromotion() {
			result.Add(m)
		}
	}
	return result
}

// generateAllMoves emits pseudo-legal moves in the fixed order Pawn,
// Knight, King, Rook, Bishop, Queen.
func (p *Position) generateAllMoves(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	occupied := p.AllOccupied
	enemies := p.Occupied[them]

	if DebugMoveValidation {
		kingBB := p.Pieces[us][King]
		if kingBB == 0 {
			log.Printf("MOVEGEN FATAL: %v King bitboard empty! KingSquare=%v AllOcc=%x Hash=%x",
				us, p.KingSquare[us], uint64(p.AllOccupied), p.Hash)
		} else if p.KingSquare[us] != kingBB.LSB() {
			log.Printf("MOVEGEN FATAL: %v KingSquare=%v but King bitboard says %v! Hash=%x",
				us, p.KingSquare[us], kingBB.LSB(), p.Hash)
		}
	}

	p.generatePawnMoves(ml, us, enemies, occupied)
	p.generateKnightMoves(ml, us, occupied)
	p.generateKingMoves(ml, us)
	p.generateCastlingMoves(ml, us)
	p.generateRookMoves(ml, us, occupied)
	p.generateBishopMoves(ml, us, occupied)
	p.generateQueenMoves(ml, us, occupied)
}

func (p *Position) generateKnightMoves(ml *MoveList, us Color, occupied Bitboard) {
	knights := p.Pieces[us][Knight]
	own := p.Occupied[us]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := KnightAttacks(from) &^ own
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(p.newTargetedMove(from, to, Knight))
		}
	}
}

func (p *Position) generateRookMoves(ml *MoveList, us Color, occupied Bitboard) {
	rooks := p.Pieces[us][Rook]
	own := p.Occupied[us]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := RookAttacks(from, occupied) &^ own
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(p.newTargetedMove(from, to, Rook))
		}
	}
}

func (p *Position) generateBishopMoves(ml *MoveList, us Color, occupied Bitboard) {
	bishops := p.Pieces[us][Bishop]
	own := p.Occupied[us]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := BishopAttacks(from, occupied) &^ own
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(p.newTargetedMove(from, to, Bishop))
		}
	}
}

func (p *Position) generateQueenMoves(ml *MoveList, us Color, occupied Bitboard) {
	queens := p.Pieces[us][Queen]
	own := p.Occupied[us]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := QueenAttacks(from, occupied) &^ own
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(p.newTargetedMove(from, to, Queen))
		}
	}
}

// newTargetedMove builds a quiet or capturing move depending on whether
// the destination holds an enemy piece.
func (p *Position) newTargetedMove(from, to Square, pt PieceType) Move {
	if p.AllOccupied&SquareBB(to) != 0 {
		return NewCaptureMove(from, to, pt)
	}
	return NewQuietMove(from, to, pt)
}

// generatePawnMoves generates all pawn moves.
func (p *Position) generatePawnMoves(ml *MoveList, us Color, enemies, occupied Bitboard) {
	pawns := p.Pieces[us][Pawn]
	empty := ^occupied

	var push1, push2, attackL, attackR Bitboard
	var promotionRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	nonPromo := push1 &^ promotionRank
	for nonPromo != 0 {
		to := nonPromo.PopLSB()
		from := Square(int(to) - pushDir)
		ml.Add(NewQuietMove(from, to, Pawn))
	}

	for push2 != 0 {
		to := push2.PopLSB()
		from := Square(int(to) - 2*pushDir)
		ml.Add(NewQuietMove(from, to, Pawn))
	}

	nonPromoL := attackL &^ promotionRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		ml.Add(NewCaptureMove(from, to, Pawn))
	}

	nonPromoR := attackR &^ promotionRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		ml.Add(NewCaptureMove(from, to, Pawn))
	}

	promoPush := push1 & promotionRank
	for promoPush != 0 {
		to := promoPush.PopLSB()
		from := Square(int(to) - pushDir)
		addPromotions(ml, from, to, false)
	}

	promoL := attackL & promotionRank
	for promoL != 0 {
		to := promoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		addPromotions(ml, from, to, true)
	}

	promoR := attackR & promotionRank
	for promoR != 0 {
		to := promoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		addPromotions(ml, from, to, true)
	}

	if p.EnPassant != NoSquare {
		epBB := SquareBB(p.EnPassant)
		var epAttackers Bitboard
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			from := epAttackers.PopLSB()
			ml.Add(NewEnPassant(from, p.EnPassant))
		}
	}
}

// addPromotions adds the four promotion moves in PromoQ, PromoN, PromoR,
// PromoB order.
func addPromotions(ml *MoveList, from, to Square, capture bool) {
	ml.Add(NewPromotion(from, to, Queen, capture))
	ml.Add(NewPromotion(from, to, Knight, capture))
	ml.Add(NewPromotion(from, to, Rook, capture))
	ml.Add(NewPromotion(from, to, Bishop, capture))
}

// generateKingMoves generates king moves (non-castling).
func (p *Position) generateKingMoves(ml *MoveList, us Color) {
	kingBB := p.Pieces[us][King]
	if kingBB == 0 {
		return
	}
	from := kingBB.LSB()
	attacks := KingAttacks(from) &^ p.Occupied[us]

	for attacks != 0 {
		to := attacks.PopLSB()
		ml.Add(p.newTargetedMove(from, to, King))
	}
}

// generateCastlingMoves generates castling moves.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()

	if us == White {
		if p.CastlingRights&WhiteKingSideCastle != 0 {
			if p.AllOccupied&((1<<F1)|(1<<G1)) == 0 {
				if !p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
					ml.Add(NewCastling(E1, G1, true))
				}
			}
		}
		if p.CastlingRights&WhiteQueenSideCastle != 0 {
			if p.AllOccupied&((1<<B1)|(1<<C1)|(1<<D1)) == 0 {
				if !p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
					ml.Add(NewCastling(E1, C1, false))
				}
			}
		}
	} else {
		if p.CastlingRights&BlackKingSideCastle != 0 {
			if p.AllOccupied&((1<<F8)|(1<<G8)) == 0 {
				if !p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
					ml.Add(NewCastling(E8, G8, true))
				}
			}
		}
		if p.CastlingRights&BlackQueenSideCastle != 0 {
			if p.AllOccupied&((1<<B8)|(1<<C8)|(1<<D8)) == 0 {
				if !p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
					ml.Add(NewCastling(E8, C8, false))
				}
			}
		}
	}
}

// DebugMoveValidation enables defensive assertions inside move generation
// and make-move; it must never be set on the hot path, only while
// debugging a suspected desync.
var DebugMoveValidation = false

// MakeMove applies a move to the position. It returns false, with the
// position restored to its pre-call state, if the move turns out to be
// illegal (wrong-side piece, or it leaves the mover's own king in check).
func (p *Position) MakeMove(m Move) bool {
	if DebugMoveValidation {
		us := p.SideToMove
		them := us.Other()
		if p.Pieces[us][King] == 0 {
			log.Printf("MAKEMOVE ENTRY: %v King bitboard empty! move=%v hash=%x", us, m, p.Hash)
		}
		if p.Pieces[them][King] == 0 {
			log.Printf("MAKEMOVE ENTRY: %v (opponent) King bitboard empty! move=%v hash=%x", them, m, p.Hash)
		}
		to := m.To()
		if captured := p.PieceAt(to); captured != NoPiece && captured.Type() == King {
			log.Printf("MAKEMOVE ILLEGAL: Trying to capture %v King at %v! move=%v hash=%x",
				captured.Color(), to, m, p.Hash)
		}
	}

	p.pushHistory()
	p.FiftyMoveCounter++

	us := p.SideToMove
	them := us.Other()
	from := m.From()
	to := m.To()
	piece := p.PieceAt(from)

	if piece == NoPiece || piece.Color() != us {
		if DebugMoveValidation && piece != NoPiece {
			log.Printf("DEBUG: MakeMove - trying to move %v piece when %v to move! Move: %v (from=%v to=%v)",
				piece.Color(), us, m, from, to)
		}
		p.Undo()
		return false
	}

	pt := piece.Type()

	p.Hash ^= zobristSideToMove
	oldCastling := p.CastlingRights

	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	p.EnPassant = NoSquare

	if m.IsEnPassant() {
		var capturedSq Square
		if us == White {
			capturedSq = to - 8
		} else {
			capturedSq = to + 8
		}
		p.removePiece(capturedSq)
		p.Hash ^= zobristPiece[them][Pawn][capturedSq]
		p.FiftyMoveCounter = 0
	} else if captured := p.PieceAt(to); captured != NoPiece {
		p.removePiece(to)
		p.Hash ^= zobristPiece[them][captured.Type()][to]
		p.FiftyMoveCounter = 0
	}

	p.movePiece(from, to)
	p.Hash ^= zobristPiece[us][pt][from]
	p.Hash ^= zobristPiece[us][pt][to]

	if pt == Pawn {
		p.FiftyMoveCounter = 0
		if abs(int(to)-int(from)) == 16 {
			epSquare := Square((int(from) + int(to)) / 2)
			p.EnPassant = epSquare
			p.Hash ^= zobristEnPassant[epSquare.File()]
		}
		if m.IsPromotion() {
			promoPt := m.Promotion()
			p.Pieces[us][Pawn] &^= SquareBB(to)
			p.Pieces[us][promoPt] |= SquareBB(to)
			p.Hash ^= zobristPiece[us][Pawn][to]
			p.Hash ^= zobristPiece[us][promoPt][to]
		}
	}

	if pt == King && m.IsCastling() {
		var rookFrom, rookTo Square
		if m.IsCastleKingSide() {
			rookFrom = NewSquare(7, from.Rank())
			rookTo = NewSquare(5, from.Rank())
		} else {
			rookFrom = NewSquare(0, from.Rank())
			rookTo = NewSquare(3, from.Rank())
		}
		p.movePiece(rookFrom, rookTo)
		p.Hash ^= zobristPiece[us][Rook][rookFrom]
		p.Hash ^= zobristPiece[us][Rook][rookTo]
		p.HasCastled[us] = true
	}

	p.updateOccupied()

	if from == E1 || to == E1 || from == H1 || to == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if from == E1 || to == E1 || from == A1 || to == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if from == E8 || to == E8 || from == H8 || to == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}
	if from == E8 || to == E8 || from == A8 || to == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	p.Hash ^= CastlingZobrist(oldCastling)
	p.Hash ^= CastlingZobrist(p.CastlingRights)

	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.UpdateCheckers()

	usKingSq := p.KingSquare[us]
	if p.IsSquareAttacked(usKingSq, them) {
		if DebugMoveValidation {
			log.Printf("MAKEMOVE ILLEGAL: %v left King at %v in check! move=%v hash=%x",
				us, usKingSq, m, p.Hash)
		}
		p.Undo()
		return false
	}

	return true
}

// DoNullMove passes the turn without moving any piece. Used by null-move
// pruning in search; must be paired with Undo.
func (p *Position) DoNullMove() {
	p.pushHistory()

	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
		p.EnPassant = NoSquare
	}

	p.SideToMove = p.SideToMove.Other()
	p.Hash ^= zobristSideToMove
	p.UpdateCheckers()
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	pseudo := p.GeneratePseudoLegalMoves()
	for i := 0; i < pseudo.Len(); i++ {
		if p.MakeMove(pseudo.Get(i)) {
			p.Undo()
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsDraw reports whether the position is drawn: stalemate, the fifty-move
// counter reaching 50, threefold repetition, or a bare-kings endgame.
func (p *Position) IsDraw() bool {
	if p.IsStalemate() {
		return true
	}
	if p.FiftyMoveCounter >= 50 {
		return true
	}
	if p.RepetitionCount() >= 2 {
		return true
	}
	return p.onlyKingsRemain()
}

func (p *Position) onlyKingsRemain() bool {
	return p.Occupied[White]|p.Occupied[Black] == p.Pieces[White][King]|p.Pieces[Black][King]
}

// IsEndOfGame reports whether search should stop descending because the
// position is mate or drawn.
func (p *Position) IsEndOfGame() bool {
	return p.IsCheckmate() || p.IsDraw()
}

// IsEndgame reports the evaluator's notion of "endgame": both sides must
// satisfy one of the three material patterns describing a simplified
// position where king activity dominates piece-square placement.
func (p *Position) IsEndgame() bool {
	return sideIsEndgame(p, White) && sideIsEndgame(p, Black)
}

func sideIsEndgame(p *Position, c Color) bool {
	queens := p.Pieces[c][Queen].PopCount()
	rooks := p.Pieces[c][Rook].PopCount()
	bishops := p.Pieces[c][Bishop].PopCount()
	knights := p.Pieces[c][Knight].PopCount()

	if queens == 0 && rooks <= 1 {
		return true
	}
	if queens == 1 && knights == 1 && bishops == 0 && rooks == 0 {
		return true
	}
	if queens == 1 && bishops == 1 && knights == 0 && rooks == 0 {
		return true
	}
	return false
}

// IsInsufficientMaterial returns true if neither side can checkmate.
func (p *Position) IsInsufficientMaterial() bool {
	if p.Pieces[White][Pawn]|p.Pieces[Black][Pawn] != 0 ||
		p.Pieces[White][Rook]|p.Pieces[Black][Rook] != 0 ||
		p.Pieces[White][Queen]|p.Pieces[Black][Queen] != 0 {
		return false
	}

	wKnights := p.Pieces[White][Knight].PopCount()
	wBishops := p.Pieces[White][Bishop].PopCount()
	bKnights := p.Pieces[Black][Knight].PopCount()
	bBishops := p.Pieces[Black][Bishop].PopCount()

	if wKnights+wBishops+bKnights+bBishops == 0 {
		return true
	}
	if wKnights+wBishops <= 1 && bKnights+bBishops == 0 {
		return true
	}
	if bKnights+bBishops <= 1 && wKnights+wBishops == 0 {
		return true
	}

	return false
}
