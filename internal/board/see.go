package board

// seeValue holds the piece values used by static exchange evaluation.
// They match PieceValue and the evaluator's own table (eval.go in the
// engine package).
var seeValue = [6]int{
	Pawn:   100,
	Knight: 325,
	Bishop: 325,
	Rook:   500,
	Queen:  975,
	King:   999999,
}

// SEE runs static exchange evaluation for a move assumed to be a capture
// (or an en passant capture), returning the net material gain for the
// moving side assuming both sides play the exchange optimally.
func (p *Position) SEE(m Move) int {
	to := m.To()
	from := m.From()
	us := p.SideToMove
	side := us.Other()

	var targetValue int
	if m.IsEnPassant() {
		targetValue = seeValue[Pawn]
	} else {
		target := p.PieceAt(to)
		if target == NoPiece {
			return 0
		}
		targetValue = seeValue[target.Type()]
	}

	gain := [32]int{}
	gain[0] = targetValue
	d := 0

	occ := p.AllOccupied
	attackers := p.IndexAttackers(to, occ)

	fromSq := from
	movingValue := seeValue[m.PieceType()]

	for {
		d++
		gain[d] = movingValue - gain[d-1]

		occ &^= SquareBB(fromSq)
		attackers &^= SquareBB(fromSq)
		attackers |= p.XRayAttackers(to, occ) & occ

		nextSq, nextPT, ok := p.leastValuableAttacker(attackers, side)
		if !ok || d >= len(gain)-1 {
			break
		}
		fromSq = nextSq
		movingValue = seeValue[nextPT]
		side = side.Other()
	}

	for ; d > 0; d-- {
		negGain := -gain[d-1]
		if gain[d] > negGain {
			negGain = gain[d]
		}
		gain[d-1] = -negGain
	}
	return gain[0]
}

// leastValuableAttacker picks the cheapest remaining attacker of the given
// side, in pawn->knight->bishop->rook->queen->king order.
func (p *Position) leastValuableAttacker(attackers Bitboard, side Color) (Square, PieceType, bool) {
	for pt := Pawn; pt <= King; pt++ {
		bb := attackers & p.Pieces[side][pt]
		if bb != 0 {
			return bb.LSB(), pt, true
		}
	}
	return NoSquare, NoPieceType, false
}
