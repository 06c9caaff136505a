// Package engine implements the chess AI search engine.
package engine

import (
	"github.com/brindlehollow/chesscore/internal/board"
)

// Material values match board.PieceValue so the evaluator, SEE, and
// general material balance all score material the same way.
const (
	PawnValue   = 100
	KnightValue = 325
	BishopValue = 325
	RookValue   = 500
	QueenValue  = 975
	KingValue   = 999999
)

var pieceValues = [7]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue, 0}

// Imbalance rewards the side with more material in proportion to how much
// non-king material is left on the board, tempered by the opponent's own
// remaining count.
const (
	imbalanceBase   = 45
	imbalanceOwn    = 3
	imbalanceEnemy  = 6
)

const bishopPairBonus = 50

const (
	rookBehindPassedPawnBonus = 20
	rookOpenFileBonus         = 20
	rookSharedOpenFileBonus   = 10
)

const (
	pawnStructurePassedBonus   = 20
	pawnStructureIsolatedPen   = -10
	pawnStructureBackwardPen   = -8
	pawnStructureDoubledPen    = -10
)

const (
	kingShieldStrongBonus = 9
	kingShieldWeakBonus   = 4
)

// minScore stands in for negative infinity. Mate scores are minScore plus
// the move number at which the mate occurred, so a mate found earlier in
// the game (smaller move number) scores more extreme than one found later,
// and the searcher's negamax propagation prefers the shorter mate.
const minScore = -(1 << 30)

// pawnPST, knightPST, ... are written board-index-oriented for White (index
// 0 is a1, index 63 is h8); Black's score looks up the mirrored square
// (sq XOR 56) so the same table serves both colors.
var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// kingMidgamePST rewards a castled, sheltered king; kingEndgamePST rewards
// centralization once the heavy pieces are off and the king becomes an
// attacking piece in its own right.
var kingMidgamePST = [64]int{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

var kingEndgamePST = [64]int{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

var psts = [6][64]int{pawnPST, knightPST, bishopPST, rookPST, queenPST, kingMidgamePST}

// King-proximity arrays, indexed by Chebyshev distance to the opposing
// king (0..7). Closer is more dangerous for the pieces that can actually
// threaten a king; pawns always score oppPawnSafety and add ownPawnSafety
// once the game has simplified (Position.IsEndgame).
var ownPawnSafety = [8]int{25, 20, 14, 8, 3, 0, 0, 0}
var oppPawnSafety = [8]int{15, 10, 6, 3, 1, 0, 0, 0}
var knightSafety = [8]int{20, 16, 10, 5, 2, 0, 0, 0}
var bishopSafety = [8]int{14, 10, 7, 4, 1, 0, 0, 0}
var rookSafety = [8]int{18, 14, 9, 5, 2, 0, 0, 0}
var queenSafety = [8]int{26, 20, 14, 8, 3, 0, 0, 0}

// Pawn-structure masks, indexed by square, precomputed once at init.
var (
	passedMask   [2][64]board.Bitboard
	isolatedMask [64]board.Bitboard
	backwardMask [2][64]board.Bitboard
)

// King-shield masks, indexed by color and king square.
var (
	strongShieldMask [2][64]board.Bitboard
	weakShieldMask   [2][64]board.Bitboard
)

func init() {
	initPawnStructureMasks()
	initKingShieldMasks()
}

func threeFileMask(file int) board.Bitboard {
	mask := board.FileMask[file]
	if file > 0 {
		mask |= board.FileMask[file-1]
	}
	if file < 7 {
		mask |= board.FileMask[file+1]
	}
	return mask
}

func initPawnStructureMasks() {
	for sq := board.A1; sq <= board.H8; sq++ {
		file := sq.File()
		rank := sq.Rank()
		three := threeFileMask(file)

		var forwardWhite, forwardBlack board.Bitboard
		for r := 0; r < 8; r++ {
			if r > rank {
				forwardWhite |= board.RankMask[r]
			}
			if r < rank {
				forwardBlack |= board.RankMask[r]
			}
		}
		passedMask[board.White][sq] = three & forwardWhite
		passedMask[board.Black][sq] = three & forwardBlack
		backwardMask[board.White][sq] = three & forwardBlack
		backwardMask[board.Black][sq] = three & forwardWhite

		var adjacent board.Bitboard
		if file > 0 {
			adjacent |= board.FileMask[file-1]
		}
		if file < 7 {
			adjacent |= board.FileMask[file+1]
		}
		isolatedMask[sq] = adjacent
	}
}

// initKingShieldMasks builds, for every king square, the strong shield
// (the three squares one rank ahead: two diagonals plus straight ahead)
// and the weak shield (the same three files, one rank further still).
func initKingShieldMasks() {
	for sq := board.A1; sq <= board.H8; sq++ {
		file := sq.File()
		rank := sq.Rank()

		strongShieldMask[board.White][sq] = shieldRank(file, rank+1)
		weakShieldMask[board.White][sq] = shieldRank(file, rank+2)
		strongShieldMask[board.Black][sq] = shieldRank(file, rank-1)
		weakShieldMask[board.Black][sq] = shieldRank(file, rank-2)
	}
}

func shieldRank(file, rank int) board.Bitboard {
	if rank < 0 || rank > 7 {
		return 0
	}
	var mask board.Bitboard
	for df := -1; df <= 1; df++ {
		f := file + df
		if f < 0 || f > 7 {
			continue
		}
		mask |= board.SquareBB(board.NewSquare(f, rank))
	}
	return mask
}

func chebyshevDistance(a, b board.Square) int {
	df := a.File() - b.File()
	dr := a.Rank() - b.Rank()
	if df < 0 {
		df = -df
	}
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

func signOf(c board.Color) int {
	if c == board.Black {
		return -1
	}
	return 1
}

// Evaluate scores a position from the side-to-move's perspective: a large
// negative value offset by the move number on checkmate, zero on a draw, and
// otherwise the usual material-plus-positional sum computed from White's
// point of view and negated for Black.
func Evaluate(pos *board.Position) int {
	if pos.IsCheckmate() {
		return minScore + pos.FullMoveNumber
	}
	if pos.IsDraw() {
		return 0
	}

	score := evaluateMaterialAndImbalance(pos)
	score += evaluatePSTs(pos)
	score += evaluatePawnStructure(pos)
	score += evaluateKingProximity(pos)
	score += evaluateBishopPairs(pos)
	score += evaluateRooks(pos)
	score += evaluateKingSafety(pos)

	if pos.SideToMove == board.Black {
		return -score
	}
	return score
}

func evaluateMaterialAndImbalance(pos *board.Position) int {
	var whiteMaterial, blackMaterial, wn, bn int
	for pt := board.Pawn; pt < board.King; pt++ {
		wc := pos.Pieces[board.White][pt].PopCount()
		bc := pos.Pieces[board.Black][pt].PopCount()
		whiteMaterial += wc * pieceValues[pt]
		blackMaterial += bc * pieceValues[pt]
		wn += wc
		bn += bc
	}

	score := whiteMaterial - blackMaterial
	if whiteMaterial > blackMaterial {
		score += imbalanceBase + imbalanceOwn*wn - imbalanceEnemy*bn
	} else if blackMaterial > whiteMaterial {
		score -= imbalanceBase + imbalanceOwn*bn - imbalanceEnemy*wn
	}
	return score
}

func evaluatePSTs(pos *board.Position) int {
	endgame := pos.IsEndgame()
	score := 0
	for c := board.White; c <= board.Black; c++ {
		sign := signOf(c)
		for pt := board.Pawn; pt <= board.King; pt++ {
			bb := pos.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				pstSq := sq
				if c == board.Black {
					pstSq = sq.Mirror()
				}
				if pt == board.King {
					if endgame {
						score += sign * kingEndgamePST[pstSq]
					} else {
						score += sign * kingMidgamePST[pstSq]
					}
					continue
				}
				score += sign * psts[pt][pstSq]
			}
		}
	}
	return score
}

func evaluatePawnStructure(pos *board.Position) int {
	score := 0
	for c := board.White; c <= board.Black; c++ {
		sign := signOf(c)
		us := pos.Pieces[c][board.Pawn]
		enemy := pos.Pieces[c.Other()][board.Pawn]
		bb := us
		for bb != 0 {
			sq := bb.PopLSB()
			file := sq.File()

			if passedMask[c][sq]&enemy == 0 {
				score += sign * pawnStructurePassedBonus
			}
			if isolatedMask[sq]&us == 0 {
				score += sign * pawnStructureIsolatedPen
			}
			if backwardMask[c][sq]&us == 0 {
				// A pawn is never found on rank 1 or rank 8, so the square
				// directly in front is always on the board.
				var aheadSq board.Square
				if c == board.White {
					aheadSq = board.NewSquare(file, sq.Rank()+1)
				} else {
					aheadSq = board.NewSquare(file, sq.Rank()-1)
				}
				if board.PawnAttacks(aheadSq, c)&enemy != 0 {
					score += sign * pawnStructureBackwardPen
				}
			}
			if board.FileMask[file]&us&^board.SquareBB(sq) != 0 {
				score += sign * pawnStructureDoubledPen
			}
		}
	}
	return score
}

func evaluateKingProximity(pos *board.Position) int {
	endgame := pos.IsEndgame()
	score := 0
	for c := board.White; c <= board.Black; c++ {
		sign := signOf(c)
		oppKing := pos.KingSquare[c.Other()]

		pawns := pos.Pieces[c][board.Pawn]
		for pawns != 0 {
			sq := pawns.PopLSB()
			d := chebyshevDistance(sq, oppKing)
			score += sign * oppPawnSafety[d]
			if endgame {
				score += sign * ownPawnSafety[d]
			}
		}

		addSafety := func(bb board.Bitboard, table [8]int) {
			for bb != 0 {
				sq := bb.PopLSB()
				score += sign * table[chebyshevDistance(sq, oppKing)]
			}
		}
		addSafety(pos.Pieces[c][board.Knight], knightSafety)
		addSafety(pos.Pieces[c][board.Bishop], bishopSafety)
		addSafety(pos.Pieces[c][board.Rook], rookSafety)
		addSafety(pos.Pieces[c][board.Queen], queenSafety)
	}
	return score
}

func evaluateBishopPairs(pos *board.Position) int {
	score := 0
	if pos.Pieces[board.White][board.Bishop].PopCount() >= 2 {
		score += bishopPairBonus
	}
	if pos.Pieces[board.Black][board.Bishop].PopCount() >= 2 {
		score -= bishopPairBonus
	}
	return score
}

func evaluateRooks(pos *board.Position) int {
	score := 0
	for c := board.White; c <= board.Black; c++ {
		sign := signOf(c)
		enemyPawns := pos.Pieces[c.Other()][board.Pawn]
		ownPawns := pos.Pieces[c][board.Pawn]
		rooks := pos.Pieces[c][board.Rook]

		bb := rooks
		for bb != 0 {
			rookSq := bb.PopLSB()
			file := rookSq.File()
			fileMask := board.FileMask[file]

			filePassed := ownPawns & fileMask
			behindPassed := false
			fp := filePassed
			for fp != 0 {
				pawnSq := fp.PopLSB()
				if passedMask[c][pawnSq]&enemyPawns != 0 {
					continue // not actually passed
				}
				if c == board.White && rookSq < pawnSq {
					behindPassed = true
				}
				if c == board.Black && rookSq > pawnSq {
					behindPassed = true
				}
			}
			if behindPassed {
				score += sign * rookBehindPassedPawnBonus
			}

			if fileMask&enemyPawns == 0 {
				score += sign * rookOpenFileBonus
				if (rooks&^board.SquareBB(rookSq))&fileMask != 0 {
					score += sign * rookSharedOpenFileBonus
				}
			}
		}
	}
	return score
}

func evaluateKingSafety(pos *board.Position) int {
	if pos.IsEndgame() {
		return 0
	}
	score := 0
	for c := board.White; c <= board.Black; c++ {
		sign := signOf(c)
		kingSq := pos.KingSquare[c]
		pawns := pos.Pieces[c][board.Pawn]

		strong := (strongShieldMask[c][kingSq] & pawns).PopCount()
		weak := (weakShieldMask[c][kingSq] & pawns).PopCount()
		score += sign * (strong*kingShieldStrongBonus + weak*kingShieldWeakBonus)
	}
	return score
}

// EvaluateMaterial returns only the raw material balance, used by callers
// that need a quick heuristic without the full positional evaluation.
func EvaluateMaterial(pos *board.Position) int {
	score := 0
	for pt := board.Pawn; pt < board.King; pt++ {
		score += pos.Pieces[board.White][pt].PopCount() * pieceValues[pt]
		score -= pos.Pieces[board.Black][pt].PopCount() * pieceValues[pt]
	}
	return score
}
