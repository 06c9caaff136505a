package engine

import (
	"sort"

	"github.com/brindlehollow/chesscore/internal/board"
)

// Search-wide constants. Infinity bounds the alpha-beta window and lies
// above every mate score the evaluator returns (minScore plus the move
// number, see eval.go); MateScore is unused directly (mate is scored by
// the evaluator itself) but kept as the conventional name callers look
// for when classifying a returned score as "somebody gets mated."
const (
	Infinity                  = -minScore + 1
	MateScore                 = 29000
	MaxPly                    = 128
	NullMoveReduction         = 4
	NullMoveMaterialThreshold = 319
)

// Evaluator scores a position from the side-to-move's perspective. The
// package-level Evaluate function is the default; callers may plug in
// another one via Searcher.SetEvaluator.
type Evaluator func(*board.Position) int

// Searcher owns every piece of state a single search needs: the history
// heuristic table, the triangular PV buffer, and the previous iteration's
// principal variation. It is not safe to share one Searcher across
// concurrent searches; create one per active search session.
type Searcher struct {
	maxDepth int
	eval     Evaluator

	history [2][64][64]int

	pvTriangle [MaxPly][MaxPly]board.Move
	pvLength   [MaxPly]int
	lastPV     []board.Move
	followPV   bool
	allowNull  bool

	legalMoves []board.Move
	nodes      int64
}

// NewSearcher builds a Searcher with the default evaluator and a depth of 1.
func NewSearcher() *Searcher {
	s := &Searcher{maxDepth: 1, eval: Evaluate}
	return s
}

// SetDepth sets max_depth for subsequent searches. Iterative deepening runs
// from depth 1 to max_depth-1 inclusive, so depth must be at least 2 to
// search at all.
func (s *Searcher) SetDepth(d int) {
	s.maxDepth = d
}

// SetEvaluator installs a replacement static evaluator.
func (s *Searcher) SetEvaluator(e Evaluator) {
	s.eval = e
}

// Nodes returns the number of nodes visited by the most recent search.
func (s *Searcher) Nodes() int64 {
	return s.nodes
}

// BestMove returns the first move of GetMoveList, or NoMove if the
// position has no legal moves.
func (s *Searcher) BestMove(pos *board.Position) board.Move {
	moves := s.GetMoveList(pos)
	if len(moves) == 0 {
		return board.NoMove
	}
	return moves[0]
}

// GetMoveList runs iterative deepening from depth 1 to max_depth-1
// inclusive and returns the ordered move buffer captured at the outermost
// call of the final iteration. History persists across iterations;
// pv_triangle is zeroed at the start of each one.
func (s *Searcher) GetMoveList(pos *board.Position) []board.Move {
	s.nodes = 0
	s.legalMoves = nil
	s.lastPV = nil

	for d := 1; d <= s.maxDepth-1; d++ {
		s.pvTriangle = [MaxPly][MaxPly]board.Move{}
		s.pvLength = [MaxPly]int{}
		s.followPV = true
		s.allowNull = true

		s.alphaBeta(pos, -Infinity, Infinity, d, 0)

		if s.pvLength[0] > 0 {
			pv := make([]board.Move, s.pvLength[0])
			copy(pv, s.pvTriangle[0][:s.pvLength[0]])
			s.lastPV = pv
		}
	}

	return s.legalMoves
}

// alphaBeta is the negamax search with alpha-beta pruning, PVS re-search,
// null-move pruning and PV-move ordering.
func (s *Searcher) alphaBeta(pos *board.Position, alpha, beta, depth, ply int) int {
	s.pvLength[ply] = ply

	if depth <= 0 {
		s.followPV = false
		return s.qsearch(pos, alpha, beta, ply)
	}
	if pos.IsEndOfGame() {
		s.followPV = false
		return s.eval(pos)
	}

	inCheck := pos.InCheck()
	us := pos.SideToMove

	if s.allowNull && !s.followPV && pos.SideMaterial(us) > NullMoveMaterialThreshold && !inCheck {
		s.allowNull = false
		pos.DoNullMove()
		v := -s.alphaBeta(pos, -beta, -beta+1, depth-NullMoveReduction, ply)
		pos.Undo()
		s.allowNull = true
		if v >= beta {
			return v
		}
	}
	s.allowNull = true

	buf := pos.GeneratePseudoLegalMoves()
	n := buf.Len()
	movesFound := 0

	for i := 0; i < n; i++ {
		s.promoteBestToFront(i, buf, n, depth, ply, us)
		m := buf.Get(i)
		if !pos.MakeMove(m) {
			continue
		}

		var v int
		if movesFound > 0 {
			v = -s.alphaBeta(pos, -alpha-1, -alpha, depth-1, ply+1)
			if v > alpha && v < beta {
				v = -s.alphaBeta(pos, -beta, -alpha, depth-1, ply+1)
			}
		} else {
			v = -s.alphaBeta(pos, -beta, -alpha, depth-1, ply+1)
		}
		pos.Undo()

		if v >= beta {
			s.history[us][m.From()][m.To()] += depth * depth
			return beta
		}
		if v > alpha {
			alpha = v
			movesFound++

			s.pvTriangle[ply][ply] = m
			copy(s.pvTriangle[ply][ply+1:s.pvLength[ply+1]], s.pvTriangle[ply+1][ply+1:s.pvLength[ply+1]])
			s.pvLength[ply] = s.pvLength[ply+1]
		}
	}

	if movesFound > 0 {
		pvMove := s.pvTriangle[ply][ply]
		s.history[us][pvMove.From()][pvMove.To()] += depth * depth
	}

	if ply == 0 && depth == s.maxDepth-1 && n > 0 {
		ordered := make([]board.Move, n)
		for i := 0; i < n; i++ {
			ordered[i] = buf.Get(i)
		}
		s.legalMoves = ordered
	}

	return alpha
}

// qsearch extends the search with captures and promotions only, to avoid
// misjudging a position where the side to move is mid-exchange.
func (s *Searcher) qsearch(pos *board.Position, alpha, beta, ply int) int {
	s.pvLength[ply] = ply
	s.nodes++

	if pos.InCheck() {
		return s.alphaBeta(pos, alpha, beta, 1, ply)
	}

	standPat := s.eval(pos)
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	captures := pos.GenerateCapturesAndPromotions()
	kept := make([]board.Move, 0, captures.Len())
	seeOf := make(map[board.Move]int, captures.Len())
	for i := 0; i < captures.Len(); i++ {
		m := captures.Get(i)
		see := pos.SEE(m)
		if see < 0 {
			continue
		}
		seeOf[m] = see
		kept = append(kept, m)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return seeOf[kept[i]] > seeOf[kept[j]]
	})

	for _, m := range kept {
		if !pos.MakeMove(m) {
			continue
		}
		v := -s.qsearch(pos, -beta, -alpha, ply+1)
		pos.Undo()

		if v >= beta {
			return v
		}
		if v > alpha {
			alpha = v
			s.pvTriangle[ply][ply] = m
			copy(s.pvTriangle[ply][ply+1:s.pvLength[ply+1]], s.pvTriangle[ply+1][ply+1:s.pvLength[ply+1]])
			s.pvLength[ply] = s.pvLength[ply+1]
		}
	}

	return alpha
}

// promoteBestToFront swaps the best remaining move (by PV membership, then
// by history score) into position i of the pseudo-legal buffer.
func (s *Searcher) promoteBestToFront(i int, buf *board.MoveList, n, depth, ply int, us board.Color) {
	if s.followPV && depth > 1 && ply < len(s.lastPV) {
		want := s.lastPV[ply]
		for j := i; j < n; j++ {
			if buf.Get(j) == want {
				buf.Swap(i, j)
				return
			}
		}
	}

	best := i
	bestScore := -1
	for j := i; j < n; j++ {
		m := buf.Get(j)
		score := s.history[us][m.From()][m.To()]
		if score > bestScore {
			bestScore = score
			best = j
		}
	}
	buf.Swap(i, best)
}
