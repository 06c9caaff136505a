package engine

import (
	"math/rand"

	"github.com/brindlehollow/chesscore/internal/board"
)

// Difficulty selects the search depth used for engine-driven moves.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// difficultyDepth maps a Difficulty to the max_depth passed to the
// searcher; iterative deepening then runs depth 1..max_depth-1.
var difficultyDepth = map[Difficulty]int{
	Easy:   3,
	Medium: 5,
	Hard:   7,
}

// SuggestedMove pairs a packed move with its SAN rendering, as returned
// by Engine.SuggestedMoves.
type SuggestedMove struct {
	MoveInt int
	SAN     string
}

// Engine wires a Position to a Searcher and exposes the move-level API a
// UI or CLI collaborator drives: apply moves, query game status, and ask
// for the engine's own move.
type Engine struct {
	pos        *board.Position
	searcher   *Searcher
	difficulty Difficulty
}

// NewEngine wraps pos (or a fresh starting position if pos is nil) with a
// searcher at the Medium difficulty.
func NewEngine(pos *board.Position) *Engine {
	if pos == nil {
		pos = board.NewPosition()
	}
	e := &Engine{
		pos:      pos,
		searcher: NewSearcher(),
	}
	e.SetDifficulty(Medium)
	return e
}

// InitBoard resets the engine's board to the starting position.
func (e *Engine) InitBoard() {
	e.pos = board.NewPosition()
}

// SetDifficulty selects the search depth used by BestEngineMove and
// SuggestedMoves.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
	e.searcher.SetDepth(difficultyDepth[d])
}

// Position exposes the underlying board for read-only inspection.
func (e *Engine) Position() *board.Position {
	return e.pos
}

// MakeMoveInt applies a packed move, returning false (and leaving the
// board unchanged) if it is not one of the current legal moves.
func (e *Engine) MakeMoveInt(moveInt int) bool {
	m := board.Move(moveInt)
	legal := e.pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		if legal.Get(i) == m {
			return e.pos.MakeMove(m)
		}
	}
	return false
}

// MakeMoveCoords applies the legal move between two on-screen coordinates,
// where y=0 is the top row (rank 8). Coordinates are converted to square
// indices via ((7-y)*8+x). Ambiguous promotions default to queen.
func (e *Engine) MakeMoveCoords(fx, fy, tx, ty int) bool {
	from := coordToSquare(fx, fy)
	to := coordToSquare(tx, ty)

	legal := e.pos.GenerateLegalMoves()
	chosen := board.NoMove
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if !m.IsPromotion() || m.Promotion() == board.Queen {
			chosen = m
			break
		}
		if chosen == board.NoMove {
			chosen = m
		}
	}
	if chosen == board.NoMove {
		return false
	}
	return e.pos.MakeMove(chosen)
}

func coordToSquare(x, y int) board.Square {
	return board.Square((7-y)*8 + x)
}

// UndoMove rolls back one full move pair (the human's move and the
// engine's reply) by calling the board's undo twice. This is only correct
// when called exactly once after exactly one such pair has been played;
// calling it after a single ply, or twice in a row, desynchronizes the
// board from the caller's notion of game history.
func (e *Engine) UndoMove() {
	e.pos.Undo()
	e.pos.Undo()
}

// Get returns the FEN character at squareIndex (PNBRQK / pnbrqk / space
// for empty), or space if squareIndex is out of range.
func (e *Engine) Get(squareIndex int) byte {
	if squareIndex < 0 || squareIndex > 63 {
		return ' '
	}
	p := e.pos.PieceAt(board.Square(squareIndex))
	if p == board.NoPiece {
		return ' '
	}
	return p.String()[0]
}

// WhiteWins reports checkmate with Black to move.
func (e *Engine) WhiteWins() bool {
	return e.pos.SideToMove == board.Black && e.pos.IsCheckmate()
}

// BlackWins reports checkmate with White to move.
func (e *Engine) BlackWins() bool {
	return e.pos.SideToMove == board.White && e.pos.IsCheckmate()
}

// IsDraw reports any of the drawing conditions the board recognizes.
func (e *Engine) IsDraw() bool {
	return e.pos.IsDraw()
}

// BestEngineMove searches the current position at the configured
// difficulty and returns the packed best move, or 0 if there is none.
func (e *Engine) BestEngineMove() int {
	m := e.searcher.BestMove(e.pos)
	if m == board.NoMove {
		return 0
	}
	return int(m)
}

// RandomEngineMove picks a legal move at random, weighted so move i (of n,
// 0-indexed in generation order) is chosen with weight n-i: the first
// generated move is n times as likely as the last.
func (e *Engine) RandomEngineMove() int {
	legal := e.pos.GenerateLegalMoves()
	n := legal.Len()
	if n == 0 {
		return 0
	}

	totalWeight := n * (n + 1) / 2
	pick := rand.Intn(totalWeight) + 1
	cumulative := 0
	for i := 0; i < n; i++ {
		cumulative += n - i
		if pick <= cumulative {
			return int(legal.Get(i))
		}
	}
	return int(legal.Get(n - 1))
}

// SuggestedMoves runs one search and maps every nonzero move the searcher
// returns to its SAN rendering, in the searcher's own order.
func (e *Engine) SuggestedMoves() []SuggestedMove {
	moves := e.searcher.GetMoveList(e.pos)
	out := make([]SuggestedMove, 0, len(moves))
	for _, m := range moves {
		if m == board.NoMove {
			continue
		}
		out = append(out, SuggestedMove{
			MoveInt: int(m),
			SAN:     m.ToSAN(e.pos),
		})
	}
	return out
}

// Perft counts leaf nodes at the given depth from the current position,
// the standard move-generator correctness check.
func (e *Engine) Perft(depth int) int64 {
	return perftCount(e.pos, depth)
}

func perftCount(pos *board.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}
	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if !pos.MakeMove(m) {
			continue
		}
		nodes += perftCount(pos, depth-1)
		pos.Undo()
	}
	return nodes
}
