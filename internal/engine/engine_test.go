package engine

import (
	"testing"

	"github.com/brindlehollow/chesscore/internal/board"
)

func TestSearchBasic(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(pos)
	eng.SetDifficulty(Easy)

	move := eng.BestEngineMove()
	if move == 0 {
		t.Fatal("BestEngineMove returned 0 for starting position")
	}
	t.Logf("Best move: %s", board.Move(move).String())
}

func TestSearchFindsMateInOne(t *testing.T) {
	// After 1.f3 e5 2.g4, Black to move has a mate in one: Qd8-h4#.
	pos, err := board.ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	eng := NewEngine(pos)
	eng.SetDifficulty(Hard)

	m := board.Move(eng.BestEngineMove())
	if m == board.NoMove {
		t.Fatal("expected a move")
	}
	if !pos.MakeMove(m) {
		t.Fatalf("engine returned illegal move %s", m)
	}
	if !pos.IsCheckmate() {
		t.Errorf("expected checkmate after %s, got %s", m, pos.ToFEN())
	}
}

func TestMakeMoveIntRejectsIllegalMove(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(pos)

	garbage := board.NewQuietMove(board.E2, board.E5, board.Pawn)
	if eng.MakeMoveInt(int(garbage)) {
		t.Error("expected illegal pawn double-hop-to-e5 to be rejected")
	}

	legal := board.NewMove(board.E2, board.E4, board.Pawn, false, board.FlagNone)
	if !eng.MakeMoveInt(int(legal)) {
		t.Error("expected e2e4 to be accepted")
	}
}

func TestMakeMoveCoordsTopRowConversion(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(pos)

	// e2 is (x=4, y=6) in a y=0-top-row scheme; e4 is (x=4, y=4).
	if !eng.MakeMoveCoords(4, 6, 4, 4) {
		t.Fatal("expected e2e4 to be accepted via coordinate interface")
	}
	if pos.PieceAt(board.E4) != board.WhitePawn {
		t.Errorf("expected a white pawn on e4, got %v", pos.PieceAt(board.E4))
	}
}

func TestGetReturnsFENCharsAndSpace(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(pos)

	if got := eng.Get(int(board.E1)); got != 'K' {
		t.Errorf("Get(e1) = %c, want K", got)
	}
	if got := eng.Get(int(board.E8)); got != 'k' {
		t.Errorf("Get(e8) = %c, want k", got)
	}
	if got := eng.Get(int(board.E4)); got != ' ' {
		t.Errorf("Get(e4) = %c, want space", got)
	}
	if got := eng.Get(-1); got != ' ' {
		t.Errorf("Get(-1) = %c, want space", got)
	}
	if got := eng.Get(64); got != ' ' {
		t.Errorf("Get(64) = %c, want space", got)
	}
}

func TestWinDrawPredicates(t *testing.T) {
	// Fool's mate (1.f3 e5 2.g4 Qh4#): White is mated.
	pos, err := board.ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	eng := NewEngine(pos)
	if !pos.IsCheckmate() {
		t.Skip("position is not actually checkmate, skip")
	}
	if !eng.BlackWins() {
		t.Error("expected BlackWins with White checkmated")
	}
	if eng.WhiteWins() {
		t.Error("did not expect WhiteWins")
	}
	if eng.IsDraw() {
		t.Error("a checkmated position is not a draw")
	}
}

func TestRandomEngineMoveAlwaysLegal(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(pos)

	legal := pos.GenerateLegalMoves()
	legalSet := make(map[board.Move]bool, legal.Len())
	for i := 0; i < legal.Len(); i++ {
		legalSet[legal.Get(i)] = true
	}

	for i := 0; i < 50; i++ {
		m := board.Move(eng.RandomEngineMove())
		if !legalSet[m] {
			t.Fatalf("RandomEngineMove returned %s, not in the legal move set", m)
		}
	}
}

func TestSuggestedMovesHaveSAN(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(pos)
	eng.SetDifficulty(Easy)

	suggestions := eng.SuggestedMoves()
	if len(suggestions) == 0 {
		t.Fatal("expected at least one suggested move from the starting position")
	}
	for _, s := range suggestions {
		if s.SAN == "" {
			t.Errorf("suggestion for move %d has empty SAN", s.MoveInt)
		}
	}
}

func TestPerftMatchesBoardPackage(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(pos)

	if got := eng.Perft(3); got != 8902 {
		t.Errorf("Perft(3) = %d, want 8902", got)
	}
}

func TestUndoMoveRollsBackOnePair(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(pos)
	before := pos.ToFEN()

	eng.MakeMoveInt(int(board.NewMove(board.E2, board.E4, board.Pawn, false, board.FlagNone)))
	eng.MakeMoveInt(int(board.NewMove(board.E7, board.E5, board.Pawn, false, board.FlagNone)))
	eng.UndoMove()

	if got := pos.ToFEN(); got != before {
		t.Errorf("UndoMove left board at %q, want %q", got, before)
	}
}
