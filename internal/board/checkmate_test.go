package board

import "testing"

// TestFoolsMate plays the exact sequence from the module's own mate
// scenario: f2f3, e7e5, g2g4, d8h4. After the last move the side to
// move (White) is checkmated.
func TestFoolsMate(t *testing.T) {
	pos := NewPosition()

	moves := []Move{
		NewQuietMove(F2, F3, Pawn),
		NewQuietMove(E7, E5, Pawn),
		NewQuietMove(G2, G4, Pawn),
		NewQuietMove(D8, H4, Queen),
	}
	for _, m := range moves {
		if !pos.MakeMove(m) {
			t.Fatalf("move %v rejected as illegal, FEN before: %s", m, pos.ToFEN())
		}
	}

	if !pos.IsCheckmate() {
		t.Fatalf("expected checkmate after fool's mate, got FEN %s", pos.ToFEN())
	}
	if pos.IsStalemate() {
		t.Error("checkmate position must not also report stalemate")
	}
	if !pos.InCheck() {
		t.Error("IsCheckmate must imply InCheck")
	}
	if pos.HasLegalMoves() {
		t.Error("IsCheckmate must imply zero legal moves")
	}

	// Undo unwinds one ply at a time back to the starting position.
	for range moves {
		pos.Undo()
	}
	if got, want := pos.ToFEN(), NewPosition().ToFEN(); got != want {
		t.Errorf("Undo chain left FEN %q, want starting position %q", got, want)
	}
}

// TestBackRankMate exercises a quieter mate: White's rook pins Black's
// king to the back rank with no escape and no blocker.
func TestBackRankMate(t *testing.T) {
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	if !pos.IsCheckmate() {
		t.Error("expected checkmate")
	}
	if pos.IsDraw() {
		t.Error("a checkmated position is not also a draw")
	}
}

// TestStalemate covers the draw-by-no-legal-moves case that
// IsCheckmate must NOT report: the side to move has no legal moves
// but is not in check.
func TestStalemate(t *testing.T) {
	// Black king boxed in on h8 with no checks and no legal moves;
	// White queen on g6 covers g7/g8/h7, White king out of the way on f6.
	pos, err := ParseFEN("7k/8/5KQ1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	if pos.InCheck() {
		t.Fatal("stalemate fixture must not be in check")
	}
	if pos.HasLegalMoves() {
		t.Fatal("stalemate fixture must have zero legal moves")
	}
	if !pos.IsStalemate() {
		t.Error("expected stalemate")
	}
	if pos.IsCheckmate() {
		t.Error("stalemate must not also report checkmate")
	}
	if !pos.IsDraw() {
		t.Error("stalemate is a draw")
	}
}

// TestNotCheckmate is a position where the king in check can resolve
// it by capturing the checking piece.
func TestNotCheckmate(t *testing.T) {
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	if !pos.InCheck() {
		t.Fatal("fixture must be in check")
	}
	if pos.IsCheckmate() {
		t.Error("king can capture the checking rook, not checkmate")
	}
}
