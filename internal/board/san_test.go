package board

import "testing"

func TestToSANBasicMoves(t *testing.T) {
	pos := NewPosition()

	tests := []struct {
		move Move
		want string
	}{
		{NewQuietMove(E2, E4, Pawn), "e4"},
		{NewQuietMove(G1, F3, Knight), "Nf3"},
	}
	for _, tc := range tests {
		got := tc.move.ToSAN(pos)
		if got != tc.want {
			t.Errorf("ToSAN(%v) = %q, want %q", tc.move, got, tc.want)
		}
	}
}

func TestToSANCastling(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if got, want := NewCastling(E1, G1, true).ToSAN(pos), "O-O"; got != want {
		t.Errorf("ToSAN(kingside castle) = %q, want %q", got, want)
	}
	if got, want := NewCastling(E1, C1, false).ToSAN(pos), "O-O-O"; got != want {
		t.Errorf("ToSAN(queenside castle) = %q, want %q", got, want)
	}
}

func TestToSANDisambiguation(t *testing.T) {
	// Two white knights, both able to reach d2: b1 and f3.
	pos, err := ParseFEN("4k3/8/8/8/8/5N2/8/1N2K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if got, want := NewQuietMove(B1, D2, Knight).ToSAN(pos), "Nbd2"; got != want {
		t.Errorf("ToSAN(Nb1-d2) = %q, want %q", got, want)
	}
	if got, want := NewQuietMove(F3, D2, Knight).ToSAN(pos), "Nfd2"; got != want {
		t.Errorf("ToSAN(Nf3-d2) = %q, want %q", got, want)
	}
}

func TestToSANCheckAndMateMarkers(t *testing.T) {
	// 1.f3 e5 2.g4 Qh4+ is mate in the fool's-mate line.
	pos, err := ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := NewQuietMove(D8, H4, Queen)
	if got, want := m.ToSAN(pos), "Qh4#"; got != want {
		t.Errorf("ToSAN(mating move) = %q, want %q", got, want)
	}
}

// TestSANRoundTrip checks that for every legal move in a handful of
// positions, formatting to SAN and parsing the result back with
// ParseSAN recovers the exact same move.
func TestSANRoundTrip(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		legal := pos.GenerateLegalMoves()
		for i := 0; i < legal.Len(); i++ {
			m := legal.Get(i)
			san := m.ToSAN(pos)
			got, err := ParseSAN(san, pos)
			if err != nil {
				t.Errorf("fen %q: ParseSAN(%q) error: %v", fen, san, err)
				continue
			}
			if got != m {
				t.Errorf("fen %q: round trip for %v (SAN %q) produced %v", fen, m, san, got)
			}
		}
	}
}

func TestMovesToSAN(t *testing.T) {
	pos := NewPosition()
	moves := []Move{
		NewQuietMove(E2, E4, Pawn),
		NewQuietMove(E7, E5, Pawn),
		NewQuietMove(G1, F3, Knight),
	}
	san := MovesToSAN(pos, moves)
	want := []string{"e4", "e5", "Nf3"}
	if len(san) != len(want) {
		t.Fatalf("MovesToSAN returned %d entries, want %d", len(san), len(want))
	}
	for i := range want {
		if san[i] != want[i] {
			t.Errorf("san[%d] = %q, want %q", i, san[i], want[i])
		}
	}

	// MovesToSAN must not mutate the caller's position.
	if got, want := pos.ToFEN(), NewPosition().ToFEN(); got != want {
		t.Errorf("MovesToSAN mutated caller's position: got FEN %q, want %q", got, want)
	}
}
