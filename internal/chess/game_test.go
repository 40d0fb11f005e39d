package chess

import (
	"testing"
)

func sampleGame() *Game {
	return &Game{
		Tags: []Tag{
			{Name: "Event", Value: "Casual Game"},
			{Name: "White", Value: "Morphy"},
			{Name: "Annotator", Value: "first"},
			{Name: "Black", Value: "Duke Karl / Count Isouard"},
			{Name: "Annotator", Value: "second"},
		},
		Moves: []MovePair{
			{Number: 1, White: Move{Text: "e4"}, Black: &Move{Text: "e5"}},
			{Number: 2, White: Move{Text: "Nf3", Comment: &Comment{Text: "developing"}}, Black: &Move{Text: "d6"}},
			{Number: 3, White: Move{Text: "d4"}},
		},
		Result: ResultUnknown,
	}
}

func TestGameTags(t *testing.T) {
	g := sampleGame()

	if got := g.White(); got != "Morphy" {
		t.Errorf("White() = %q, want %q", got, "Morphy")
	}
	if got := g.Black(); got != "Duke Karl / Count Isouard" {
		t.Errorf("Black() = %q, want %q", got, "Duke Karl / Count Isouard")
	}
	if got := g.Event(); got != "Casual Game" {
		t.Errorf("Event() = %q, want %q", got, "Casual Game")
	}
	if got := g.Site(); got != "" {
		t.Errorf("Site() = %q, want empty", got)
	}
	if got := g.GetTag("Annotator"); got != "first" {
		t.Errorf("GetTag(Annotator) = %q, want first occurrence %q", got, "first")
	}
	if got := g.TagValues("Annotator"); len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("TagValues(Annotator) = %v, want [first second]", got)
	}
	if !g.HasTag("Black") {
		t.Error("HasTag(Black) = false, want true")
	}
	if g.HasTag("Date") {
		t.Error("HasTag(Date) = true, want false")
	}
}

func TestGameMoves(t *testing.T) {
	g := sampleGame()

	if got := g.PlyCount(); got != 5 {
		t.Errorf("PlyCount() = %d, want 5", got)
	}
	if last := g.LastMove(); last == nil || last.Text != "d4" {
		t.Errorf("LastMove() = %v, want d4", last)
	}
	if !g.HasComments() {
		t.Error("HasComments() = false, want true")
	}

	empty := &Game{Result: ResultDraw}
	if empty.LastMove() != nil {
		t.Error("LastMove() on empty game should be nil")
	}
	if empty.PlyCount() != 0 {
		t.Errorf("PlyCount() on empty game = %d, want 0", empty.PlyCount())
	}
	if empty.HasComments() {
		t.Error("HasComments() on empty game = true, want false")
	}
}

func TestMovePairPlies(t *testing.T) {
	full := MovePair{Number: 1, White: Move{Text: "e4"}, Black: &Move{Text: "c5"}}
	half := MovePair{Number: 1, White: Move{Text: "e4"}}

	if full.Plies() != 2 {
		t.Errorf("full.Plies() = %d, want 2", full.Plies())
	}
	if half.Plies() != 1 {
		t.Errorf("half.Plies() = %d, want 1", half.Plies())
	}
	if half.Black.HasComment() {
		t.Error("nil Black move should report no comment")
	}
}

func TestIsResult(t *testing.T) {
	for _, r := range []string{"1-0", "0-1", "1/2-1/2", "*"} {
		if !IsResult(r) {
			t.Errorf("IsResult(%q) = false, want true", r)
		}
	}
	for _, r := range []string{"0-0", "", "1/2", "½-½", "1-0 "} {
		if IsResult(r) {
			t.Errorf("IsResult(%q) = true, want false", r)
		}
	}
}

func TestSquareCharacters(t *testing.T) {
	for c := byte('a'); c <= 'h'; c++ {
		if !IsCol(c) {
			t.Errorf("IsCol(%c) = false", c)
		}
	}
	for _, c := range []byte{'i', 'A', '1'} {
		if IsCol(c) {
			t.Errorf("IsCol(%c) = true", c)
		}
	}
	for c := byte('1'); c <= '8'; c++ {
		if !IsRank(c) {
			t.Errorf("IsRank(%c) = false", c)
		}
	}
	for _, c := range []byte{'0', '9', 'a'} {
		if IsRank(c) {
			t.Errorf("IsRank(%c) = true", c)
		}
	}
	if IsPromotionLetter('K') {
		t.Error("IsPromotionLetter(K) = true")
	}
	if !IsPieceLetter('K') || IsPieceLetter('P') {
		t.Error("IsPieceLetter mismatch for K or P")
	}
}
