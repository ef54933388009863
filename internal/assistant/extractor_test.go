package assistant

import (
	"fmt"
	"strings"
	"testing"
)

func TestExtractFlashcardsPatterns(t *testing.T) {
	notes := strings.Join([]string{
		"Mitochondria: the powerhouse of the cell",
		"Osmosis - diffusion of water across a membrane",
		"ATP = adenosine triphosphate",
		"",
		"This line has no separator and is skipped",
	}, "\n")

	cards := ExtractFlashcards(notes)
	if len(cards) != 3 {
		t.Fatalf("got %d cards, want 3: %+v", len(cards), cards)
	}

	wants := [][2]string{
		{"Mitochondria", "the powerhouse of the cell"},
		{"Osmosis", "diffusion of water across a membrane"},
		{"ATP", "adenosine triphosphate"},
	}
	for i, want := range wants {
		if cards[i].Front != want[0] || cards[i].Back != want[1] {
			t.Errorf("card %d = %+v, want {%s %s}", i, cards[i], want[0], want[1])
		}
	}
}

func TestExtractFlashcardsColonWinsOverDash(t *testing.T) {
	cards := ExtractFlashcards("Mid-term: covers chapters 1-3")
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if cards[0].Front != "Mid-term" || cards[0].Back != "covers chapters 1-3" {
		t.Errorf("card = %+v, colon split should win", cards[0])
	}
}

func TestExtractFlashcardsTermLengthCap(t *testing.T) {
	longTerm := strings.Repeat("x", maxTermLength)
	cards := ExtractFlashcards(longTerm + ": definition")
	if len(cards) != 0 {
		t.Errorf("got %d cards, overlong terms should be rejected", len(cards))
	}
}

func TestExtractFlashcardsCardCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < maxExtractedCards+10; i++ {
		fmt.Fprintf(&b, "Term %d: definition %d\n", i, i)
	}

	cards := ExtractFlashcards(b.String())
	if len(cards) != maxExtractedCards {
		t.Errorf("got %d cards, want cap of %d", len(cards), maxExtractedCards)
	}
}

func TestExtractFlashcardsEmptyInput(t *testing.T) {
	if cards := ExtractFlashcards("   \n\n  "); len(cards) != 0 {
		t.Errorf("got %d cards from blank input, want 0", len(cards))
	}
}
