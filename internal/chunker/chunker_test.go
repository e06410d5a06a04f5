package chunker

import (
	"strings"
	"testing"
)

func TestChunk_FitsInOne(t *testing.T) {
	text := "Short enough."
	got := Chunk(text, 100)
	if len(got) != 1 || got[0] != text {
		t.Errorf("Chunk = %v, want single unchanged piece", got)
	}
}

func TestChunk_Unlimited(t *testing.T) {
	text := strings.Repeat("word ", 100)
	got := Chunk(text, 0)
	if len(got) != 1 || got[0] != text {
		t.Errorf("Chunk with maxRunes 0 = %d pieces, want 1 unchanged", len(got))
	}
}

func TestChunk_SentenceBoundary(t *testing.T) {
	text := "First sentence here. Second sentence follows. Third one closes."
	got := Chunk(text, 25)

	want := []string{"First sentence here.", "Second sentence follows.", "Third one closes."}
	if len(got) != len(want) {
		t.Fatalf("Chunk = %v (%d pieces), want %d", got, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Chunk[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChunk_ParagraphPreferred(t *testing.T) {
	text := "First paragraph text.\n\nSecond paragraph continues onward here."
	got := Chunk(text, 40)

	if len(got) != 2 {
		t.Fatalf("Chunk = %v, want split at the blank line", got)
	}
	if got[0] != "First paragraph text." {
		t.Errorf("Chunk[0] = %q, want first paragraph", got[0])
	}
	if got[1] != "Second paragraph continues onward here." {
		t.Errorf("Chunk[1] = %q, want second paragraph", got[1])
	}
}

func TestChunk_WordBoundaryFallback(t *testing.T) {
	text := "no sentence punctuation just many words flowing on and on"
	for _, piece := range Chunk(text, 20) {
		if len([]rune(piece)) > 20 {
			t.Errorf("piece %q exceeds the limit", piece)
		}
		if strings.HasPrefix(piece, " ") || strings.HasSuffix(piece, " ") {
			t.Errorf("piece %q not trimmed", piece)
		}
	}
}

func TestChunk_HardCut(t *testing.T) {
	text := strings.Repeat("x", 50)
	got := Chunk(text, 20)

	var rebuilt strings.Builder
	for _, piece := range got {
		if len([]rune(piece)) > 20 {
			t.Errorf("piece of length %d exceeds the limit", len([]rune(piece)))
		}
		rebuilt.WriteString(piece)
	}
	if rebuilt.String() != text {
		t.Error("hard-cut pieces do not reassemble the input")
	}
}

func TestChunk_NothingLost(t *testing.T) {
	text := "One sentence. Two sentences! Three sentences? Four closes the set."
	joined := strings.Join(Chunk(text, 18), " ")
	if joined != text {
		t.Errorf("rejoined = %q, want original %q", joined, text)
	}
}
