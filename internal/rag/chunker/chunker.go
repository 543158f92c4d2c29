package chunker

import (
	"strings"
	"unicode/utf8"
)

//splitter

// Separator classes ordered from "best" to "worst" for semantic meaning.
// Within each window the last boundary of the highest-priority class wins;
// a hard character cut only happens when no class matches at all.
var separatorClasses = [][]string{
	{"\n\n"},
	{"\n"},
	{". ", "! ", "? "},
	{" "},
}

type Chunker struct {
	maxChars int
	overlap  int
}

func New(maxChars, overlap int) *Chunker {
	if maxChars <= 0 {
		maxChars = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChars {
		overlap = maxChars / 2
	}
	return &Chunker{maxChars: maxChars, overlap: overlap}
}

// Split cuts text into overlapping segments of at most maxChars each.
// Deterministic for identical input and configuration. Empty or
// whitespace-only input yields nil; the caller treats that as an
// ingestion failure, not a chunker error.
func (c *Chunker) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + c.maxChars
		if end >= len(text) {
			appendIfNotBlank(&chunks, text[start:])
			break
		}

		cut := findCut(text, start, end)
		appendIfNotBlank(&chunks, text[start:cut])

		// The next chunk re-reads the tail of this one.
		next := alignRuneStart(text, cut-c.overlap)
		if next <= start {
			next = cut
		}
		start = next
	}
	return chunks
}

// findCut returns the position just past the best boundary inside
// text[start:end], or end when the window holds no boundary at all.
func findCut(text string, start, end int) int {
	window := text[start:end]
	for _, class := range separatorClasses {
		best, bestLen := -1, 0
		for _, sep := range class {
			if idx := strings.LastIndex(window, sep); idx > best {
				best, bestLen = idx, len(sep)
			}
		}
		if best > 0 {
			return start + best + bestLen
		}
	}

	// Hard cut. Back up to a rune boundary so a multi-byte character is
	// never split across chunks.
	cut := alignRuneStart(text, end)
	if cut <= start {
		_, size := utf8.DecodeRuneInString(text[start:])
		return start + size
	}
	return cut
}

// alignRuneStart walks i back to the start of the rune it points into.
func alignRuneStart(text string, i int) int {
	for i > 0 && i < len(text) && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

func appendIfNotBlank(chunks *[]string, segment string) {
	if strings.TrimSpace(segment) != "" {
		*chunks = append(*chunks, segment)
	}
}
