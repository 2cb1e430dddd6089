package textsplit

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Boundary preference order: paragraph, line, sentence, word, hard cut.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter splits text into windows of at most Size runes with Overlap runes
// shared between consecutive windows, breaking at the most natural boundary
// available. Splitting is deterministic and never yields an empty chunk;
// text already within the size limit comes back as a single identical chunk.
type Splitter struct {
	Size    int
	Overlap int
}

func New(size, overlap int) *Splitter {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
	}
	return &Splitter{Size: size, Overlap: overlap}
}

func Default() *Splitter {
	return New(DefaultChunkSize, DefaultChunkOverlap)
}

// Split returns the chunked text. Whitespace-only input yields no chunks.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.split(text, separators)
}

func (s *Splitter) split(text string, seps []string) []string {
	// Pick the coarsest separator actually present; "" always matches.
	sep := seps[len(seps)-1]
	rest := []string{}
	for i, cand := range seps {
		if cand == "" || strings.Contains(text, cand) {
			sep = cand
			rest = seps[i+1:]
			break
		}
	}

	if sep == "" {
		return s.hardCut(text)
	}

	var chunks []string
	var fitting []string
	for _, piece := range strings.SplitAfter(text, sep) {
		if piece == "" {
			continue
		}
		if utf8.RuneCountInString(piece) <= s.Size {
			fitting = append(fitting, piece)
			continue
		}
		// Oversized piece: flush what fits, then recurse with finer separators.
		chunks = append(chunks, s.merge(fitting)...)
		fitting = nil
		chunks = append(chunks, s.split(piece, rest)...)
	}
	return append(chunks, s.merge(fitting)...)
}

// merge greedily joins adjacent pieces up to the size limit, carrying a tail
// of at most Overlap runes into the next window.
func (s *Splitter) merge(pieces []string) []string {
	var chunks []string
	var window []string
	windowLen := 0

	flush := func() {
		if joined := strings.TrimSpace(strings.Join(window, "")); joined != "" {
			chunks = append(chunks, joined)
		}
	}

	for _, p := range pieces {
		pl := utf8.RuneCountInString(p)
		if windowLen+pl > s.Size && windowLen > 0 {
			flush()
			for len(window) > 0 && (windowLen > s.Overlap || windowLen+pl > s.Size) {
				windowLen -= utf8.RuneCountInString(window[0])
				window = window[1:]
			}
		}
		window = append(window, p)
		windowLen += pl
	}
	flush()
	return chunks
}

func (s *Splitter) hardCut(text string) []string {
	runes := []rune(text)
	step := s.Size - s.Overlap
	if step <= 0 {
		step = s.Size
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + s.Size
		if end > len(runes) {
			end = len(runes)
		}
		if c := strings.TrimSpace(string(runes[start:end])); c != "" {
			chunks = append(chunks, c)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}
