package scrape

import "unicode"

// Chunking defaults.
const (
	DefaultChunkSize    = 5000
	DefaultChunkOverlap = 0
)

// ChunkMode selects how chunk boundaries are chosen.
type ChunkMode int

const (
	// ChunkNatural moves each cut back to the nearest paragraph, sentence or
	// word boundary before falling back to a hard cut.
	ChunkNatural ChunkMode = iota

	// ChunkHard cuts at exactly Size characters.
	ChunkHard
)

// String returns the mode name.
func (m ChunkMode) String() string {
	switch m {
	case ChunkHard:
		return "hard"
	default:
		return "natural"
	}
}

// ChunkConfig configures text segmentation. It is passed by value to every
// call; there is no package-level splitter.
type ChunkConfig struct {
	// Size is the maximum chunk length in characters.
	Size int `json:"size"`

	// Overlap is the number of characters shared by consecutive chunks.
	Overlap int `json:"overlap"`

	Mode ChunkMode `json:"mode"`

	// FirstChunkOnly keeps only the first chunk of each document and drops
	// the rest. Content beyond the first chunk is lost when this is set.
	FirstChunkOnly bool `json:"firstChunkOnly"`
}

// DefaultChunkConfig returns 5000-character chunks without overlap.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		Size:    DefaultChunkSize,
		Overlap: DefaultChunkOverlap,
		Mode:    ChunkNatural,
	}
}

// Validate returns an error if the configuration cannot produce chunks.
func (c ChunkConfig) Validate() error {
	if c.Size <= 0 {
		return Errorf(EINVALID, "chunk size must be positive, got %d", c.Size)
	}
	if c.Overlap < 0 {
		return Errorf(EINVALID, "chunk overlap must not be negative, got %d", c.Overlap)
	}
	if c.Overlap >= c.Size {
		return Errorf(EINVALID, "chunk overlap (%d) must be less than chunk size (%d)", c.Overlap, c.Size)
	}
	return nil
}

// Apply returns the chunks kept under the truncation policy.
func (c ChunkConfig) Apply(chunks []Chunk) []Chunk {
	if c.FirstChunkOnly && len(chunks) > 1 {
		return chunks[:1]
	}
	return chunks
}

// Chunk is a size-bounded segment of extracted text.
type Chunk struct {
	Index   int    `json:"index"`
	Content string `json:"content"`

	// Start and End are character offsets into the source text.
	Start int `json:"start"`
	End   int `json:"end"`
}

// SplitText segments text into chunks of at most cfg.Size characters.
// Consecutive chunks share exactly cfg.Overlap characters. With no overlap,
// concatenating the chunks reproduces text. Empty text yields no chunks.
func SplitText(text string, cfg ChunkConfig) ([]Chunk, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	var chunks []Chunk
	start := 0
	for {
		end := start + cfg.Size
		if end >= len(runes) {
			end = len(runes)
		} else if cfg.Mode == ChunkNatural {
			end = naturalBreak(runes, start, end, cfg.Overlap)
		}

		chunks = append(chunks, Chunk{
			Index:   len(chunks),
			Content: string(runes[start:end]),
			Start:   start,
			End:     end,
		})

		if end == len(runes) {
			return chunks, nil
		}
		start = end - cfg.Overlap
	}
}

// naturalBreak picks a cut in (lo, end] preferring a paragraph break, then a
// sentence end, then whitespace. The lower bound keeps every chunk longer
// than the overlap so splitting always advances.
func naturalBreak(runes []rune, start, end, overlap int) int {
	lo := start + max(overlap, (end-start)/2)

	for i := end; i > lo; i-- {
		if i >= 2 && runes[i-1] == '\n' && runes[i-2] == '\n' {
			return i
		}
	}

	for i := end; i > lo; i-- {
		if isFullStop(runes[i-1]) {
			return i
		}
		if i >= 2 && unicode.IsSpace(runes[i-1]) && isSentenceEnd(runes[i-2]) {
			return i
		}
	}

	for i := end; i > lo; i-- {
		if unicode.IsSpace(runes[i-1]) || unicode.IsSpace(runes[i]) {
			return i
		}
	}

	return end
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// isFullStop reports sentence terminators that are not followed by a space.
func isFullStop(r rune) bool {
	return r == '。' || r == '！' || r == '？'
}
