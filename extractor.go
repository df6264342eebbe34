package scrape

import "strings"

// BlockSeparator separates accepted text blocks in extracted content.
const BlockSeparator = "\n\n"

// ExtractResult holds the text extracted from a fetched page.
type ExtractResult struct {
	// Title is the page title, empty if the page has none.
	Title string

	// Blocks are the accepted text blocks in document order.
	// Whitespace inside each block is collapsed to single spaces.
	Blocks []string

	// Content is Blocks joined with BlockSeparator.
	Content string
}

// NewExtractResult returns an ExtractResult with Content assembled from blocks.
func NewExtractResult(title string, blocks []string) *ExtractResult {
	return &ExtractResult{
		Title:   title,
		Blocks:  blocks,
		Content: strings.Join(blocks, BlockSeparator),
	}
}

// TextBlocks splits plain text into blocks, one per non-blank line, with
// whitespace inside each block collapsed to single spaces.
func TextBlocks(text string) []string {
	var blocks []string
	for line := range strings.Lines(text) {
		if block := strings.Join(strings.Fields(line), " "); block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// Extractor extracts readable text from fetched pages, removing boilerplate.
type Extractor interface {
	// Extract parses the fetched payload and returns its text and title.
	// Malformed markup must not cause an error. Implementations that
	// cannot locate any main content return EDECODE.
	Extract(res *FetchResult) (*ExtractResult, error)
}
