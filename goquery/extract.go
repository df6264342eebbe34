// Package goquery implements page parsing and text extraction with goquery.
package goquery

import (
	"bytes"
	"io"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scrape"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// candidateSelector lists the text-bearing tags considered for content.
// goquery returns matches in document order, not grouped by tag.
const candidateSelector = "h1, h2, h3, h4, h5, p, li, div, span"

// MinWords is the minimum number of words a block needs to be kept.
// Shorter text is usually a button, link or label.
const MinWords = 3

// noiseClasses marks parents whose children are navigation or chrome.
var noiseClasses = []string{"nav", "menu", "sidebar", "footer"}

// Ensure Extractor implements scrape.Extractor at compile time.
var _ scrape.Extractor = (*Extractor)(nil)

// Extractor extracts text blocks and the title with a fixed heuristic:
// candidate elements are kept unless empty, shorter than MinWords or
// children of a navigation-like parent.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the payload and returns its title and content blocks.
// It never returns an error; unparseable input yields an empty result.
func (e *Extractor) Extract(res *scrape.FetchResult) (*scrape.ExtractResult, error) {
	if res == nil {
		return scrape.NewExtractResult("", nil), nil
	}
	doc := Parse(res.Body, res.Charset)
	return scrape.NewExtractResult(ExtractTitle(doc), ExtractBlocks(doc)), nil
}

// Parse builds a document from a raw payload, decoding it from charsetLabel
// when it is not UTF-8. Script and style subtrees are removed before the
// document is returned. Parse never fails: unreadable input yields an
// empty document.
func Parse(body []byte, charsetLabel string) *goquery.Document {
	var r io.Reader = bytes.NewReader(body)
	if charsetLabel != "" && !isUTF8(charsetLabel) {
		if decoded, err := charset.NewReaderLabel(charsetLabel, r); err == nil {
			r = decoded
		}
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return emptyDocument()
	}

	doc.Find("script, style").Remove()
	return doc
}

// ExtractBlocks returns the accepted text of every candidate element, in
// document order, with whitespace collapsed to single spaces. Nested
// candidates each contribute their own block.
func ExtractBlocks(doc *goquery.Document) []string {
	var blocks []string
	doc.Find(candidateSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}

		words := strings.Fields(text)
		if len(words) < MinWords {
			return
		}

		if hasNoiseClass(sel.Parent()) {
			return
		}

		blocks = append(blocks, strings.Join(words, " "))
	})
	return blocks
}

// ExtractContent returns the accepted blocks joined with scrape.BlockSeparator.
func ExtractContent(doc *goquery.Document) string {
	return strings.Join(ExtractBlocks(doc), scrape.BlockSeparator)
}

// ExtractTitle returns the trimmed text of the first title element, or an
// empty string if there is none.
func ExtractTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// hasNoiseClass reports whether sel carries any of the noise classes.
func hasNoiseClass(sel *goquery.Selection) bool {
	class, ok := sel.Attr("class")
	if !ok {
		return false
	}
	return slices.ContainsFunc(strings.Fields(class), func(c string) bool {
		return slices.Contains(noiseClasses, c)
	})
}

func isUTF8(label string) bool {
	return strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8")
}

func emptyDocument() *goquery.Document {
	return goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
}
