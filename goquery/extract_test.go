package goquery_test

import (
	"testing"

	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements scrape.Extractor at compile time.
var _ scrape.Extractor = (*goquery.Extractor)(nil)

func extract(t *testing.T, html string) *scrape.ExtractResult {
	t.Helper()
	res, err := goquery.NewExtractor().Extract(&scrape.FetchResult{
		StatusCode: 200,
		Charset:    "utf-8",
		Body:       []byte(html),
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("drops navigation and keeps paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<nav class="nav"><li>Home</li></nav><p>This is a real paragraph with enough words to pass the filter.</p>`

		res := extract(t, html)

		assert.Equal(t, "This is a real paragraph with enough words to pass the filter.", res.Content)
		assert.NotContains(t, res.Content, "Home")
	})

	t.Run("skips elements with fewer than three words", func(t *testing.T) {
		t.Parallel()

		html := `<p>Click here</p><p>Three words here</p><span>OK</span>`

		res := extract(t, html)

		assert.Equal(t, []string{"Three words here"}, res.Blocks)
	})

	t.Run("skips children of noise parents", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<ul class="menu main"><li>Products and services overview</li></ul>
<aside class="sidebar"><p>Related articles you may like</p></aside>
<footer class="footer"><span>Copyright 2024 Example Corp</span></footer>
<div class="navigation"><p>Not a noise class exactly</p></div>
</body>`

		res := extract(t, html)

		assert.NotContains(t, res.Content, "Products and services")
		assert.NotContains(t, res.Content, "Related articles")
		assert.NotContains(t, res.Content, "Copyright")
		assert.Contains(t, res.Content, "Not a noise class exactly")
	})

	t.Run("never includes script or style text", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><style>p { color: red; font-size: 12px; }</style></head>
<body><div><script>var tracking = "do not include this";</script>
<p>Visible paragraph text stays.</p></div></body></html>`

		res := extract(t, html)

		assert.NotContains(t, res.Content, "tracking")
		assert.NotContains(t, res.Content, "color")
		assert.Contains(t, res.Content, "Visible paragraph text stays.")
	})

	t.Run("collapses whitespace inside blocks", func(t *testing.T) {
		t.Parallel()

		html := "<p>  Lots   of\n\n\tspace between   words  </p>"

		res := extract(t, html)

		assert.Equal(t, "Lots of space between words", res.Content)
	})

	t.Run("keeps document order across tags", func(t *testing.T) {
		t.Parallel()

		html := `<h2>Second level heading first</h2>
<p>Paragraph after the heading.</p>
<h1>Top level heading later</h1>
<ul><li>List item with words</li></ul>`

		res := extract(t, html)

		assert.Equal(t, []string{
			"Second level heading first",
			"Paragraph after the heading.",
			"Top level heading later",
			"List item with words",
		}, res.Blocks)
		assert.Equal(t, "Second level heading first\n\nParagraph after the heading.\n\nTop level heading later\n\nList item with words", res.Content)
	})

	t.Run("nested candidates each contribute a block", func(t *testing.T) {
		t.Parallel()

		html := `<div><p>Nested paragraph text here</p></div>`

		res := extract(t, html)

		assert.Equal(t, []string{"Nested paragraph text here", "Nested paragraph text here"}, res.Blocks)
	})

	t.Run("is deterministic across runs", func(t *testing.T) {
		t.Parallel()

		html := `<div class="content"><p>First paragraph of text.</p><p>Click here</p><li>Another item with words</li></div>`

		first := extract(t, html)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, extract(t, html))
		}
	})

	t.Run("extracts title", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>  Getting Started  </title></head><body><p>Body text with words.</p></body></html>`

		res := extract(t, html)

		assert.Equal(t, "Getting Started", res.Title)
	})

	t.Run("returns empty title when missing", func(t *testing.T) {
		t.Parallel()

		res := extract(t, `<p>No title on this page.</p>`)

		assert.Empty(t, res.Title)
	})

	t.Run("tolerates malformed markup", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div><p>Unclosed paragraph with words<li>Dangling list item here</div></span></body`

		res := extract(t, html)

		assert.Contains(t, res.Content, "Unclosed paragraph with words")
		assert.Contains(t, res.Content, "Dangling list item here")
	})

	t.Run("returns empty result for empty body", func(t *testing.T) {
		t.Parallel()

		res := extract(t, "")

		assert.Empty(t, res.Title)
		assert.Empty(t, res.Content)
		assert.Empty(t, res.Blocks)
	})

	t.Run("returns empty result for nil fetch result", func(t *testing.T) {
		t.Parallel()

		res, err := goquery.NewExtractor().Extract(nil)

		require.NoError(t, err)
		assert.Empty(t, res.Content)
	})
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("decodes declared charset", func(t *testing.T) {
		t.Parallel()

		body := []byte("<html><head><title>Caf\xe9</title></head><body><p>Un caf\xe9 tr\xe8s bon ici</p></body></html>")

		doc := goquery.Parse(body, "windows-1252")

		assert.Equal(t, "Café", goquery.ExtractTitle(doc))
		assert.Equal(t, "Un café très bon ici", goquery.ExtractContent(doc))
	})

	t.Run("ignores unknown charset label", func(t *testing.T) {
		t.Parallel()

		doc := goquery.Parse([]byte("<p>Plain ascii text here</p>"), "x-unknown")

		assert.Equal(t, "Plain ascii text here", goquery.ExtractContent(doc))
	})

	t.Run("removes script and style elements", func(t *testing.T) {
		t.Parallel()

		doc := goquery.Parse([]byte("<script>alert(1)</script><style>.a{}</style><p>x</p>"), "")

		assert.Equal(t, 0, doc.Find("script, style").Length())
	})
}
