package fs

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/scrape"
)

// Ensure FileStore implements scrape.PageStore at compile time.
var _ scrape.PageStore = (*FileStore)(nil)

// FileStore implements scrape.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the delivered text of a successful page below the temporary
// directory.
func (s *FileStore) Save(ctx context.Context, page *scrape.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := page.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatPage(page)), 0644)
}

// FormatPage formats a page's delivered text with a front matter header.
func FormatPage(page *scrape.Page) string {
	fetched := page.FetchedAt
	if fetched.IsZero() {
		fetched = time.Now()
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(page.Title)
	if page.RunID != "" {
		b.WriteString("\nrun: ")
		b.WriteString(page.RunID)
	}
	b.WriteString("\nposition: ")
	b.WriteString(strconv.Itoa(page.Position))
	b.WriteString("\nfetched: ")
	b.WriteString(fetched.UTC().Format(time.RFC3339))
	if page.ContentHash != "" {
		b.WriteString("\nhash: ")
		b.WriteString(page.ContentHash)
	}
	if page.Truncated {
		b.WriteString("\ntruncated: true")
	}
	b.WriteString("\n---\n\n")
	b.WriteString(page.Output())
	return b.String()
}

// Commit replaces the output directory with the saved pages.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the saved pages.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
