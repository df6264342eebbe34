package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/fs"
	"github.com/fwojciec/scrape/goquery"
	scrapehttp "github.com/fwojciec/scrape/http"
	"github.com/fwojciec/scrape/node"
	"github.com/fwojciec/scrape/pipeline"
	"github.com/fwojciec/scrape/readability"
	scrapeslog "github.com/fwojciec/scrape/slog"
	"github.com/fwojciec/scrape/sqlite"
	"github.com/fwojciec/scrape/ssm"
	"github.com/fwojciec/scrape/tavily"
	"github.com/fwojciec/scrape/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher used by the pipeline. Closed by Close.
	Fetcher scrape.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Getenv: os.Getenv,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		_ = m.Fetcher.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("scrape"),
		kong.Description("Extract readable text from web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'scrape --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	defer m.Close()

	// Storage is always needed for listing, and only on request for extraction.
	switch cmd {
	case "pages", "runs", "delete":
		if err := m.openDB(cli.DB, stderr, deps); err != nil {
			return err
		}
	case "run", "sitemap":
		if cli.DB != "" {
			if err := m.openDB(cli.DB, stderr, deps); err != nil {
				return err
			}
		}
	}

	switch cmd {
	case "run":
		if err := m.wirePipeline(cli.Run.PipelineFlags, deps); err != nil {
			return err
		}
		deps.Store = newFileStore(cli.Run.Out)
	case "sitemap":
		if err := m.wirePipeline(cli.Sitemap.PipelineFlags, deps); err != nil {
			return err
		}
		deps.Store = newFileStore(cli.Sitemap.Out)
		deps.Sitemaps = scrapeslog.NewLoggingSitemapService(scrapehttp.NewSitemapService(nil), deps.Logger)
	case "node":
		if err := m.wirePipeline(cli.Node.PipelineFlags, deps); err != nil {
			return err
		}
		deps.Nodes = m.newRegistry(deps)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(path string, stderr io.Writer, deps *Dependencies) error {
	if path == "" {
		path = m.DBPath
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SCRAPE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	deps.Runs = sqlite.NewRunService(m.DB)
	deps.Pages = sqlite.NewPageService(m.DB)
	return nil
}

// wirePipeline builds the fetch and extract pipeline selected by flags.
func (m *Main) wirePipeline(flags PipelineFlags, deps *Dependencies) error {
	extractor, err := newExtractor(flags.Extractor)
	if err != nil {
		return err
	}

	m.Fetcher = scrapeslog.NewLoggingFetcher(scrapehttp.NewFetcher(scrapehttp.WithTimeout(flags.Timeout)), deps.Logger)

	p := &pipeline.Pipeline{
		Fetcher:     m.Fetcher,
		Extractor:   scrapeslog.NewLoggingExtractor(extractor, deps.Logger),
		Chunking:    flags.ChunkConfig(),
		Concurrency: flags.Concurrency,
	}
	if flags.RPS > 0 {
		p.RateLimiter = pipeline.NewDomainLimiter(flags.RPS)
	}

	deps.Pipeline = p
	deps.Progress = scrapeslog.NewProgressLogger(deps.Logger)
	return nil
}

// newRegistry registers every node kind, each wrapped with logging. The
// search node reads its API key through the parameters extension using the
// session token from the environment.
func (m *Main) newRegistry(deps *Dependencies) *node.Registry {
	params := ssm.NewParameterStore(m.Getenv("AWS_SESSION_TOKEN"))
	search := &node.SearchHandler{
		Client:        scrapeslog.NewLoggingSearchClient(tavily.NewClient(), deps.Logger),
		Parameters:    scrapeslog.NewLoggingParameterStore(params, deps.Logger),
		ParameterName: m.Getenv("TAVILY_API_PARAMETER_NAME"),
	}
	scraper := &node.ScrapeHandler{Pipeline: deps.Pipeline, Progress: deps.Progress}

	registry := node.NewDefaultRegistry(scraper, search)
	for _, kind := range registry.List() {
		h, _ := registry.Get(kind)
		registry.Register(kind, scrapeslog.NewLoggingNodeHandler(kind, h, deps.Logger))
	}
	return registry
}

func newExtractor(name string) (scrape.Extractor, error) {
	switch name {
	case "", "heuristic":
		return goquery.NewExtractor(), nil
	case "trafilatura":
		return trafilatura.NewExtractor(), nil
	case "readability":
		return readability.NewExtractor(), nil
	default:
		return nil, scrape.Errorf(scrape.EINVALID, "unknown extractor %q", name)
	}
}

// newFileStore returns nil when no output directory is set.
func newFileStore(out string) scrape.PageStore {
	if out == "" {
		return nil
	}
	out = filepath.Clean(out)
	return fs.NewFileStore(filepath.Dir(out), filepath.Base(out))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "scrape.db"
	}
	dir := filepath.Join(home, ".scrape")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "scrape.db")
}
