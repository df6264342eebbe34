package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/node"
	"github.com/fwojciec/scrape/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Pipeline *pipeline.Pipeline
	Progress scrape.ProgressFunc
	Sitemaps scrape.SitemapService
	Runs     scrape.RunService
	Pages    scrape.PageService
	Store    scrape.PageStore
	Nodes    *node.Registry
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable debug logging"`
	DB      string `name:"db" env:"SCRAPE_DB" help:"SQLite database for runs and pages"`

	Run     RunCmd     `cmd:"" help:"Extract text from the given links"`
	Sitemap SitemapCmd `cmd:"" help:"Discover links from a sitemap and extract them"`
	Node    NodeCmd    `cmd:"" help:"Run a single flow node on an event read from stdin"`
	Pages   PagesCmd   `cmd:"" help:"List stored pages"`
	Runs    RunsCmd    `cmd:"" help:"List stored runs"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a run and its pages"`
}

// PipelineFlags configure fetching, extraction and chunking.
type PipelineFlags struct {
	ChunkSize      int           `name:"chunk-size" env:"SCRAPE_CHUNK_SIZE" default:"5000" help:"Maximum chunk length in characters"`
	Overlap        int           `env:"SCRAPE_CHUNK_OVERLAP" default:"0" help:"Characters shared by consecutive chunks"`
	HardSplit      bool          `name:"hard-split" help:"Cut chunks at exactly chunk-size characters"`
	FirstChunkOnly bool          `name:"first-chunk-only" env:"SCRAPE_FIRST_CHUNK_ONLY" help:"Keep only the first chunk of each page"`
	Concurrency    int           `short:"c" env:"SCRAPE_CONCURRENCY" default:"5" help:"Concurrent fetch limit"`
	Timeout        time.Duration `short:"t" default:"4s" help:"Per-request timeout"`
	Deadline       time.Duration `default:"0s" help:"Overall deadline for the run (0 for none)"`
	Extractor      string        `enum:"heuristic,trafilatura,readability" default:"heuristic" help:"Content extractor (heuristic, trafilatura, readability)"`
	RPS            float64       `name:"rps" default:"0" help:"Requests per second per host (0 for unlimited)"`
}

// ChunkConfig returns the chunking configuration selected by the flags.
func (f PipelineFlags) ChunkConfig() scrape.ChunkConfig {
	cfg := scrape.ChunkConfig{
		Size:           f.ChunkSize,
		Overlap:        f.Overlap,
		Mode:           scrape.ChunkNatural,
		FirstChunkOnly: f.FirstChunkOnly,
	}
	if f.HardSplit {
		cfg.Mode = scrape.ChunkHard
	}
	return cfg
}

// OutputFlags select where extracted pages go.
type OutputFlags struct {
	JSON bool   `help:"Print the node output as a JSON array of strings"`
	Out  string `help:"Directory to write pages to, replaced atomically"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URLs []string `arg:"" name:"url" help:"Links to extract"`

	PipelineFlags `embed:""`
	OutputFlags   `embed:""`
}

// SitemapCmd is the "sitemap" subcommand.
type SitemapCmd struct {
	URL     string   `arg:"" help:"Site or sitemap URL"`
	Include []string `short:"i" help:"Keep only URLs matching regex (repeatable)"`
	Exclude []string `short:"x" help:"Drop URLs matching regex (repeatable)"`
	Limit   int      `default:"0" help:"Maximum number of links to extract (0 for all)"`
	Preview bool     `short:"p" help:"Print discovered URLs without extracting"`

	PipelineFlags `embed:""`
	OutputFlags   `embed:""`
}

// NodeCmd is the "node" subcommand.
type NodeCmd struct {
	Kind string `arg:"" enum:"scrape,array2string,string2array,string2object,search" help:"Node kind (scrape, array2string, string2array, string2object, search)"`

	PipelineFlags `embed:""`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	RunID  string `name:"run" help:"Only pages from this run"`
	URL    string `name:"url" help:"Only pages with this URL"`
	Limit  int    `default:"50" help:"Maximum number of pages"`
	Offset int    `help:"Number of pages to skip"`
	Full   bool   `help:"Show full page content"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `default:"20" help:"Maximum number of runs"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Run ID"`
	Force bool   `help:"Confirm deletion"`
}
