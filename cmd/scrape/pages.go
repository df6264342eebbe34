package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/fs"
)

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	filter := scrape.PageFilter{Offset: c.Offset, Limit: c.Limit}
	if c.RunID != "" {
		filter.RunID = &c.RunID
	}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	pages, err := deps.Pages.FindPages(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrape.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages found. Use 'scrape run --db' to store some.")
		return nil
	}

	for _, p := range pages {
		if !c.Full {
			fmt.Fprintf(deps.Stdout, "%s  %d  %s  %s\n", p.ID, p.Position, p.URL, p.Title)
			continue
		}
		// Listing omits chunks; load them so truncated pages print correctly.
		full, err := deps.Pages.FindPageByID(deps.Ctx, p.ID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrape.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, fs.FormatPage(full))
	}

	return nil
}

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, scrape.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrape.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d/%d saved  %d failed  %d skipped  %s\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Saved, r.Total, r.Failed, r.Skipped, r.Source)
	}

	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return scrape.Errorf(scrape.EINVALID, "use --force to confirm deletion")
	}

	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		if scrape.ErrorCode(err) == scrape.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'scrape runs' to see available runs.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrape.ErrorMessage(err))
		}
		return err
	}

	if err := deps.Runs.DeleteRun(deps.Ctx, run.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrape.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %s (%s)\n", run.ID, run.Source)
	return nil
}
