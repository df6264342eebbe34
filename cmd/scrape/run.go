package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/fs"
	"github.com/fwojciec/scrape/node"
	"github.com/fwojciec/scrape/pipeline"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	return extract(deps, "links", c.URLs, c.Deadline, c.OutputFlags)
}

// extract runs the pipeline over links, records the run and its pages when
// storage is configured, and prints the result.
func extract(deps *Dependencies, source string, links []string, deadline time.Duration, out OutputFlags) error {
	var run *scrape.Run
	if deps.Runs != nil {
		run = &scrape.Run{Source: source, Total: len(links)}
		if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrape.ErrorMessage(err))
			return err
		}
		deps.Pipeline.RunID = run.ID
	}

	ctx := deps.Ctx
	if deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}

	result, err := deps.Pipeline.Run(ctx, links, deps.Progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrape.ErrorMessage(err))
		return err
	}

	saved, saveErr := save(deps, result)
	if saveErr != nil {
		fmt.Fprintf(deps.Stderr, "error saving pages: %s\n", scrape.ErrorMessage(saveErr))
	}

	if run != nil {
		upd := scrape.RunUpdate{
			Saved:   saved,
			Failed:  result.Failed,
			Skipped: result.Skipped,
		}
		if _, err := deps.Runs.FinishRun(deps.Ctx, run.ID, upd); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrape.ErrorMessage(err))
			return err
		}
	}
	if saveErr != nil {
		return saveErr
	}

	if err := printResult(deps, result, out.JSON); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stderr, "Extracted %d of %d pages (%d failed, %d skipped)\n",
		len(result.OK()), len(links), result.Failed, result.Skipped)
	if run != nil {
		fmt.Fprintf(deps.Stderr, "Run %s\n", run.ID)
	}
	return nil
}

// save writes successful pages to the configured sinks and returns how many
// were recorded in the page service. The directory store is committed only if
// every page was written and is aborted on any failure.
func save(deps *Dependencies, result *pipeline.Result) (int, error) {
	saved := 0
	fail := func(err error) (int, error) {
		if deps.Store != nil {
			_ = deps.Store.Abort()
		}
		return saved, err
	}

	for _, page := range result.OK() {
		if deps.Pages != nil {
			if err := deps.Pages.CreatePage(deps.Ctx, page); err != nil {
				return fail(err)
			}
		}
		saved++
		if deps.Store != nil {
			if err := deps.Store.Save(deps.Ctx, page); err != nil {
				return fail(err)
			}
		}
	}
	if deps.Store != nil {
		return saved, deps.Store.Commit()
	}
	return saved, nil
}

func printResult(deps *Dependencies, result *pipeline.Result, asJSON bool) error {
	if asJSON {
		s, err := node.Encode(result.Contents())
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, s)
		return nil
	}

	for _, page := range result.OK() {
		fmt.Fprintln(deps.Stdout, fs.FormatPage(page))
	}
	return nil
}
