package main

import (
	"fmt"

	"github.com/fwojciec/scrape"
)

// Run executes the sitemap command.
func (c *SitemapCmd) Run(deps *Dependencies) error {
	filter, err := scrape.NewURLFilter(c.Include, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrape.ErrorMessage(err))
		return err
	}

	links, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrape.ErrorMessage(err))
		return err
	}
	if c.Limit > 0 && len(links) > c.Limit {
		links = links[:c.Limit]
	}

	if c.Preview {
		for _, u := range links {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	if len(links) == 0 {
		fmt.Fprintf(deps.Stderr, "No URLs found in sitemap for %s\n", c.URL)
		return nil
	}
	fmt.Fprintf(deps.Stderr, "Found %d URLs\n", len(links))

	return extract(deps, c.URL, links, c.Deadline, c.OutputFlags)
}
