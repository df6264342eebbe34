// Package fs provides file-based storage for extracted pages.
package fs

import (
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/fwojciec/scrape"
)

// URLToPath converts a page URL to a relative file path under its host.
// Example: https://example.com/docs/api/users → example.com/docs/api/users.txt
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", scrape.Errorf(scrape.EINVALID, "invalid page URL %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", scrape.Errorf(scrape.EINVALID, "page URL %q has no host", rawURL)
	}
	if slices.Contains(strings.Split(u.Path, "/"), "..") {
		return "", scrape.Errorf(scrape.EINVALID, "path traversal in page URL %q", rawURL)
	}

	host := strings.ReplaceAll(strings.ToLower(u.Host), ":", "_")
	p := strings.TrimPrefix(u.Path, "/")

	// Root or trailing slash → index.txt
	if p == "" || strings.HasSuffix(p, "/") {
		return path.Join(host, p, "index.txt"), nil
	}
	return path.Join(host, p) + ".txt", nil
}
