package slog

import (
	"log/slog"

	"github.com/fwojciec/scrape"
)

// NewProgressLogger returns a progress callback that logs each finished
// link. Failed and skipped links are logged at warn level.
func NewProgressLogger(logger *slog.Logger) scrape.ProgressFunc {
	return func(p scrape.Progress) {
		attrs := []any{
			"url", p.URL,
			"completed", p.Completed,
			"total", p.Total,
			"outcome", p.Outcome,
		}
		switch p.Outcome {
		case scrape.OutcomeOK:
			logger.Info("page", attrs...)
		default:
			logger.Warn("page", append(attrs, "err", p.Err)...)
		}
	}
}
