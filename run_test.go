package scrape_test

import (
	"testing"

	"github.com/fwojciec/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a consistent run", func(t *testing.T) {
		t.Parallel()

		run := &scrape.Run{Source: "links", Total: 3, Saved: 1, Failed: 1, Skipped: 1}

		require.NoError(t, run.Validate())
	})

	t.Run("rejects invalid runs", func(t *testing.T) {
		t.Parallel()

		for _, run := range []*scrape.Run{
			{Total: 1},
			{Source: "links", Total: -1},
			{Source: "links", Total: 1, Saved: 1, Failed: 1},
		} {
			assert.Equal(t, scrape.EINVALID, scrape.ErrorCode(run.Validate()))
		}
	})
}
