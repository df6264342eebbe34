package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/mock"
	scrapeslog "github.com/fwojciec/scrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingNodeHandler_Handle(t *testing.T) {
	t.Parallel()

	t.Run("logs kind and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.NodeHandler{
			HandleFn: func(ctx context.Context, ev *scrape.Event) (any, error) {
				return "ok", nil
			},
		}

		h := scrapeslog.NewLoggingNodeHandler(scrape.NodeArrayToString, inner, logger)
		out, err := h.Handle(context.Background(), &scrape.Event{})

		require.NoError(t, err)
		assert.Equal(t, "ok", out)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "kind=array2string")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs failure with error code", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.NodeHandler{
			HandleFn: func(ctx context.Context, ev *scrape.Event) (any, error) {
				return nil, scrape.Errorf(scrape.EDECODE, "bad json")
			},
		}

		h := scrapeslog.NewLoggingNodeHandler(scrape.NodeStringToArray, inner, logger)
		_, err := h.Handle(context.Background(), &scrape.Event{})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, "kind=string2array")
		assert.Contains(t, output, "code=decode")
		assert.Contains(t, output, "bad json")
	})
}
