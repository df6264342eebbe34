// Package node implements the handlers invoked by the orchestration flow.
// Each handler validates its event input before doing any work.
package node

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/pipeline"
)

// Compile-time interface verification.
var (
	_ scrape.NodeHandler = (*ScrapeHandler)(nil)
	_ scrape.NodeHandler = (*EncodeHandler)(nil)
	_ scrape.NodeHandler = (*DecodeHandler)(nil)
	_ scrape.NodeHandler = (*SearchHandler)(nil)
)

// ScrapeHandler extracts text from a list of links. It returns one string per
// link in input order, empty for any link that failed.
type ScrapeHandler struct {
	Pipeline *pipeline.Pipeline
	Progress scrape.ProgressFunc
}

// Handle runs the pipeline over the links carried by ev.
func (h *ScrapeHandler) Handle(ctx context.Context, ev *scrape.Event) (any, error) {
	links, err := ev.LinksInput()
	if err != nil {
		return nil, err
	}
	result, err := h.Pipeline.Run(ctx, links, h.Progress)
	if err != nil {
		return nil, err
	}
	return result.Contents(), nil
}

// EncodeHandler serializes its input value to a JSON string. Non-ASCII and
// HTML characters are written literally.
type EncodeHandler struct{}

// Handle encodes the value carried by ev.
func (h *EncodeHandler) Handle(_ context.Context, ev *scrape.Event) (any, error) {
	v, err := ev.ValueInput()
	if err != nil {
		return nil, err
	}
	return Encode(v)
}

// Encode returns the compact JSON encoding of v without HTML escaping.
func Encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", scrape.Errorf(scrape.EINVALID, "encode value: %v", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Shape constrains the top-level JSON type accepted by DecodeHandler.
type Shape int

const (
	ShapeAny Shape = iota
	ShapeArray
	ShapeObject
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeObject:
		return "object"
	default:
		return "any"
	}
}

// DecodeHandler parses a JSON string into a value. Malformed JSON or a value
// of the wrong shape fails with EDECODE.
type DecodeHandler struct {
	Shape Shape
}

// Handle decodes the string carried by ev.
func (h *DecodeHandler) Handle(_ context.Context, ev *scrape.Event) (any, error) {
	text, err := ev.TextInput()
	if err != nil {
		return nil, err
	}
	return Decode(text, h.Shape)
}

// Decode parses text as a single JSON value of the given shape.
// Numbers are kept as json.Number.
func Decode(text string, shape Shape) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, scrape.Errorf(scrape.EDECODE, "decode JSON: %v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, scrape.Errorf(scrape.EDECODE, "decode JSON: unexpected data after top-level value")
	}

	switch shape {
	case ShapeArray:
		if _, ok := v.([]any); !ok {
			return nil, scrape.Errorf(scrape.EDECODE, "decode JSON: expected array, got %s", jsonType(v))
		}
	case ShapeObject:
		if _, ok := v.(map[string]any); !ok {
			return nil, scrape.Errorf(scrape.EDECODE, "decode JSON: expected object, got %s", jsonType(v))
		}
	}
	return v, nil
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
