package scrape

import (
	"bytes"
	"context"
	"encoding/json"
)

// NodeKind identifies a node of the orchestration flow.
type NodeKind string

// Supported node kinds.
const (
	NodeScrape         NodeKind = "scrape"
	NodeArrayToString  NodeKind = "array2string"
	NodeStringToArray  NodeKind = "string2array"
	NodeStringToObject NodeKind = "string2object"
	NodeSearch         NodeKind = "search"
)

// NodeHandler runs one node of the orchestration flow. The returned value
// is serialized as JSON by the caller.
type NodeHandler interface {
	Handle(ctx context.Context, ev *Event) (any, error)
}

// Event is the envelope the orchestration layer delivers to a node:
//
//	{"node": {"inputs": [{"name": "document", "value": ...}]}}
//
// The typed accessors validate the first input before any node runs.
type Event struct {
	Node EventNode `json:"node"`
}

// EventNode carries the node inputs.
type EventNode struct {
	Inputs []EventInput `json:"inputs"`
}

// EventInput is a single named input value.
type EventInput struct {
	Name  string          `json:"name,omitempty"`
	Value json.RawMessage `json:"value"`
}

// NewEvent returns an event with a single input holding value.
func NewEvent(value any) (*Event, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, Errorf(EINVALID, "encode event value: %v", err)
	}
	return &Event{Node: EventNode{Inputs: []EventInput{{Value: raw}}}}, nil
}

// Value returns the raw first input value.
func (e *Event) Value() (json.RawMessage, error) {
	if e == nil || len(e.Node.Inputs) == 0 {
		return nil, Errorf(EINVALID, "event has no inputs")
	}
	v := e.Node.Inputs[0].Value
	if len(bytes.TrimSpace(v)) == 0 {
		return nil, Errorf(EINVALID, "event input has no value")
	}
	return v, nil
}

// LinksInput returns the list of URLs carried by a scrape node event.
func (e *Event) LinksInput() ([]string, error) {
	v, err := e.Value()
	if err != nil {
		return nil, err
	}
	var links []string
	if err := json.Unmarshal(v, &links); err != nil {
		return nil, Errorf(EINVALID, "scrape input must be a list of URL strings: %v", err)
	}
	if links == nil {
		return nil, Errorf(EINVALID, "scrape input must be a list of URL strings, got null")
	}
	return links, nil
}

// TextInput returns the string carried by a decode or search node event.
func (e *Event) TextInput() (string, error) {
	v, err := e.Value()
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", Errorf(EINVALID, "input must be a string: %v", err)
	}
	return s, nil
}

// ValueInput returns the arbitrary value carried by an encode node event.
// Numbers are kept as json.Number so they re-encode unchanged.
func (e *Event) ValueInput() (any, error) {
	v, err := e.Value()
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, Errorf(EINVALID, "input is not valid JSON: %v", err)
	}
	return out, nil
}
