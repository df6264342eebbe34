package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/scrape"
	"github.com/fwojciec/scrape/node"
)

// Run executes the node command. The event is read from stdin and the node
// output is written to stdout as JSON. A positive deadline bounds the whole
// node invocation.
func (c *NodeCmd) Run(deps *Dependencies) error {
	var ev scrape.Event
	if err := json.NewDecoder(deps.Stdin).Decode(&ev); err != nil {
		err = scrape.Errorf(scrape.EINVALID, "read event: %v", err)
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrape.ErrorMessage(err))
		return err
	}

	ctx := deps.Ctx
	if c.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Deadline)
		defer cancel()
	}

	out, err := deps.Nodes.Handle(ctx, scrape.NodeKind(c.Kind), &ev)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s: %s\n", scrape.ErrorCode(err), scrape.ErrorMessage(err))
		return err
	}

	s, err := node.Encode(out)
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, s)
	return nil
}
