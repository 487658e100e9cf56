// Package complete provides the runner logic for checking and unchecking
// items.
package complete

import (
	"context"
	"errors"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/printers"
)

// Complete sets the done state of one item.
type Complete struct {
	Service *app.Service
	Offset  int
	List    string
	Index   int
	Done    bool
}

// Do executes the completion operation for the configured item.
func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no service")
	}
	if err := n.Service.Check(ctx, n.Offset, n.List, n.Index, n.Done); err != nil {
		return err
	}

	rec, err := n.Service.Day(ctx, n.Offset)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowIndex: true, Blocks: n.Service.Chain(), Hour: -1}
	pp.NewLine()
	pp.List(rec, n.List)
	return nil
}
