// Package strike provides runners that take items off a list.
package strike

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/printers"
)

// Strike removes one item.
type Strike struct {
	Service *app.Service
	Offset  int
	List    string
	Index   int
}

func (n *Strike) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not strike, no service")
	}
	if err := n.Service.Remove(ctx, n.Offset, n.List, n.Index); err != nil {
		return err
	}
	return reprint(ctx, n.Service, n.Offset, n.List)
}

// Clear archives every done item of a list.
type Clear struct {
	Service *app.Service
	Offset  int
	List    string
}

func (n *Clear) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not clear, no service")
	}
	cleared, err := n.Service.Clear(ctx, n.Offset, n.List)
	if err != nil {
		return err
	}
	_, _ = color.New(color.Faint).Fprintf(color.Output, "cleared %d\n", cleared)
	return reprint(ctx, n.Service, n.Offset, n.List)
}

func reprint(ctx context.Context, svc *app.Service, offset int, key string) error {
	rec, err := svc.Day(ctx, offset)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowIndex: true, Blocks: svc.Chain(), Hour: -1}
	_, _ = fmt.Fprintln(color.Output, "")
	pp.List(rec, key)
	return nil
}
