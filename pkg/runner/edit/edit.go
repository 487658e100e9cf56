// Package edit provides runners that change an existing item.
package edit

import (
	"context"
	"errors"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/printers"
)

// Edit replaces the text of an item, or re-files it when Folder is set.
type Edit struct {
	Service *app.Service
	Offset  int
	List    string
	Index   int
	Text    string
	Folder  *string
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}
	var err error
	switch {
	case n.Folder != nil:
		err = n.Service.Move(ctx, n.Offset, n.List, n.Index, *n.Folder)
	case n.Text != "":
		err = n.Service.Edit(ctx, n.Offset, n.List, n.Index, n.Text)
	default:
		err = errors.New("nothing to change")
	}
	if err != nil {
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
