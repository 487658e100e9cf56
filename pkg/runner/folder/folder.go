// Package folder provides runners for folder headers and block collapse.
package folder

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/folder"
	"tableflip.dev/planner/pkg/printers"
)

// Delete removes a folder, moving its items to Unfiled.
type Delete struct {
	Service *app.Service
	Offset  int
	List    string
	Folder  string
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete folder, no service")
	}
	changed, err := n.Service.DeleteFolder(ctx, n.Offset, n.List, n.Folder)
	if err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("folder %q not deleted", folder.DisplayName(folder.Normalize(n.Folder)))
	}
	return show(ctx, n.Service, n.Offset, n.List)
}

// Collapse folds or unfolds a time block.
type Collapse struct {
	Service *app.Service
	Offset  int
	Block   string
	On      bool
}

func (n *Collapse) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not collapse, no service")
	}
	if err := n.Service.Collapse(ctx, n.Offset, n.Block, n.On); err != nil {
		return err
	}
	return show(ctx, n.Service, n.Offset, n.Block)
}

func show(ctx context.Context, svc *app.Service, offset int, key string) error {
	rec, err := svc.Day(ctx, offset)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowIndex: true, Blocks: svc.Chain(), Hour: -1}
	pp.NewLine()
	pp.List(rec, key)
	return nil
}
