// Package template provides runners for checklist templates.
package template

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/printers"
)

// Save stores the items of List as template Name.
type Save struct {
	Service *app.Service
	Offset  int
	List    string
	Name    string
}

func (n *Save) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not save template, no service")
	}
	count, err := n.Service.SaveTemplate(ctx, n.Offset, n.List, n.Name)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "saved %d items as %q\n", count, n.Name)
	return nil
}

// Apply adds the items of template Name to List.
type Apply struct {
	Service      *app.Service
	Offset       int
	List         string
	Name         string
	PreserveDone bool
}

func (n *Apply) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not apply template, no service")
	}
	if _, err := n.Service.ApplyTemplate(ctx, n.Offset, n.List, n.Name, n.PreserveDone); err != nil {
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

// Delete removes template Name.
type Delete struct {
	Service *app.Service
	Name    string
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete template, no service")
	}
	if err := n.Service.DeleteTemplate(ctx, n.Name); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "deleted %q\n", n.Name)
	return nil
}

// List prints every saved template.
type List struct {
	Service *app.Service
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list templates, no service")
	}
	tpl, err := n.Service.Templates(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.Templates(tpl)
	return nil
}
