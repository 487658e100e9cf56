// Package get provides the runner that prints a day.
package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/printers"
)

type Get struct {
	Service *app.Service
	Offset  int
	// List limits output to one list; empty prints the whole day.
	List      string
	ShowIndex bool
	JSON      bool
	Width     int
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	rec, err := n.Service.Day(ctx, n.Offset)
	if err != nil {
		return err
	}
	notes, err := n.Service.Notes(ctx)
	if err != nil {
		return err
	}

	if n.JSON {
		return n.json(rec, notes)
	}

	hour := -1
	if n.Offset == 0 {
		hour = n.Service.Hour(rec.Date)
	}
	pp := printers.PrettyPrint{ShowIndex: n.ShowIndex, Width: n.Width, Blocks: n.Service.Chain(), Hour: hour}
	pp.NewLine()
	switch n.List {
	case "":
		pp.Day(rec)
		pp.Notes(notes)
	case app.NotesList:
		pp.Notes(notes)
	default:
		pp.List(rec, n.List)
	}
	return nil
}

func (n *Get) json(rec *day.Record, notes []day.Item) error {
	var v interface{} = rec
	switch n.List {
	case "":
	case app.NotesList:
		v = notes
	default:
		v = rec.Lists[n.List]
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}
