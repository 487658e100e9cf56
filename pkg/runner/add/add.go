// Package add provides the runner for adding items to a day's lists.
package add

import (
	"context"
	"errors"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/printers"
)

// Add parses Input and applies it to List on the day Offset days from the
// anchor.
type Add struct {
	Service *app.Service
	Offset  int
	List    string
	Input   string
	// Bullets adds to a plain bullet list instead of a checklist.
	Bullets bool
}

// Do applies the input and reprints the list.
func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	add := n.Service.Add
	if n.Bullets {
		add = n.Service.AddBullets
	}
	if _, err := add(ctx, n.Offset, n.List, n.Input); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowIndex: true, Blocks: n.Service.Chain(), Hour: -1}
	pp.NewLine()
	if n.List == app.NotesList {
		notes, err := n.Service.Notes(ctx)
		if err != nil {
			return err
		}
		pp.Notes(notes)
		return nil
	}
	rec, err := n.Service.Day(ctx, n.Offset)
	if err != nil {
		return err
	}
	pp.List(rec, n.List)
	return nil
}
