// Package endday provides the runner for the end-of-day transition.
package endday

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/planner/pkg/app"
)

type EndDay struct {
	Service *app.Service
}

func (n *EndDay) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not end day, no service")
	}
	t, err := n.Service.EndDay(ctx)
	if err != nil {
		return err
	}

	w := color.Output
	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(w, "\nEnded %s, today is now %s\n\n", t.From, t.To)

	keys := make([]string, 0, len(t.Carried))
	for k := range t.Carried {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold.Sprint("List"), bold.Sprint("Carried"), bold.Sprint("New"))
		for _, k := range keys {
			tbl.AddRow(k, t.Carried[k], t.Merged[k])
		}
		tbl.RightAlign(1)
		tbl.RightAlign(2)
		_, _ = fmt.Fprintln(w, tbl)
	}
	for _, path := range t.Archives {
		_, _ = color.New(color.Faint).Fprintf(w, "archived to %s\n", path)
	}
	return nil
}
