// Package smoke provides the runner for the per-list smoke flag.
package smoke

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
)

// Smoke flags a list and reports the day's counter.
type Smoke struct {
	Service *app.Service
	Offset  int
	List    string
	On      bool
}

func (n *Smoke) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not smoke, no service")
	}
	count, err := n.Service.Smoke(ctx, n.Offset, n.List, n.On)
	if err != nil {
		return err
	}
	b := color.New(color.Bold)
	_, _ = fmt.Fprint(color.Output, "smokes today: ")
	_, _ = b.Fprintln(color.Output, count)
	return nil
}
