// Package tick provides runners for the reconciliation and cascade passes.
package tick

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
)

// Reconcile runs one today-to-tomorrow pass.
type Reconcile struct {
	Service *app.Service
}

func (n *Reconcile) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not reconcile, no service")
	}
	changed, err := n.Service.Reconcile(ctx)
	if err != nil {
		return err
	}
	report("tomorrow", changed)
	return nil
}

// Tick cascades time blocks. Hour overrides the clock when >= 0.
type Tick struct {
	Service *app.Service
	Hour    int
}

func (n *Tick) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not tick, no service")
	}
	var (
		changed bool
		err     error
	)
	if n.Hour >= 0 {
		changed, err = n.Service.TickAt(ctx, n.Hour)
	} else {
		changed, err = n.Service.Tick(ctx)
	}
	if err != nil {
		return err
	}
	report("time blocks", changed)
	return nil
}

func report(what string, changed bool) {
	if changed {
		_, _ = fmt.Fprintf(color.Output, "%s updated\n", what)
		return
	}
	_, _ = color.New(color.Faint).Fprintf(color.Output, "%s already up to date\n", what)
}
