// Package report provides the runner that lists finished work.
package report

import (
	"context"
	"errors"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/timeutil"
)

type Report struct {
	Service *app.Service
	// Since and Until default to Last days up to the anchor.
	Since    string
	Until    string
	Last     string
	Calendar bool
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	until := n.Until
	if until == "" {
		var err error
		if until, err = n.Service.Anchor(ctx); err != nil {
			return err
		}
	}
	since := n.Since
	if since == "" {
		days, _, err := timeutil.ParseDays(n.Last)
		if err != nil {
			return err
		}
		since = day.Add(until, 1-days)
	}

	res, err := n.Service.Report(ctx, since, until)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.NewLine()
	if n.Calendar {
		pp.Calendar(res)
		return nil
	}
	pp.Report(res)
	return nil
}
