// Package watch follows the store and reprints the day whenever it changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/store"
)

type Watch struct {
	Service *app.Service
	Quiet   time.Duration
	// Tick is how often elapsed time blocks are cascaded. Zero disables it.
	Tick time.Duration
	// List limits output to one list.
	List string

	Out io.Writer
}

func (w *Watch) out() io.Writer {
	if w.Out == nil {
		return color.Output
	}
	return w.Out
}

func (w *Watch) Do(ctx context.Context) error {
	if w.Service == nil {
		return errors.New("can not watch, no service")
	}
	ss, err := w.Service.Open(ctx, w.Quiet)
	if err != nil {
		return err
	}
	events, err := w.Service.Watch(ctx)
	if err != nil {
		_ = ss.Close()
		return err
	}

	var ticks <-chan time.Time
	if w.Tick > 0 {
		ticker := time.NewTicker(w.Tick)
		defer ticker.Stop()
		ticks = ticker.C
	}

	ss.Tick()
	w.print(ss)
	for {
		select {
		case <-ctx.Done():
			return ss.Close()
		case ev, ok := <-events:
			if !ok {
				return ss.Close()
			}
			if !w.relevant(ss, ev) {
				continue
			}
			if err := ss.Reload(ctx); err != nil {
				fmt.Fprintf(w.out(), "watch: reload: %v\n", err)
				continue
			}
			w.print(ss)
		case <-ticks:
			if ss.Tick() {
				w.print(ss)
			}
		}
	}
}

// relevant reports whether ev touches the records the session holds.
func (w *Watch) relevant(ss *app.Session, ev store.Event) bool {
	switch ev.Type {
	case store.EventDayChanged:
		return ev.Date == ss.Today().Date || ev.Date == ss.Tomorrow().Date
	case store.EventMetaChanged:
		return ev.Key == store.AnchorKey
	default:
		return true
	}
}

func (w *Watch) print(ss *app.Session) {
	rec := ss.Today()
	pp := printers.PrettyPrint{
		Out:       w.out(),
		ShowIndex: true,
		Blocks:    w.Service.Chain(),
		Hour:      w.Service.Hour(rec.Date),
	}
	pp.Title(rec.Date)
	if w.List != "" {
		pp.List(rec, w.List)
		return
	}
	pp.Day(rec)
}
