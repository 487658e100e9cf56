package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/day"
)

// Report prints finished items grouped by date.
func (pp *PrettyPrint) Report(res app.ReportResult) {
	w := pp.out()
	pp.Title(fmt.Sprintf("Done %s .. %s", res.Since, res.Until))
	if res.Total == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	for _, sec := range res.Sections {
		_, _ = bold.Fprintln(w, sec.Date)
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.MaxColWidth = uint(pp.width() - 20)
		tbl.Wrap = true
		for _, it := range sec.Items {
			note := ""
			if it.Cleared {
				note = faint.Sprint("cleared")
			}
			tbl.AddRow("  "+it.List, it.Text, note)
		}
		_, _ = fmt.Fprintln(w, tbl)
	}
	_, _ = faint.Fprintf(w, "%d done\n", res.Total)
}

// Calendar prints one month per month covered by res, bold on days with
// finished items.
func (pp *PrettyPrint) Calendar(res app.ReportResult) {
	since, err := day.Parse(res.Since)
	if err != nil {
		return
	}
	until, err := day.Parse(res.Until)
	if err != nil {
		return
	}
	counts := map[string]int{}
	for _, sec := range res.Sections {
		counts[sec.Date] += len(sec.Items)
	}

	then := time.Date(since.Year(), since.Month(), 1, 1, 0, 0, 0, time.Local)
	for !then.After(until) {
		count := make([]int, DaysIn(then))
		for i := range count {
			count[i] = counts[day.ID(then.AddDate(0, 0, i))]
		}
		pp.PrintMonthCount(then, count)
		then = NextMonth(then)
	}
}

const width = len("11 12 13 14 15 16 17") // an example week

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	w := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	days := DaysIn(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(w, "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(w, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(w, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
