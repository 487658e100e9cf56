package printers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/planner/pkg/blocks"
	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/folder"
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// ShowIndex prefixes items with the index commands address them by.
	ShowIndex bool
	// Width wraps long item text. Zero means 80.
	Width  int
	Blocks blocks.Chain
	// Hour highlights the open time block; -1 disables it.
	Hour int
}

const indexWidth = len("12. ")

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, open, total int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d/%d", open, total)

	switch open {
	case 1:
		_, _ = c.Fprintln(pp.out(), " open item")
	default:
		_, _ = c.Fprintln(pp.out(), " open items")
	}
}

// Day prints every list of rec, time blocks first in chain order.
func (pp *PrettyPrint) Day(rec *day.Record) {
	w := pp.out()
	h := color.New(color.Bold)
	_, _ = h.Fprintf(w, "%s", rec.Date)
	if rec.Smokes > 0 {
		_, _ = color.New(color.Faint).Fprintf(w, "  smokes: %d", rec.Smokes)
	}
	_, _ = fmt.Fprint(w, "\n\n")

	for _, key := range pp.order(rec) {
		pp.List(rec, key)
	}
}

func (pp *PrettyPrint) order(rec *day.Record) []string {
	keys := make([]string, 0, len(rec.Lists))
	for _, b := range pp.Blocks {
		if _, ok := rec.Lists[b.Key]; ok {
			keys = append(keys, b.Key)
		}
	}
	for _, key := range rec.ListKeys() {
		if !pp.Blocks.Has(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// List prints one list grouped by folder header.
func (pp *PrettyPrint) List(rec *day.Record, key string) {
	w := pp.out()
	l, ok := rec.Lists[key]
	if !ok {
		pp.Title(key)
		pp.none()
		return
	}

	open := 0
	for _, it := range l.Items {
		if !it.Done {
			open++
		}
	}
	title := key
	if current, ok := pp.Blocks.Current(pp.Hour); ok && pp.Hour >= 0 && current.Key == key {
		title = "> " + key
	}
	if l.Smoke {
		title += " *"
	}
	pp.TitleWithCount(title, open, len(l.Items))

	if pp.Blocks.Has(key) && pp.Blocks.Collapsed(rec, key) {
		_, _ = color.New(color.Faint, color.Italic).Fprint(w, " collapsed\n\n")
		return
	}
	if len(l.Items) == 0 && len(rec.UI.Folders[key]) == 0 {
		pp.none()
		return
	}

	headers := rec.UI.Folders[key]
	named := len(headers) > 1 || (len(headers) == 1 && headers[0] != folder.Root)
	seen := map[string]bool{}
	for _, f := range headers {
		seen[f] = true
		pp.folder(l, f, named)
	}
	// Items whose header went missing still print.
	var stray []string
	for _, it := range l.Items {
		if !seen[it.Folder] {
			seen[it.Folder] = true
			stray = append(stray, it.Folder)
		}
	}
	sort.Strings(stray)
	for _, f := range stray {
		pp.folder(l, f, true)
	}
	pp.NewLine()
}

func (pp *PrettyPrint) folder(l *day.List, f string, named bool) {
	w := pp.out()
	if named {
		_, _ = color.New(color.FgCyan).Fprintf(w, "  %s\n", folder.DisplayName(f))
	}
	pad := 2
	if named {
		pad = 4
	}
	count := 0
	for i, it := range l.Items {
		if it.Folder != f {
			continue
		}
		count++
		pp.item(i, it, l.Kind, pad)
	}
	if count == 0 && named {
		_, _ = color.New(color.Faint, color.Italic).Fprintf(w, "%sempty\n", strings.Repeat(" ", pad))
	}
}

func (pp *PrettyPrint) item(i int, it day.Item, kind day.Kind, pad int) {
	mark := "[ ]"
	switch {
	case kind == day.KindBullets:
		mark = " - "
	case it.Done:
		mark = "[x]"
	}
	prefix := strings.Repeat(" ", pad)
	if pp.ShowIndex {
		prefix += fmt.Sprintf("%-*s", indexWidth, fmt.Sprintf("%d.", i))
	}
	prefix += mark + " "

	text := wordwrap.String(it.Text, pp.width()-len(prefix))
	lines := strings.SplitN(text, "\n", 2)
	body := lines[0]
	if len(lines) > 1 {
		body += "\n" + indent.String(lines[1], uint(len(prefix)))
	}

	c := color.New()
	if it.Done {
		c = color.New(color.Faint, color.CrossedOut)
	}
	_, _ = fmt.Fprint(pp.out(), prefix)
	_, _ = c.Fprintln(pp.out(), body)
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Notes prints the global notes.
func (pp *PrettyPrint) Notes(items []day.Item) {
	pp.TitleWithCount("notes", len(items), len(items))
	if len(items) == 0 {
		pp.none()
		return
	}
	for i, it := range items {
		pp.item(i, it, day.KindBullets, 2)
	}
	pp.NewLine()
}

// Templates prints the saved templates as a table.
func (pp *PrettyPrint) Templates(tpl map[string][]day.Item) {
	if len(tpl) == 0 {
		pp.Title("templates")
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(pp.width() - 20)
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("Template"), bold.Sprint("Items"), bold.Sprint("Contents"))

	names := make([]string, 0, len(tpl))
	for name := range tpl {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		texts := make([]string, 0, len(tpl[name]))
		for _, it := range tpl[name] {
			texts = append(texts, it.Text)
		}
		tbl.AddRow(name, len(texts), strings.Join(texts, ", "))
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
