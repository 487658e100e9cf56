// Package shell provides an interactive planner prompt over a debounced
// session.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/printers"
)

var replCommands = []string{
	":use <list>        switch the current list ('notes' for the global notes)",
	":bullets <list>    create or switch to a bullet list",
	":today, :tomorrow  switch the current day",
	":ls [list]         print the day or one list",
	":x <n>, :o <n>     check or uncheck item n",
	":e <n> <text>      edit item n",
	":mv <n> <folder>   move item n to a folder",
	":rm <n>            remove item n",
	":clear             archive done items",
	":tick [hour]       cascade time blocks",
	":q                 save and quit",
	"anything else is added to the current list; '#folder' tags, '-folder' deletes",
}

type Shell struct {
	Service *app.Service
	Quiet   time.Duration
	// History is the readline history file.
	History string
	// List is the list selected at start.
	List string

	// In and Out replace the terminal when set.
	In  io.Reader
	Out io.Writer
}

type state struct {
	offset int
	list   string
}

func (n *Shell) out() io.Writer {
	if n.Out == nil {
		return color.Output
	}
	return n.Out
}

func (n *Shell) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not start shell, no service")
	}
	ss, err := n.Service.Open(ctx, n.Quiet)
	if err != nil {
		return err
	}

	var input lineInput
	if n.In != nil {
		input = newBasicLineInput(n.In, nil)
	} else {
		input = newLineInput(n.History)
	}
	defer input.Close()

	st := &state{list: n.List}
	if st.list == "" {
		st.list = "work"
	}
	fmt.Fprintln(n.out(), "type :help for commands")

	for {
		if ctx.Err() != nil {
			break
		}
		line, err := input.ReadLine(n.prompt(st))
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				break
			}
			_ = ss.Close()
			return err
		}
		if n.exec(ss, st, line) {
			break
		}
	}
	return ss.Close()
}

func (n *Shell) prompt(st *state) string {
	day := "today"
	if st.offset == 1 {
		day = "tomorrow"
	}
	return fmt.Sprintf("%s/%s> ", day, st.list)
}

// exec runs one line and reports whether the shell should exit.
func (n *Shell) exec(ss *app.Session, st *state, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, ":") {
		if ss.Add(st.offset, st.list, line) {
			n.show(ss, st, st.list)
		}
		return false
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]
	ok := true
	switch cmd {
	case "q", "quit", "exit":
		return true
	case "help", "h", "?":
		for _, c := range replCommands {
			fmt.Fprintf(n.out(), "  %s\n", c)
		}
		return false
	case "use":
		if len(args) != 1 {
			ok = false
			break
		}
		st.list = args[0]
	case "bullets":
		if len(args) != 1 || args[0] == app.NotesList {
			ok = false
			break
		}
		ss.AddBullets(st.offset, args[0], "")
		if rec := ss.Record(st.offset); rec.Lists[args[0]] == nil || rec.Lists[args[0]].Kind != day.KindBullets {
			ok = false
			break
		}
		st.list = args[0]
	case "today":
		st.offset = 0
	case "tomorrow":
		st.offset = 1
	case "ls":
		key := ""
		if len(args) > 0 {
			key = args[0]
		}
		n.show(ss, st, key)
		return false
	case "x", "o":
		ok = n.withIndex(args, 1, func(i int) bool { return ss.Check(st.offset, st.list, i, cmd == "x") })
	case "rm":
		ok = n.withIndex(args, 1, func(i int) bool { return ss.Remove(st.offset, st.list, i) })
	case "e":
		ok = n.withIndex(args, 2, func(i int) bool { return ss.Edit(st.offset, st.list, i, strings.Join(args[1:], " ")) })
	case "mv":
		ok = n.withIndex(args, 2, func(i int) bool { return ss.Move(st.offset, st.list, i, strings.Join(args[1:], " ")) })
	case "clear":
		fmt.Fprintf(n.out(), "cleared %d\n", ss.Clear(st.offset, st.list))
	case "tick":
		if len(args) == 1 {
			hour, err := strconv.Atoi(args[0])
			if err != nil {
				ok = false
				break
			}
			ss.Cascade(hour)
		} else {
			ss.Tick()
		}
		n.show(ss, st, "")
		return false
	default:
		ok = false
	}
	if !ok {
		fmt.Fprintf(n.out(), "?? %s (:help lists commands)\n", line)
		return false
	}
	n.show(ss, st, st.list)
	return false
}

func (n *Shell) withIndex(args []string, want int, fn func(int) bool) bool {
	if len(args) < want {
		return false
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return false
	}
	return fn(i)
}

func (n *Shell) show(ss *app.Session, st *state, key string) {
	if key == app.NotesList {
		notes, err := n.Service.Notes(context.Background())
		if err != nil {
			fmt.Fprintf(n.out(), "notes: %v\n", err)
			return
		}
		(&printers.PrettyPrint{Out: n.out(), ShowIndex: true}).Notes(notes)
		return
	}
	rec := ss.Record(st.offset)
	hour := -1
	if st.offset == 0 {
		hour = n.Service.Hour(rec.Date)
	}
	pp := printers.PrettyPrint{Out: n.out(), ShowIndex: true, Blocks: n.Service.Chain(), Hour: hour}
	if key == "" {
		pp.Day(rec)
		return
	}
	pp.List(rec, key)
}
