// Package info provides the runner that describes the planner's setup.
package info

import (
	"context"
	"fmt"
	"os"

	"github.com/gosuri/uitable"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/store"
)

type Info struct {
	Config  store.Config
	Service *app.Service
}

func (n *Info) Do(ctx context.Context) error {
	if override := os.Getenv("PLANNER_CONFIG_PATH"); override != "" {
		fmt.Println("PLANNER_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Println("PLANNER_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("path", n.Config.BasePath())
	tbl.AddRow("backend", n.Config.Backend())
	tbl.AddRow("archive", n.Config.ArchiveDir())
	tbl.AddRow("debounce", n.Config.Debounce())
	tbl.AddRow("tick", n.Config.Tick())
	for _, b := range n.Config.Blocks() {
		tbl.AddRow("block "+b.Key, fmt.Sprintf("until %02d:00", b.End))
	}
	fmt.Println(tbl)

	if n.Service == nil || n.Service.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}
	anchor, err := n.Service.Anchor(ctx)
	if err != nil {
		return err
	}
	fmt.Println("")
	fmt.Println("Today: ", anchor)
	fmt.Printf("Days:\n")
	dates := n.Service.Persistence.Dates(ctx)
	for _, d := range dates {
		fmt.Printf("  %s\n", d)
	}
	if len(dates) == 0 {
		fmt.Printf("  %s\n", "no days")
	}
	return nil
}
