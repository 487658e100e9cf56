// Package transfer provides runners for portable planner documents.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/export"
)

// Export writes the document for one day. An empty Out writes to Stdout; a
// directory gets the conventional file name.
type Export struct {
	Service *app.Service
	Offset  int
	Out     string
	Stdout  io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no service")
	}
	doc, err := n.Service.Export(ctx, n.Offset)
	if err != nil {
		return err
	}
	if n.Out == "" {
		w := n.Stdout
		if w == nil {
			w = os.Stdout
		}
		return export.Encode(w, doc)
	}

	path := n.Out
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, export.Filename(doc.Date))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Encode(f, doc); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "wrote %s\n", path)
	return nil
}

// Import restores a day from a document file.
type Import struct {
	Service *app.Service
	Path    string
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not import, no service")
	}
	f, err := os.Open(n.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := export.Decode(f)
	if err != nil {
		return err
	}
	date, err := n.Service.Import(ctx, doc, n.Path)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "restored %s\n", date)
	return nil
}
