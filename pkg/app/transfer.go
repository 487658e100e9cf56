package app

import (
	"context"
	"errors"

	"tableflip.dev/planner/pkg/export"
)

// Export builds the portable document for the day offset days from the
// anchor.
func (s *Service) Export(ctx context.Context, offset int) (export.Document, error) {
	rec, err := s.Day(ctx, offset)
	if err != nil {
		return export.Document{}, err
	}
	return export.Build(rec, s.Persistence.Notes(ctx)), nil
}

// Import replaces the stored record for the document's date, and the global
// notes when the document carries any. filename is used to recover a missing
// date; failing that the anchor day is used. It returns the date written.
func (s *Service) Import(ctx context.Context, doc export.Document, filename string) (string, error) {
	anchor, err := s.Anchor(ctx)
	if err != nil {
		return "", err
	}
	if doc.Empty() {
		return "", errors.New("app: document has no lists, refusing to replace the day")
	}
	doc.Date = doc.ResolveDate(filename, anchor)
	if doc.Date == "" {
		return "", errors.New("app: document has no date")
	}
	if err := s.Persistence.Save(ctx, doc.Record()); err != nil {
		return "", err
	}
	if len(doc.Notes) > 0 {
		if err := s.Persistence.SetNotes(ctx, doc.Notes); err != nil {
			return "", err
		}
	}
	if doc.Date == anchor {
		if _, err := s.Reconcile(ctx); err != nil {
			return "", err
		}
	}
	return doc.Date, nil
}
