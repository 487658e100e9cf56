package app

import (
	"context"
	"errors"

	"tableflip.dev/planner/pkg/day"
)

// ReportItem is one finished item.
type ReportItem struct {
	List   string
	Text   string
	Folder string
	// Cleared is set for items that were archived with clear.
	Cleared bool
}

// ReportSection groups finished items by date.
type ReportSection struct {
	Date  string
	Items []ReportItem
}

// ReportResult lists finished items between two dates, inclusive.
type ReportResult struct {
	Since    string
	Until    string
	Sections []ReportSection
	Total    int
}

// Report returns finished checklist items for every stored day between since
// and until.
func (s *Service) Report(ctx context.Context, since, until string) (ReportResult, error) {
	if s.Persistence == nil {
		return ReportResult{}, errNoPersistence
	}
	for _, d := range []string{since, until} {
		if _, err := day.Parse(d); err != nil {
			return ReportResult{}, errors.New("app: report bounds must be YYYY-MM-DD")
		}
	}
	if since > until {
		since, until = until, since
	}

	res := ReportResult{Since: since, Until: until}
	for _, date := range s.Persistence.Dates(ctx) {
		if date < since || date > until {
			continue
		}
		rec := s.Persistence.Load(ctx, date)
		var items []ReportItem
		for _, key := range rec.ListKeys() {
			l := rec.Lists[key]
			if l.Kind != day.KindChecklist {
				continue
			}
			for _, it := range l.Items {
				if it.Done {
					items = append(items, ReportItem{List: key, Text: it.Text, Folder: it.Folder})
				}
			}
			for _, text := range rec.Cleared[key] {
				items = append(items, ReportItem{List: key, Text: text, Cleared: true})
			}
		}
		if len(items) == 0 {
			continue
		}
		res.Sections = append(res.Sections, ReportSection{Date: date, Items: items})
		res.Total += len(items)
	}
	return res, nil
}
