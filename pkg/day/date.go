package day

import (
	"sort"
	"time"
)

// Layout is the date id format used for record identity.
const Layout = "2006-01-02"

// ID formats t as a date id in t's location.
func ID(t time.Time) string {
	return t.Format(Layout)
}

// Parse reads a date id as local midnight.
func Parse(id string) (time.Time, error) {
	return time.ParseInLocation(Layout, id, time.Local)
}

// Add offsets a date id by n days. Invalid ids are returned unchanged.
func Add(id string, n int) string {
	t, err := Parse(id)
	if err != nil {
		return id
	}
	return ID(t.AddDate(0, 0, n))
}

// Next returns the id of the following day.
func Next(id string) string {
	return Add(id, 1)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
