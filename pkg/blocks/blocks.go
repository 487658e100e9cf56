// Package blocks moves unfinished items along the chain of time-of-day lists
// as the day goes on.
package blocks

import (
	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/list"
)

// Block is one time-of-day list. End is the hour (0-24) at which the block
// closes and hands its unfinished items to the next block.
type Block struct {
	Key string `json:"key" mapstructure:"key"`
	End int    `json:"end" mapstructure:"end"`
}

// Chain is an ordered set of blocks.
type Chain []Block

// Default is the morning, daytime, evening chain.
func Default() Chain {
	return Chain{
		{Key: "morning", End: 14},
		{Key: "daytime", End: 18},
		{Key: "evening", End: 22},
	}
}

// Has reports whether key names a block in the chain.
func (c Chain) Has(key string) bool {
	for _, b := range c {
		if b.Key == key {
			return true
		}
	}
	return false
}

// Keys returns the block keys in chain order.
func (c Chain) Keys() []string {
	keys := make([]string, 0, len(c))
	for _, b := range c {
		keys = append(keys, b.Key)
	}
	return keys
}

// Cascade closes every block whose end hour has passed and that has not been
// closed yet today. Unfinished items of a closed block move to the front of
// the next block; done items stay. The last block is closed without moving
// anything. Cascade reports whether rec changed.
func (c Chain) Cascade(rec *day.Record, hour int) bool {
	rec.Normalize()
	changed := false
	for i, b := range c {
		if hour < b.End || rec.UI.AutoCollapsed[b.Key] {
			continue
		}
		rec.UI.AutoCollapsed[b.Key] = true
		changed = true
		if i+1 >= len(c) {
			continue
		}

		src, ok := rec.Lists[b.Key]
		if !ok {
			continue
		}
		var moved, kept []day.Item
		for _, it := range src.Items {
			if it.Done {
				kept = append(kept, it)
			} else {
				moved = append(moved, it)
			}
		}
		if len(moved) == 0 {
			continue
		}
		src.Items = kept
		if src.Items == nil {
			src.Items = []day.Item{}
		}

		next := list.Open(rec, c[i+1].Key)
		for _, it := range moved {
			next.EnsureFolder(it.Folder)
		}
		dst := rec.List(c[i+1].Key)
		dst.Items = append(moved, dst.Items...)
	}
	return changed
}

// Collapsed reports whether key is shown collapsed, either because the user
// folded it or because the cascade closed it.
func (c Chain) Collapsed(rec *day.Record, key string) bool {
	return rec.UI.Collapsed[key] || rec.UI.AutoCollapsed[key]
}

// SetManual sets the user's collapse flag for key.
func (c Chain) SetManual(rec *day.Record, key string, on bool) {
	rec.Normalize()
	if on {
		rec.UI.Collapsed[key] = true
		return
	}
	delete(rec.UI.Collapsed, key)
}

// Current returns the block open at hour, or false once every block closed.
func (c Chain) Current(hour int) (Block, bool) {
	for _, b := range c {
		if hour < b.End {
			return b, true
		}
	}
	return Block{}, false
}
