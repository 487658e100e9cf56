// Package parse turns raw input lines into list intents.
//
// A line is one of:
//
//	-<folder>              delete the folder
//	<text> #tag [#tag...]  add text to each tagged folder
//	#tag [#tag...]         create the folders without adding an item
//	<text>                 add text to the Unfiled folder
package parse

import (
	"regexp"
	"strings"

	"tableflip.dev/planner/pkg/folder"
)

// Kind identifies what a parsed line asks for.
type Kind string

const (
	KindNone         Kind = "none"
	KindAdd          Kind = "add"
	KindCreateFolder Kind = "create-folder"
	KindDeleteFolder Kind = "delete-folder"
)

// Intent is the structured form of one input line.
type Intent struct {
	Kind Kind
	Raw  string
	Text string
	// Folders holds normalised folder keys. For KindDeleteFolder it holds the
	// single target.
	Folders []string
	// Tagged is set when the line carried explicit #tags.
	Tagged bool
}

var (
	deletePattern = regexp.MustCompile(`^-\s*#?([A-Za-z0-9 _/-]+)$`)
	separators    = regexp.MustCompile(`[\n,;]+`)
)

// Line parses a single line. When tags is false the whole line is item text
// for the Unfiled folder.
func Line(line string, tags bool) Intent {
	raw := strings.TrimSpace(line)
	if raw == "" {
		return Intent{Kind: KindNone, Raw: line}
	}
	if !tags {
		return Intent{Kind: KindAdd, Raw: line, Text: raw, Folders: []string{folder.Root}}
	}

	if strings.HasPrefix(raw, "-") && strings.Trim(raw, "-# \t") == "" {
		return Intent{Kind: KindNone, Raw: line}
	}
	if m := deletePattern.FindStringSubmatch(raw); m != nil {
		target := folder.Normalize(m[1])
		if target == folder.Root && !isUnfiled(m[1]) {
			return Intent{Kind: KindNone, Raw: line}
		}
		return Intent{Kind: KindDeleteFolder, Raw: line, Folders: []string{target}}
	}

	hash := strings.Index(raw, "#")
	if hash < 0 {
		return Intent{Kind: KindAdd, Raw: line, Text: raw, Folders: []string{folder.Root}}
	}

	text := strings.TrimSpace(raw[:hash])
	folders := make([]string, 0, 2)
	for _, token := range strings.Split(raw[hash+1:], "#") {
		key := folder.Normalize(token)
		if !contains(folders, key) {
			folders = append(folders, key)
		}
	}

	kind := KindAdd
	if text == "" {
		kind = KindCreateFolder
	}
	return Intent{Kind: kind, Raw: line, Text: text, Folders: folders, Tagged: true}
}

// Split breaks a multi-line input on commas, semicolons and newlines,
// dropping empty pieces.
func Split(text string) []string {
	parts := separators.Split(text, -1)
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}

// Batch parses every line of a multi-line input. When the last line carries
// tags and no other line does, the last line's tags apply to all of them.
// Delete commands take no part in that rule.
func Batch(text string, tags bool) []Intent {
	lines := Split(text)
	intents := make([]Intent, 0, len(lines))
	for _, l := range lines {
		in := Line(l, tags)
		if in.Kind == KindNone {
			continue
		}
		intents = append(intents, in)
	}
	if !tags {
		return intents
	}

	last := -1
	for i := len(intents) - 1; i >= 0; i-- {
		if intents[i].Kind != KindDeleteFolder {
			last = i
			break
		}
	}
	if last < 0 || !intents[last].Tagged {
		return intents
	}
	for i, in := range intents {
		if i != last && in.Kind != KindDeleteFolder && in.Tagged {
			return intents
		}
	}
	for i := range intents {
		if i == last || intents[i].Kind == KindDeleteFolder {
			continue
		}
		intents[i].Folders = append([]string{}, intents[last].Folders...)
		intents[i].Tagged = true
	}
	return intents
}

func isUnfiled(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "unfiled")
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
