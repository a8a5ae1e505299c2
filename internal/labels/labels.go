// Package labels associates per-sample files with population codes from a
// metadata table and ties each sample to a row of the feature matrix.
package labels

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"strings"

	"github.com/KaramelBytes/genoplot/internal/palette"
)

const (
	// Unlabeled marks a sample no table row matched.
	Unlabeled = "---"
	// DefaultExcludeMarker drops the second file of paired samples.
	DefaultExcludeMarker = ".2.fasta"
)

// MatchMode selects how table identifiers are matched to sample files.
type MatchMode string

const (
	// MatchExact compares the identifier with the sample id parsed from the
	// file name.
	MatchExact MatchMode = "exact"
	// MatchSubstring accepts any file name containing the identifier.
	MatchSubstring MatchMode = "substring"
)

// Collision selects what happens when one file matches several table rows
// in substring mode.
type Collision string

const (
	CollisionError    Collision = "error"
	CollisionLastWins Collision = "last-wins"
)

// ParseMatchMode validates a match mode name.
func ParseMatchMode(s string) (MatchMode, error) {
	switch m := MatchMode(strings.ToLower(strings.TrimSpace(s))); m {
	case MatchExact, MatchSubstring:
		return m, nil
	case "":
		return MatchExact, nil
	}
	return "", fmt.Errorf("invalid match mode: %s (use exact or substring)", s)
}

// ParseCollision validates a collision policy name.
func ParseCollision(s string) (Collision, error) {
	switch c := Collision(strings.ToLower(strings.TrimSpace(s))); c {
	case CollisionError, CollisionLastWins:
		return c, nil
	case "":
		return CollisionError, nil
	}
	return "", fmt.Errorf("invalid collision policy: %s (use error or last-wins)", s)
}

// Sample is one eligible per-sample file.
type Sample struct {
	File string
	ID   string
}

// SampleID extracts the sample id from a file name: everything before the
// first dot.
func SampleID(file string) string {
	if i := strings.IndexByte(file, '.'); i > 0 {
		return file[:i]
	}
	return file
}

// ListSamples returns the files of dir whose names do not contain exclude,
// sorted by name. Subdirectories are ignored.
func ListSamples(dir, exclude string) ([]Sample, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	var out []Sample
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if exclude != "" && strings.Contains(name, exclude) {
			continue
		}
		out = append(out, Sample{File: name, ID: SampleID(name)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out, nil
}

// CheckCardinality fails unless there is exactly one sample per array row.
func CheckCardinality(samples []Sample, rows int) error {
	if len(samples) != rows {
		return &CardinalityError{Samples: len(samples), Rows: rows}
	}
	return nil
}

// Options controls Resolve.
type Options struct {
	Mode      MatchMode
	Collision Collision
	// RowOrder lists sample file names or ids in array row order. When
	// empty, samples are assigned to rows in sorted file name order.
	RowOrder []string
}

// Assignment ties a sample to its array row and population code.
type Assignment struct {
	Sample
	Row   int
	Label string
	// Source is the table row the label came from; zero when Unlabeled.
	Source Entry
}

// Resolve labels every sample from table and assigns each one an array row.
// The result is sorted by Row.
func Resolve(samples []Sample, table Table, rows int, opt Options) ([]Assignment, error) {
	if err := CheckCardinality(samples, rows); err != nil {
		return nil, err
	}
	if opt.Mode == "" {
		opt.Mode = MatchExact
	}
	if opt.Collision == "" {
		opt.Collision = CollisionError
	}

	out := make([]Assignment, len(samples))
	for i, s := range samples {
		out[i] = Assignment{Sample: s, Row: i, Label: Unlabeled}
	}

	var err error
	switch opt.Mode {
	case MatchExact:
		err = matchExact(out, table)
	case MatchSubstring:
		err = matchSubstring(out, table, opt.Collision)
	default:
		err = fmt.Errorf("invalid match mode: %s", opt.Mode)
	}
	if err != nil {
		return nil, err
	}

	if len(opt.RowOrder) > 0 {
		if err := applyRowOrder(out, opt.RowOrder); err != nil {
			return nil, err
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Row < out[j].Row })
	}
	return out, nil
}

func matchExact(out []Assignment, table Table) error {
	byID := make(map[string]Entry, len(table))
	for _, e := range table {
		if prev, dup := byID[e.ID]; dup {
			return &DuplicateIDError{ID: e.ID, FirstLine: prev.Line, Line: e.Line}
		}
		byID[e.ID] = e
	}
	for i := range out {
		if e, ok := byID[out[i].ID]; ok {
			out[i].Label = e.Label
			out[i].Source = e
		}
	}
	return nil
}

func matchSubstring(out []Assignment, table Table, policy Collision) error {
	matched := make([]bool, len(out))
	for _, e := range table {
		for i := range out {
			if !strings.Contains(out[i].File, e.ID) {
				continue
			}
			if matched[i] && policy == CollisionError {
				return &AmbiguousMatchError{File: out[i].File, First: out[i].Source, Second: e}
			}
			matched[i] = true
			out[i].Label = e.Label
			out[i].Source = e
		}
	}
	return nil
}

// applyRowOrder rewrites Row from an explicit list. Entries may name the
// file or the sample id; every sample must be named exactly once.
func applyRowOrder(out []Assignment, order []string) error {
	if len(order) != len(out) {
		return &RowOrderError{Reason: fmt.Sprintf("%d entries for %d samples", len(order), len(out))}
	}
	byFile := make(map[string]int, len(out))
	byID := make(map[string]int, len(out))
	for i, a := range out {
		byFile[a.File] = i
		if _, dup := byID[a.ID]; dup {
			byID[a.ID] = -1
		} else {
			byID[a.ID] = i
		}
	}
	seen := make(map[int]bool, len(out))
	for row, entry := range order {
		i, ok := byFile[entry]
		if !ok {
			i, ok = byID[entry]
		}
		switch {
		case !ok:
			return &RowOrderError{Index: row + 1, Entry: entry, Reason: "no such sample"}
		case i < 0:
			return &RowOrderError{Index: row + 1, Entry: entry, Reason: "sample id is shared by several files; use the file name"}
		case seen[i]:
			return &RowOrderError{Index: row + 1, Entry: entry, Reason: "sample listed twice"}
		}
		seen[i] = true
		out[i].Row = row
	}
	return nil
}

// Colors returns one color per array row, in row order, along with the
// color names used.
func Colors(as []Assignment, p *palette.Palette) ([]color.RGBA, []string, error) {
	colors := make([]color.RGBA, len(as))
	names := make([]string, len(as))
	for _, a := range as {
		if a.Row < 0 || a.Row >= len(as) {
			return nil, nil, fmt.Errorf("sample %s: row %d out of range", a.File, a.Row)
		}
		c, name, err := p.Color(a.Label)
		if err != nil {
			return nil, nil, fmt.Errorf("sample %s: %w", a.File, err)
		}
		colors[a.Row] = c
		names[a.Row] = name
	}
	return colors, names, nil
}
