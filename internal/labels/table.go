package labels

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry is one row of the labels table: a sample identifier and its
// population code. Line is the 1-based line the row started on.
type Entry struct {
	ID    string
	Label string
	Line  int
}

// Table holds the labels table rows in file order.
type Table []Entry

// ReadTable parses the labels file at path. Files ending in .tsv are
// tab-separated, anything else is comma-separated.
func ReadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labels: %w", err)
	}
	defer f.Close()
	t, err := ParseTable(f, sniffDelimiter(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseTable reads (identifier, label, ...) rows. Extra columns are ignored,
// rows with a blank identifier are skipped and lines starting with '#' are
// comments.
func ParseTable(r io.Reader, delim rune) (Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var t Table
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read labels: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 2 {
			return nil, fmt.Errorf("read labels: line %d: want at least 2 fields, got %d", line, len(rec))
		}
		id := strings.TrimSpace(rec[0])
		if id == "" {
			continue
		}
		t = append(t, Entry{ID: id, Label: strings.TrimSpace(rec[1]), Line: line})
	}
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// ReadRowOrder reads one sample file name or sample id per line, in array
// row order. Blank lines and '#' comments are ignored.
func ReadRowOrder(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open row order: %w", err)
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read row order: %w", err)
	}
	return out, nil
}
