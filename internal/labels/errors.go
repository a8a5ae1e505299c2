package labels

import "fmt"

// CardinalityError indicates the eligible sample files and the array rows
// being labeled do not line up one to one.
type CardinalityError struct {
	Samples int
	Rows    int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("label cardinality mismatch: %d sample files but %d array rows", e.Samples, e.Rows)
}

// DuplicateIDError indicates the labels table lists the same identifier twice.
type DuplicateIDError struct {
	ID        string
	FirstLine int
	Line      int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate sample id %q on lines %d and %d", e.ID, e.FirstLine, e.Line)
}

// AmbiguousMatchError indicates one sample file matched more than one
// identifier of the labels table.
type AmbiguousMatchError struct {
	File   string
	First  Entry
	Second Entry
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous labels for %s: matched %q (line %d, %s) and %q (line %d, %s)",
		e.File, e.First.ID, e.First.Line, e.First.Label, e.Second.ID, e.Second.Line, e.Second.Label)
}

// RowOrderError indicates a row-order list that does not name every sample
// exactly once.
type RowOrderError struct {
	Index  int // 1-based position in the list, 0 when not tied to one entry
	Entry  string
	Reason string
}

func (e *RowOrderError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("row order entry %d (%q): %s", e.Index, e.Entry, e.Reason)
	}
	return fmt.Sprintf("row order: %s", e.Reason)
}
