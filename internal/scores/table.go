// Package scores holds the in-memory representation of a PNW-Cnet class
// score table: one row per spectrogram clip, one column per target class.
// The column set is supplied by the caller rather than hardcoded so that
// v4 and v5 score files (and future vocabularies) share one table type.
package scores

import "fmt"

// Row is one clip's scores, parallel to the owning table's Classes slice.
type Row struct {
	Filename string
	Scores   []float64
}

// Table is a set of class scores indexed by clip filename. Rows preserve
// input order; Classes is immutable once the table is built.
type Table struct {
	Classes []string
	Rows    []Row

	classIndex map[string]int
}

// NewTable creates an empty table with the given class columns.
func NewTable(classes []string) *Table {
	idx := make(map[string]int, len(classes))
	for i, c := range classes {
		idx[c] = i
	}
	return &Table{
		Classes:    append([]string(nil), classes...),
		classIndex: idx,
	}
}

// AddRow appends one clip's scores. The score slice must match the class
// columns one to one.
func (t *Table) AddRow(filename string, rowScores []float64) error {
	if len(rowScores) != len(t.Classes) {
		return fmt.Errorf("row %s has %d scores, table has %d classes", filename, len(rowScores), len(t.Classes))
	}
	t.Rows = append(t.Rows, Row{Filename: filename, Scores: rowScores})
	return nil
}

// ClassIndex returns the column position of a class code.
func (t *Table) ClassIndex(class string) (int, bool) {
	i, ok := t.classIndex[class]
	return i, ok
}

// Filenames lists the clip filenames in row order.
func (t *Table) Filenames() []string {
	names := make([]string, len(t.Rows))
	for i := range t.Rows {
		names[i] = t.Rows[i].Filename
	}
	return names
}

// ApparentDetections returns the rows whose score for class meets or
// exceeds threshold. An unknown class code or a threshold outside (0, 1]
// yields no detections rather than an error, matching how a review pass
// should treat criteria that do not apply to this table.
func (t *Table) ApparentDetections(class string, threshold float64) []Row {
	col, ok := t.classIndex[class]
	if !ok || threshold <= 0 || threshold > 1 {
		return nil
	}
	var dets []Row
	for i := range t.Rows {
		if t.Rows[i].Scores[col] >= threshold {
			dets = append(dets, t.Rows[i])
		}
	}
	return dets
}
