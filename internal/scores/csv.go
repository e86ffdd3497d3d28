package scores

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pnwcnet/pnwcnet-go/internal/cnet"
)

// ReadCSV reads a class score table from a CSV file with a
// "Filename,<class>,..." header, as written by the prediction stage.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open score file %s: %w", path, err)
	}
	defer file.Close()

	table, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read score file %s: %w", path, err)
	}
	return table, nil
}

// Read parses a score table from CSV data. Class names come from the
// header columns after Filename; a header with blank class columns is
// replaced wholesale with the vocabulary matching the column count, or
// Class_NNN labels when no vocabulary matches.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 || header[0] != "Filename" {
		return nil, fmt.Errorf("unexpected header, want Filename followed by class columns")
	}

	classes := append([]string(nil), header[1:]...)
	for _, class := range classes {
		if strings.TrimSpace(class) == "" {
			classes = cnet.ResolveClassNames(len(classes))
			break
		}
	}

	table := NewTable(classes)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		rowScores := make([]float64, len(record)-1)
		for i, field := range record[1:] {
			score, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %s: bad score %q: %w", record[0], field, err)
			}
			rowScores[i] = score
		}
		if err := table.AddRow(record[0], rowScores); err != nil {
			return nil, err
		}
	}
	return table, nil
}
