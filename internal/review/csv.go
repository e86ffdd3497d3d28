package review

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// WriteReviewCSV writes the plain review table. PRIORITY is always
// included so the review and Kaleidoscope outputs agree on ranking.
func WriteReviewCSV(path string, rows []Row, classes []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create review file %s: %w", path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	header := append([]string{
		"Filename", "TOP1MATCH", "TOP1DIST", "THRESHOLD", "PRIORITY",
		"Area", "Site", "Stn", "Part", "Rec_Day", "Rec_Week", "AUTO_TAG",
	}, classes...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write review header: %w", err)
	}

	record := make([]string, len(header))
	for i := range rows {
		row := &rows[i]
		record[0] = row.Filename
		record[1] = row.Top1Match
		record[2] = strconv.FormatFloat(row.Top1Dist, 'f', 5, 64)
		record[3] = row.Threshold
		record[4] = strconv.Itoa(row.Priority)
		record[5] = row.Area
		record[6] = row.Site
		record[7] = row.Stn
		record[8] = row.Part
		record[9] = strconv.Itoa(row.RecDay)
		record[10] = strconv.Itoa(row.RecWeek)
		record[11] = row.AutoTag
		for j, score := range row.Scores {
			record[12+j] = strconv.FormatFloat(score, 'f', 5, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write review row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteKscopeCSV writes the Kaleidoscope export with its fixed column
// order. An empty row set still writes the header so downstream tools see
// a well-formed file.
func WriteKscopeCSV(path string, rows []KscopeRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create kscope file %s: %w", path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(KscopeColumns); err != nil {
		return fmt.Errorf("failed to write kscope header: %w", err)
	}

	for i := range rows {
		row := &rows[i]
		record := []string{
			row.Folder,
			row.InFile,
			row.Part,
			strconv.Itoa(row.Channel),
			strconv.Itoa(row.Offset),
			strconv.Itoa(row.Duration),
			row.Date,
			row.Time,
			row.OffsetMMSS,
			row.Top1Match,
			strconv.FormatFloat(row.Top1Dist, 'f', 5, 64),
			row.Threshold,
			strconv.Itoa(row.Priority),
			row.Sort,
			row.AutoTag,
			strconv.Itoa(row.Vocalizations),
			row.ManualID,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write kscope row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
