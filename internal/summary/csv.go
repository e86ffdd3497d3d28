package summary

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

const dateLayout = "2006-01-02"

// WriteCSV writes a detection summary with the fixed column order
// Area,Site,Stn,Date,Rec_Day,Rec_Week,Clips,Effort,Threshold followed by
// one column per class.
func WriteCSV(path string, rows []SummaryRow, classes []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file %s: %w", path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	header := append([]string{"Area", "Site", "Stn", "Date", "Rec_Day", "Rec_Week", "Clips", "Effort", "Threshold"}, classes...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	record := make([]string, len(header))
	for i := range rows {
		row := &rows[i]
		record[0] = row.Area
		record[1] = row.Site
		record[2] = row.Stn
		record[3] = row.Date.Format(dateLayout)
		record[4] = strconv.Itoa(row.RecDay)
		record[5] = strconv.Itoa(row.RecWeek)
		record[6] = strconv.Itoa(row.Clips)
		record[7] = strconv.FormatFloat(row.Effort, 'f', 2, 64)
		record[8] = strconv.FormatFloat(row.Threshold, 'g', -1, 64)
		for j, count := range row.Counts {
			record[9+j] = strconv.Itoa(count)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
