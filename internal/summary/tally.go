package summary

import (
	"sort"
	"time"

	"github.com/pnwcnet/pnwcnet-go/internal/clipinfo"
	"github.com/pnwcnet/pnwcnet-go/internal/scores"
)

// TallyRow counts apparent detections of every class for one station-day
// at one score threshold. Counts parallels the score table's Classes.
type TallyRow struct {
	Area      string
	Site      string
	Stn       string
	Date      time.Time
	Threshold float64
	Counts    []int
}

// TallyAtThreshold counts, per class and station-day group, the clips
// whose score meets or exceeds threshold. Pure function of its inputs:
// safe to run concurrently across thresholds.
func TallyAtThreshold(t *scores.Table, threshold float64) []TallyRow {
	clips := clipinfo.BuildClipTable(t)

	groups := make(map[groupKey]*TallyRow)
	for i := range t.Rows {
		key := groupKey{Area: clips[i].Area, Site: clips[i].Site, Stn: clips[i].Stn, Date: clips[i].Date}
		row, ok := groups[key]
		if !ok {
			row = &TallyRow{
				Area:      key.Area,
				Site:      key.Site,
				Stn:       key.Stn,
				Date:      key.Date,
				Threshold: threshold,
				Counts:    make([]int, len(t.Classes)),
			}
			groups[key] = row
		}
		for col, score := range t.Rows[i].Scores {
			if score >= threshold {
				row.Counts[col]++
			}
		}
	}

	rows := make([]TallyRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		a := groupKey{Area: rows[i].Area, Site: rows[i].Site, Stn: rows[i].Stn, Date: rows[i].Date}
		b := groupKey{Area: rows[j].Area, Site: rows[j].Site, Stn: rows[j].Stn, Date: rows[j].Date}
		return a.less(b)
	})
	return rows
}
