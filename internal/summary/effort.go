// Package summary aggregates per-clip class scores into recording-effort
// and apparent-detection summaries grouped by area, site, station and
// date. Tallying runs independently per score threshold so the full
// threshold ladder can be processed by a bounded worker pool.
package summary

import (
	"math"
	"sort"
	"time"

	"github.com/pnwcnet/pnwcnet-go/internal/clipinfo"
	"github.com/pnwcnet/pnwcnet-go/internal/scores"
)

// Clips are a fixed 12 seconds, so 300 clips make one hour of recordings.
const (
	ClipSeconds  = 12
	ClipsPerHour = 3600 / ClipSeconds
)

// groupKey identifies one station-day of recording.
type groupKey struct {
	Area string
	Site string
	Stn  string
	Date time.Time
}

func (k groupKey) less(o groupKey) bool {
	if k.Area != o.Area {
		return k.Area < o.Area
	}
	if k.Site != o.Site {
		return k.Site < o.Site
	}
	if k.Stn != o.Stn {
		return k.Stn < o.Stn
	}
	return k.Date.Before(o.Date)
}

// EffortRow summarizes recording effort for one station-day.
type EffortRow struct {
	Area    string
	Site    string
	Stn     string
	Date    time.Time
	RecDay  int
	RecWeek int
	Clips   int
	Effort  float64 // hours, rounded to 2 decimals
}

// SummarizeEffort counts clips per area/site/station/date and converts
// the counts to hours of recording time. Empty input yields an empty
// table.
func SummarizeEffort(t *scores.Table) []EffortRow {
	clips := clipinfo.BuildClipTable(t)

	counts := make(map[groupKey]*EffortRow)
	for i := range clips {
		key := groupKey{Area: clips[i].Area, Site: clips[i].Site, Stn: clips[i].Stn, Date: clips[i].Date}
		row, ok := counts[key]
		if !ok {
			row = &EffortRow{
				Area:    key.Area,
				Site:    key.Site,
				Stn:     key.Stn,
				Date:    key.Date,
				RecDay:  clips[i].RecDay,
				RecWeek: clips[i].RecWeek,
			}
			counts[key] = row
		}
		row.Clips++
	}

	rows := make([]EffortRow, 0, len(counts))
	for _, row := range counts {
		row.Effort = math.Round(float64(row.Clips)/ClipsPerHour*100) / 100
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return groupKeyOf(rows[i]).less(groupKeyOf(rows[j]))
	})
	return rows
}

func groupKeyOf(r EffortRow) groupKey {
	return groupKey{Area: r.Area, Site: r.Site, Stn: r.Stn, Date: r.Date}
}
