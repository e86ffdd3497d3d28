package clipinfo

import (
	"time"

	"github.com/pnwcnet/pnwcnet-go/internal/scores"
)

// Clip is one row of the derived clip table: parsed filename metadata plus
// day and week indices relative to the earliest date in the batch.
type Clip struct {
	ClipInfo
	Filename string
	RecDay   int // 1-based ordinal day within the batch
	RecWeek  int // ceil(RecDay/7)
}

// BuildClipTable derives clip metadata for every row of a score table, in
// row order. Rec_Day and Rec_Week are computed against the earliest valid
// date observed in this table, so the indices are only meaningful within
// one processing batch. Clips with unparseable names get RecDay/RecWeek 0.
func BuildClipTable(t *scores.Table) []Clip {
	clips := make([]Clip, len(t.Rows))
	for i := range t.Rows {
		clips[i] = Clip{
			ClipInfo: Parse(t.Rows[i].Filename),
			Filename: t.Rows[i].Filename,
		}
	}

	dayOne, found := earliestDate(clips)
	if !found {
		return clips
	}
	for i := range clips {
		if !clips[i].Valid() {
			continue
		}
		clips[i].RecDay = int(clips[i].Date.Sub(dayOne).Hours()/24) + 1
		clips[i].RecWeek = (clips[i].RecDay-1)/7 + 1
	}
	return clips
}

func earliestDate(clips []Clip) (time.Time, bool) {
	var earliest time.Time
	for i := range clips {
		if !clips[i].Valid() {
			continue
		}
		if earliest.IsZero() || clips[i].Date.Before(earliest) {
			earliest = clips[i].Date
		}
	}
	return earliest, !earliest.IsZero()
}
