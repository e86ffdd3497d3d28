package summary

import (
	"fmt"
	"runtime"

	"github.com/pnwcnet/pnwcnet-go/internal/scores"
)

// MaxDefaultWorkers caps the default tally pool size.
const MaxDefaultWorkers = 10

// DefaultThresholds returns the fixed threshold ladder used for detection
// summaries: 0.05 through 0.95 in steps of 0.05, plus 0.98 and 0.99 for
// the high-precision tail. Output CSVs are only comparable across runs
// when this ladder is used, so it is a policy constant rather than a
// user-facing knob.
func DefaultThresholds() []float64 {
	thresholds := make([]float64, 0, 21)
	for i := 5; i < 100; i += 5 {
		thresholds = append(thresholds, float64(i)/100)
	}
	return append(thresholds, 0.98, 0.99)
}

// SummaryRow is one (station-day, threshold) combination of the detection
// summary: recording effort plus per-class apparent detection counts.
type SummaryRow struct {
	EffortRow
	Threshold float64
	Counts    []int
}

// PoolSize clamps a requested worker count to the host: 0 means
// min(NumCPU, MaxDefaultWorkers), anything larger than NumCPU is reduced
// to NumCPU.
func PoolSize(requested int) int {
	cores := runtime.NumCPU()
	switch {
	case requested <= 0:
		return min(cores, MaxDefaultWorkers)
	case requested > cores:
		return cores
	default:
		return requested
	}
}

// SummarizeDetections tallies apparent detections of every class at each
// threshold of the default ladder and joins the tallies with recording
// effort. Tallying fans out over a pool of workers goroutines; a failed
// worker fails the whole summarization, since a partial summary is not
// meaningful. Must not be called reentrantly from inside its own pool.
//
// Output rows are sorted by (Threshold, Area, Site, Stn, Date). Groups
// with no detections at a threshold get zero counts through the effort
// join, so the result always has len(thresholds) rows per station-day.
func SummarizeDetections(t *scores.Table, workers int) ([]SummaryRow, error) {
	thresholds := DefaultThresholds()
	workers = PoolSize(workers)

	type result struct {
		threshold float64
		rows      []TallyRow
		err       error
	}

	jobs := make(chan float64, len(thresholds))
	results := make(chan result, len(thresholds))

	for w := 0; w < workers; w++ {
		go func() {
			for threshold := range jobs {
				res := result{threshold: threshold}
				func() {
					defer func() {
						if r := recover(); r != nil {
							res.err = fmt.Errorf("tally at threshold %.2f panicked: %v", threshold, r)
						}
					}()
					res.rows = TallyAtThreshold(t, threshold)
				}()
				results <- res
			}
		}()
	}

	for _, threshold := range thresholds {
		jobs <- threshold
	}
	close(jobs)

	tallies := make(map[float64][]TallyRow, len(thresholds))
	for range thresholds {
		res := <-results
		if res.err != nil {
			return nil, res.err
		}
		tallies[res.threshold] = res.rows
	}

	effort := SummarizeEffort(t)

	// Left join: effort is threshold-invariant, so each station-day's
	// effort row is broadcast across every threshold.
	summary := make([]SummaryRow, 0, len(thresholds)*len(effort))
	for _, threshold := range thresholds {
		byKey := make(map[groupKey]TallyRow, len(tallies[threshold]))
		for _, row := range tallies[threshold] {
			byKey[groupKey{Area: row.Area, Site: row.Site, Stn: row.Stn, Date: row.Date}] = row
		}
		for _, eff := range effort {
			counts := make([]int, len(t.Classes))
			if row, ok := byKey[groupKeyOf(eff)]; ok {
				copy(counts, row.Counts)
			}
			summary = append(summary, SummaryRow{
				EffortRow: eff,
				Threshold: threshold,
				Counts:    counts,
			})
		}
	}
	return summary, nil
}
