package summary

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pnwcnet/pnwcnet-go/internal/scores"
)

func newTestTable(t *testing.T) *scores.Table {
	t.Helper()
	table := scores.NewTable([]string{"STOC_4Note", "ZEMA1"})

	rows := []struct {
		name   string
		scores []float64
	}{
		{"COA_23459-A_20230316_081502_part_001.png", []float64{0.90, 0.10}},
		{"COA_23459-A_20230316_081502_part_002.png", []float64{0.60, 0.96}},
		{"COA_23459-A_20230316_081502_part_003.png", []float64{0.10, 0.10}},
		{"COA_23459-B_20230317_081502_part_001.png", []float64{0.97, 0.97}},
	}
	for _, row := range rows {
		require.NoError(t, table.AddRow(row.name, row.scores))
	}
	return table
}

func TestSummarizeEffort(t *testing.T) {
	t.Parallel()

	rows := SummarizeEffort(newTestTable(t))
	require.Len(t, rows, 2)

	assert.Equal(t, "A", rows[0].Stn)
	assert.Equal(t, time.Date(2023, 3, 16, 0, 0, 0, 0, time.UTC), rows[0].Date)
	assert.Equal(t, 3, rows[0].Clips)
	assert.InDelta(t, 0.01, rows[0].Effort, 1e-9)
	assert.Equal(t, 1, rows[0].RecDay)

	assert.Equal(t, "B", rows[1].Stn)
	assert.Equal(t, 1, rows[1].Clips)
	assert.Equal(t, 2, rows[1].RecDay)
	assert.Equal(t, 1, rows[1].RecWeek)
}

func TestSummarizeEffortEmptyInput(t *testing.T) {
	t.Parallel()

	rows := SummarizeEffort(scores.NewTable([]string{"STOC_4Note"}))
	assert.Empty(t, rows)
}

func TestTallyAtThreshold(t *testing.T) {
	t.Parallel()

	table := newTestTable(t)

	tests := []struct {
		name      string
		threshold float64
		wantStnA  []int
		wantStnB  []int
	}{
		{name: "half", threshold: 0.5, wantStnA: []int{2, 1}, wantStnB: []int{1, 1}},
		{name: "tail", threshold: 0.95, wantStnA: []int{0, 1}, wantStnB: []int{1, 1}},
		{name: "inclusive boundary", threshold: 0.90, wantStnA: []int{1, 1}, wantStnB: []int{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rows := TallyAtThreshold(table, tt.threshold)
			require.Len(t, rows, 2)
			assert.Equal(t, tt.wantStnA, rows[0].Counts)
			assert.Equal(t, tt.wantStnB, rows[1].Counts)
			for _, row := range rows {
				assert.InDelta(t, tt.threshold, row.Threshold, 1e-9)
			}
		})
	}
}

func TestDefaultThresholds(t *testing.T) {
	t.Parallel()

	thresholds := DefaultThresholds()
	require.Len(t, thresholds, 21)
	assert.InDelta(t, 0.05, thresholds[0], 1e-9)
	assert.InDelta(t, 0.95, thresholds[18], 1e-9)
	assert.InDelta(t, 0.98, thresholds[19], 1e-9)
	assert.InDelta(t, 0.99, thresholds[20], 1e-9)
}

func TestSummarizeDetections(t *testing.T) {
	t.Parallel()

	table := newTestTable(t)
	rows, err := SummarizeDetections(table, 4)
	require.NoError(t, err)

	// One row per (threshold, station-day) combination.
	require.Len(t, rows, len(DefaultThresholds())*2)

	// Sorted by threshold first, then by group; effort is broadcast
	// across thresholds.
	assert.InDelta(t, 0.05, rows[0].Threshold, 1e-9)
	assert.Equal(t, "A", rows[0].Stn)
	assert.Equal(t, 3, rows[0].Clips)
	assert.Equal(t, "B", rows[1].Stn)
	assert.Equal(t, 1, rows[1].Clips)

	last := rows[len(rows)-1]
	assert.InDelta(t, 0.99, last.Threshold, 1e-9)
	assert.Equal(t, "B", last.Stn)
	assert.Equal(t, 1, last.Clips)
	// No score reaches 0.99, so the tally joins in as zeros.
	assert.Equal(t, []int{0, 0}, last.Counts)

	for _, row := range rows {
		if row.Threshold == 0.5 && row.Stn == "A" {
			assert.Equal(t, []int{2, 1}, row.Counts)
		}
	}
}

func TestPoolSize(t *testing.T) {
	t.Parallel()

	assert.LessOrEqual(t, PoolSize(0), MaxDefaultWorkers)
	assert.GreaterOrEqual(t, PoolSize(0), 1)
	assert.Equal(t, 1, PoolSize(1))
	// Requests beyond the host's cores are clamped.
	assert.Equal(t, runtime.NumCPU(), PoolSize(1<<20))
}
