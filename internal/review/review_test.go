package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pnwcnet/pnwcnet-go/internal/scores"
)

func newTestTable(t *testing.T, classes []string, rows map[string][]float64) *scores.Table {
	t.Helper()
	table := scores.NewTable(classes)
	for name, rowScores := range rows {
		require.NoError(t, table.AddRow(name, rowScores))
	}
	return table
}

func TestBuildReviewTablePriority(t *testing.T) {
	t.Parallel()

	// A is listed before B, so it wins even at a higher threshold.
	criteria := NewCriteria()
	criteria.Set("A", 0.9)
	criteria.Set("B", 0.5)

	table := newTestTable(t, []string{"A", "B"}, map[string][]float64{
		"COA_23459-C_20230316_081502_part_001.png": {0.95, 0.60},
	})

	rows := BuildReviewTable(table, criteria)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "A", row.Top1Match)
	assert.InDelta(t, 0.95, row.Top1Dist, 1e-9)
	assert.Equal(t, 1, row.Priority)
	assert.Equal(t, "A+B", row.AutoTag)
	assert.Equal(t, "0.9", row.Threshold)
	assert.Equal(t, "C", row.Stn)
	assert.Equal(t, "001", row.Part)
}

func TestBuildReviewTableDedupOneRowPerClip(t *testing.T) {
	t.Parallel()

	criteria := NewCriteria()
	criteria.Set("A", 0.5)
	criteria.Set("B", 0.5)
	criteria.Set("C", 0.5)

	table := newTestTable(t, []string{"A", "B", "C"}, map[string][]float64{
		"COA_23459-C_20230316_081502_part_001.png": {0.9, 0.9, 0.9},
		"COA_23459-C_20230316_081502_part_002.png": {0.1, 0.9, 0.9},
		"COA_23459-C_20230316_081502_part_003.png": {0.1, 0.1, 0.9},
	})

	rows := BuildReviewTable(table, criteria)
	require.Len(t, rows, 3)

	seen := make(map[string]bool)
	for _, row := range rows {
		assert.False(t, seen[row.Filename], "filename %s repeated", row.Filename)
		seen[row.Filename] = true
	}

	byName := make(map[string]Row)
	for _, row := range rows {
		byName[row.Filename] = row
	}
	assert.Equal(t, "A", byName["COA_23459-C_20230316_081502_part_001.png"].Top1Match)
	assert.Equal(t, "A+B+C", byName["COA_23459-C_20230316_081502_part_001.png"].AutoTag)
	assert.Equal(t, "B", byName["COA_23459-C_20230316_081502_part_002.png"].Top1Match)
	assert.Equal(t, 2, byName["COA_23459-C_20230316_081502_part_002.png"].Priority)
	assert.Equal(t, "C", byName["COA_23459-C_20230316_081502_part_003.png"].Top1Match)
}

func TestBuildReviewTableSortedByClassThenFilename(t *testing.T) {
	t.Parallel()

	criteria := NewCriteria()
	criteria.Set("B", 0.5)
	criteria.Set("A", 0.5)

	table := newTestTable(t, []string{"A", "B"}, map[string][]float64{
		"COA_23459-C_20230316_081502_part_002.png": {0.9, 0.1},
		"COA_23459-C_20230316_081502_part_001.png": {0.9, 0.1},
		"COA_23459-C_20230316_081502_part_003.png": {0.1, 0.9},
	})

	rows := BuildReviewTable(table, criteria)
	require.Len(t, rows, 3)
	assert.Equal(t, "A", rows[0].Top1Match)
	assert.Equal(t, "COA_23459-C_20230316_081502_part_001.png", rows[0].Filename)
	assert.Equal(t, "COA_23459-C_20230316_081502_part_002.png", rows[1].Filename)
	assert.Equal(t, "B", rows[2].Top1Match)
}

func TestBuildReviewTableEmptyResult(t *testing.T) {
	t.Parallel()

	criteria := NewCriteria()
	criteria.Set("A", 0.9)

	table := newTestTable(t, []string{"A"}, map[string][]float64{
		"COA_23459-C_20230316_081502_part_001.png": {0.1},
	})

	rows := BuildReviewTable(table, criteria)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestBuildReviewTableIgnoresUnknownCriteriaClasses(t *testing.T) {
	t.Parallel()

	criteria := NewCriteria()
	criteria.Set("NOT_A_CLASS", 0.5)
	criteria.Set("A", 0.5)

	table := newTestTable(t, []string{"A"}, map[string][]float64{
		"COA_23459-C_20230316_081502_part_001.png": {0.9},
	})

	rows := BuildReviewTable(table, criteria)
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Top1Match)
	// Priority still reflects the criteria position of the winning class.
	assert.Equal(t, 2, rows[0].Priority)
}
