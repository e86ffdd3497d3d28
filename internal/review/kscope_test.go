package review

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pnwcnet/pnwcnet-go/internal/cnet"
	"github.com/pnwcnet/pnwcnet-go/internal/inventory"
)

func TestReadableOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		offset int
		want   string
	}{
		{offset: 0, want: "00:00"},
		{offset: 36, want: "00:36"},
		{offset: 204, want: "03:24"},
		{offset: 3599, want: "59:59"},
		{offset: 3600, want: "01:00:00"},
		{offset: 3636, want: "01:00:36"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, readableOffset(tt.offset), "offset %d", tt.offset)
	}
}

func TestClipTimestamp(t *testing.T) {
	t.Parallel()

	clipDate, clipTime, err := clipTimestamp("COA_23459-C_20230316_081502.wav", 36)
	require.NoError(t, err)
	assert.Equal(t, "03-16-2023", clipDate)
	assert.Equal(t, "08:15:38", clipTime)

	// Offsets roll over midnight into the next date.
	clipDate, clipTime, err = clipTimestamp("COA_23459-C_20230316_235950.wav", 60)
	require.NoError(t, err)
	assert.Equal(t, "03-17-2023", clipDate)
	assert.Equal(t, "00:00:50", clipTime)

	_, _, err = clipTimestamp("nostamp.wav", 0)
	require.Error(t, err)
}

func TestBuildKscopeTableFromClipNames(t *testing.T) {
	t.Parallel()

	classNames, err := cnet.ClassNames(cnet.V5)
	require.NoError(t, err)

	table := newTestTable(t, classNames, nil)
	surveyTone := mustIndex(t, classNames, "Survey_Tone")
	for _, part := range []string{"004", "018", "040"} {
		rowScores := make([]float64, len(classNames))
		rowScores[surveyTone] = 0.97
		require.NoError(t, table.AddRow("COA_23459-C_20230316_081502_part_"+part+".png", rowScores))
	}

	criteria := NewCriteria()
	criteria.Set("Survey_Tone", 0.5)

	rows, err := BuildKscopeTable(table, ExportOptions{
		Version:            cnet.V5,
		Criteria:           criteria,
		Timescale:          "weekly",
		InferSourceFolders: true,
		SourcePrefix:       "Stn_",
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	wantParts := []string{"004", "018", "040"}
	wantOffsets := []int{36, 204, 468}
	for i, row := range rows {
		assert.Equal(t, "Survey_Tone", row.Top1Match)
		assert.Equal(t, wantParts[i], row.Part)
		assert.Equal(t, wantOffsets[i], row.Offset)
		assert.Equal(t, "Stn_C", row.Folder)
		assert.Equal(t, "COA_23459-C_20230316_081502.wav", row.InFile)
		assert.Equal(t, 1, row.Channel)
		assert.Equal(t, 12, row.Duration)
		assert.Equal(t, "03-16-2023", row.Date)
		assert.Equal(t, 1, row.Vocalizations)
		assert.Equal(t, "", row.ManualID)
		assert.Equal(t, "001_Survey_Tone_Stn_C_Week_01", row.Sort)
	}
	assert.Equal(t, "08:15:38", rows[0].Time)
	assert.Equal(t, "00:36", rows[0].OffsetMMSS)
}

func TestBuildKscopeTableFromSourceFiles(t *testing.T) {
	t.Parallel()

	topDir := t.TempDir()
	entries := []inventory.Entry{
		{Folder: "C", Filename: "COA_23459-C_20230316_081502.wav", Size: 1024, Duration: 3600},
	}
	require.NoError(t, inventory.Write(inventory.Path(topDir, ".wav"), entries))

	table := newTestTable(t, []string{"STOC_4Note"}, nil)
	require.NoError(t, table.AddRow("COA_23459-C_20230316_081502_part_004.png", []float64{0.8}))

	criteria := NewCriteria()
	criteria.Set("STOC_4Note", 0.5)

	rows, err := BuildKscopeTable(table, ExportOptions{
		TopDir:    topDir,
		Version:   cnet.V5,
		Criteria:  criteria,
		Timescale: "daily",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "C", rows[0].Folder)
	assert.Equal(t, "COA_23459-C_20230316_081502.wav", rows[0].InFile)
	assert.Equal(t, "001_STOC_4Note_Stn_C_Day_001", rows[0].Sort)
}

func TestBuildKscopeTableUnresolvableSourceFails(t *testing.T) {
	t.Parallel()

	// Empty inventory: the clip's source cannot be located, which must
	// abort the export rather than guess at offsets.
	topDir := t.TempDir()
	require.NoError(t, inventory.Write(inventory.Path(topDir, ".wav"), nil))

	table := newTestTable(t, []string{"STOC_4Note"}, nil)
	require.NoError(t, table.AddRow("COA_23459-C_20230316_081502_part_004.png", []float64{0.8}))

	criteria := NewCriteria()
	criteria.Set("STOC_4Note", 0.5)

	_, err := BuildKscopeTable(table, ExportOptions{
		TopDir:   topDir,
		Version:  cnet.V5,
		Criteria: criteria,
	})
	require.Error(t, err)
}

func TestBuildKscopeTableEmptyResult(t *testing.T) {
	t.Parallel()

	table := newTestTable(t, []string{"STOC_4Note"}, nil)
	require.NoError(t, table.AddRow("COA_23459-C_20230316_081502_part_004.png", []float64{0.1}))

	criteria := NewCriteria()
	criteria.Set("STOC_4Note", 0.5)

	rows, err := BuildKscopeTable(table, ExportOptions{
		TopDir:   filepath.Join(t.TempDir(), "unused"),
		Version:  cnet.V5,
		Criteria: criteria,
	})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func mustIndex(t *testing.T, names []string, class string) int {
	t.Helper()
	for i, name := range names {
		if name == class {
			return i
		}
	}
	t.Fatalf("class %s not found", class)
	return -1
}
