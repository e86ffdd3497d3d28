package clipinfo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pnwcnet/pnwcnet-go/internal/scores"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		clipName string
		want     ClipInfo
	}{
		{
			name:     "well-formed clip name",
			clipName: "COA_23459-C_20230316_081502_part_001.png",
			want: ClipInfo{
				Area:      "COA",
				Site:      "23459",
				Stn:       "C",
				Timestamp: time.Date(2023, 3, 16, 8, 15, 2, 0, time.UTC),
				Date:      time.Date(2023, 3, 16, 0, 0, 0, 0, time.UTC),
				Part:      "001",
			},
		},
		{
			name:     "prefix with dots",
			clipName: "OLY.44102.B_20240501_120000_part_040.png",
			want: ClipInfo{
				Area:      "OLY",
				Site:      "44102",
				Stn:       "B",
				Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
				Date:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
				Part:      "040",
			},
		},
		{
			name:     "non-conforming prefix keeps whole prefix as station",
			clipName: "Station9_20230316_081502_part_002.png",
			want: ClipInfo{
				Stn:       "Station9",
				Timestamp: time.Date(2023, 3, 16, 8, 15, 2, 0, time.UTC),
				Date:      time.Date(2023, 3, 16, 0, 0, 0, 0, time.UTC),
				Part:      "002",
			},
		},
		{
			name:     "missing timestamp suffix degrades to empty record",
			clipName: "notaclip.png",
			want:     ClipInfo{},
		},
		{
			name:     "missing part marker degrades to empty record",
			clipName: "COA_23459-C_20230316_081502.png",
			want:     ClipInfo{},
		},
		{
			name:     "unparseable timestamp degrades to empty record",
			clipName: "COA_23459-C_20231399_081502_part_001.png",
			want:     ClipInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Parse(tt.clipName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildClipTable(t *testing.T) {
	t.Parallel()

	table := scores.NewTable([]string{"STOC_4Note"})
	names := []string{
		"COA_23459-C_20230316_081502_part_001.png",
		"COA_23459-C_20230318_081502_part_001.png",
		"COA_23459-C_20230324_081502_part_001.png",
		"garbage.png",
	}
	for _, name := range names {
		require.NoError(t, table.AddRow(name, []float64{0.1}))
	}

	clips := BuildClipTable(table)
	require.Len(t, clips, 4)

	// Day and week indices are relative to the earliest date in the batch.
	assert.Equal(t, 1, clips[0].RecDay)
	assert.Equal(t, 1, clips[0].RecWeek)
	assert.Equal(t, 3, clips[1].RecDay)
	assert.Equal(t, 1, clips[1].RecWeek)
	assert.Equal(t, 9, clips[2].RecDay)
	assert.Equal(t, 2, clips[2].RecWeek)

	// Malformed names stay in the table with zero indices.
	assert.False(t, clips[3].Valid())
	assert.Zero(t, clips[3].RecDay)
	assert.Zero(t, clips[3].RecWeek)

	for _, clip := range clips[:3] {
		assert.GreaterOrEqual(t, clip.RecDay, 1)
		assert.Equal(t, (clip.RecDay-1)/7+1, clip.RecWeek)
	}
}
