package review

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/pnwcnet/pnwcnet-go/internal/errors"
	"github.com/pnwcnet/pnwcnet-go/internal/scores"
	"github.com/pnwcnet/pnwcnet-go/internal/sources"
	"github.com/pnwcnet/pnwcnet-go/internal/summary"
)

// KscopeColumns is the fixed column order of the Kaleidoscope export.
var KscopeColumns = []string{
	"FOLDER", "IN_FILE", "PART", "CHANNEL", "OFFSET",
	"DURATION", "DATE", "TIME", "OFFSET_MMSS", "TOP1MATCH", "TOP1DIST",
	"THRESHOLD", "PRIORITY", "SORT", "AUTO_TAG", "VOCALIZATIONS", "MANUAL_ID",
}

// KscopeRow is one apparent detection formatted for browsing and tagging
// in Wildlife Acoustics' Kaleidoscope.
type KscopeRow struct {
	Folder        string
	InFile        string
	Part          string
	Channel       int
	Offset        int // seconds into the source file
	Duration      int // clip length, seconds
	Date          string // MM-DD-YYYY at clip start
	Time          string // HH:MM:SS at clip start
	OffsetMMSS    string // human-readable offset
	Top1Match     string
	Top1Dist      float64
	Threshold     string
	Priority      int
	Sort          string // stable human-browsing order key
	AutoTag       string
	Vocalizations int
	ManualID      string // left empty for the reviewer to fill in
}

// ExportOptions configures the Kaleidoscope export.
type ExportOptions struct {
	TopDir             string    // root of the source audio tree
	Version            string    // model version, for default criteria
	Criteria           *Criteria // nil uses DefaultCriteria(Version)
	Timescale          string    // "weekly" (default) or "daily" SORT keys
	InferSourceFolders bool      // resolve folders from clip names, not the inventory
	SourcePrefix       string    // prefix for inferred folders
	FlacMode           bool      // source audio is .flac
}

var sourceStampPattern = regexp.MustCompile(`[0-9]{8}_[0-9]{6}`)

// BuildKscopeTable extracts apparent detections and formats them for
// Kaleidoscope. With no detections it returns an empty table; a clip
// whose source file cannot be uniquely resolved aborts the whole export
// (see sources.Resolve).
func BuildKscopeTable(t *scores.Table, opts ExportOptions) ([]KscopeRow, error) {
	criteria := opts.Criteria
	if criteria == nil {
		var err error
		criteria, err = DefaultCriteria(opts.Version)
		if err != nil {
			return nil, err
		}
	}

	reviewRows := BuildReviewTable(t, criteria)
	if len(reviewRows) == 0 {
		return []KscopeRow{}, nil
	}

	clipNames := make([]string, len(reviewRows))
	for i := range reviewRows {
		clipNames[i] = reviewRows[i].Filename
	}

	mode := sources.ModeFromSourceFiles
	if opts.InferSourceFolders {
		mode = sources.ModeFromClipNames
	}
	mappings, err := sources.Resolve(clipNames, mode, opts.TopDir, opts.SourcePrefix, opts.FlacMode)
	if err != nil {
		return nil, err
	}
	mappingByClip := make(map[string]sources.Mapping, len(mappings))
	for _, m := range mappings {
		mappingByClip[m.Filename] = m
	}

	kscopeRows := make([]KscopeRow, 0, len(reviewRows))
	for i := range reviewRows {
		row := &reviewRows[i]
		mapping, ok := mappingByClip[row.Filename]
		if !ok || mapping.Part == "" {
			// Inner join: clips without a usable source mapping drop out.
			continue
		}
		part, err := strconv.Atoi(mapping.Part)
		if err != nil {
			continue
		}
		offset := summary.ClipSeconds * (part - 1)

		clipDate, clipTime, err := clipTimestamp(mapping.InFile, offset)
		if err != nil {
			return nil, err
		}

		kscopeRows = append(kscopeRows, KscopeRow{
			Folder:        mapping.Folder,
			InFile:        mapping.InFile,
			Part:          mapping.Part,
			Channel:       1,
			Offset:        offset,
			Duration:      summary.ClipSeconds,
			Date:          clipDate,
			Time:          clipTime,
			OffsetMMSS:    readableOffset(offset),
			Top1Match:     row.Top1Match,
			Top1Dist:      math.Round(row.Top1Dist*1e5) / 1e5,
			Threshold:     row.Threshold,
			Priority:      row.Priority,
			Sort:          sortKey(row, opts.Timescale),
			AutoTag:       row.AutoTag,
			Vocalizations: 1,
		})
	}

	sort.Slice(kscopeRows, func(i, j int) bool {
		if kscopeRows[i].Top1Match != kscopeRows[j].Top1Match {
			return kscopeRows[i].Top1Match < kscopeRows[j].Top1Match
		}
		if kscopeRows[i].InFile != kscopeRows[j].InFile {
			return kscopeRows[i].InFile < kscopeRows[j].InFile
		}
		return kscopeRows[i].Part < kscopeRows[j].Part
	})
	return kscopeRows, nil
}

// clipTimestamp computes the absolute date and time of a clip from the
// YYYYMMDD_HHMMSS stamp embedded in its source filename plus the clip's
// offset within the file.
func clipTimestamp(sourceFile string, offsetSeconds int) (clipDate, clipTime string, err error) {
	stamp := sourceStampPattern.FindString(sourceFile)
	if stamp == "" {
		return "", "", errors.Newf("source file %s has no YYYYMMDD_HHMMSS timestamp", sourceFile).
			Component("review").
			Category(errors.CategoryFileParsing).
			Build()
	}
	start, err := time.Parse("20060102_150405", stamp)
	if err != nil {
		return "", "", fmt.Errorf("source file %s has malformed timestamp %s: %w", sourceFile, stamp, err)
	}
	at := start.Add(time.Duration(offsetSeconds) * time.Second)
	return at.Format("01-02-2006"), at.Format("15:04:05"), nil
}

// readableOffset renders an offset in seconds as H:MM:SS when an hour or
// more, MM:SS otherwise.
func readableOffset(offsetSeconds int) string {
	h := offsetSeconds / 3600
	m := offsetSeconds % 3600 / 60
	s := offsetSeconds % 60
	if offsetSeconds >= 3600 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// sortKey builds the SORT field used for stable human browsing order,
// grouping by priority, class, station and recording week or day.
func sortKey(row *Row, timescale string) string {
	if timescale == "daily" {
		return fmt.Sprintf("%03d_%s_Stn_%s_Day_%03d", row.Priority, row.Top1Match, row.Stn, row.RecDay)
	}
	return fmt.Sprintf("%03d_%s_Stn_%s_Week_%02d", row.Priority, row.Top1Match, row.Stn, row.RecWeek)
}
