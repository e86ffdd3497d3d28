// Package clipinfo extracts recording metadata from the names of
// spectrogram clip files. Clip names follow the convention
//
//	[Area]_[Site]-[Stn]_[YYYYMMDD]_[HHMMSS]_part_[NNN].png
//
// e.g. COA_23459-C_20230316_081502_part_001.png. Parsing is deliberately
// tolerant: a single oddly named clip must not abort summarization of a
// whole batch, so malformed names yield a partially populated record
// instead of an error.
package clipinfo

import (
	"regexp"
	"time"
)

const timestampLayout = "20060102_150405"

var (
	stampPattern = regexp.MustCompile(`_([0-9]{8}_[0-9]{6})_part_[0-9]+\.[A-Za-z0-9]+$`)
	partPattern  = regexp.MustCompile(`part_([0-9]+)`)
	sepPattern   = regexp.MustCompile(`[-._]`)
)

// ClipInfo describes a single clip. For a malformed name Timestamp is the
// zero time and the string fields are empty; callers must tolerate such
// records.
type ClipInfo struct {
	Area      string
	Site      string
	Stn       string
	Timestamp time.Time
	Date      time.Time // Timestamp truncated to its calendar date
	Part      string    // zero-padded segment index, e.g. "004"
}

// Valid reports whether the clip name carried a parseable timestamp.
func (c ClipInfo) Valid() bool {
	return !c.Timestamp.IsZero()
}

// Parse extracts clip metadata from a filename. It never fails: names
// without the trailing _YYYYMMDD_HHMMSS_part_NNN.ext suffix produce a
// zero-valued record, and names whose prefix does not split into exactly
// Area/Site/Stn keep the whole prefix as Stn.
func Parse(clipName string) ClipInfo {
	m := stampPattern.FindStringSubmatchIndex(clipName)
	if m == nil {
		return ClipInfo{}
	}

	stamp, err := time.Parse(timestampLayout, clipName[m[2]:m[3]])
	if err != nil {
		return ClipInfo{}
	}

	info := ClipInfo{
		Timestamp: stamp,
		Date:      stamp.Truncate(24 * time.Hour),
	}

	prefix := clipName[:m[0]]
	if parts := sepPattern.Split(prefix, -1); len(parts) == 3 {
		info.Area, info.Site, info.Stn = parts[0], parts[1], parts[2]
	} else {
		info.Stn = prefix
	}

	if pm := partPattern.FindStringSubmatch(clipName); pm != nil {
		info.Part = pm[1]
	}
	return info
}
