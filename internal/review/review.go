package review

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pnwcnet/pnwcnet-go/internal/clipinfo"
	"github.com/pnwcnet/pnwcnet-go/internal/scores"
)

// Row is one clip surfaced for review: the highest-priority class whose
// threshold the clip cleared, plus clip metadata and the clip's full
// score vector (parallel to the owning table's Classes).
type Row struct {
	Filename  string
	Top1Match string  // winning class code
	Top1Dist  float64 // winning class's score
	Threshold string  // threshold that selected the winning class
	Priority  int     // 1-based rank of the winning class in the criteria
	Area      string
	Site      string
	Stn       string
	Part      string
	RecDay    int
	RecWeek   int
	AutoTag   string // all matched classes, deduplicated, '+'-joined, alphabetical
	Scores    []float64
}

// BuildReviewTable selects every clip that clears at least one class's
// threshold and reduces multiple matches per clip to a single row.
//
// Classes are evaluated in criteria order; a clip matching several
// classes keeps the match of the earliest (highest-priority) class, while
// AUTO_TAG records every class it matched. No clip clearing any threshold
// is a valid outcome and returns an empty table. Output is sorted by
// (TOP1MATCH, Filename).
func BuildReviewTable(t *scores.Table, criteria *Criteria) []Row {
	type match struct {
		class     string
		score     float64
		threshold string
		priority  int
	}

	matches := make(map[string][]match)
	rowByName := make(map[string]scores.Row, len(t.Rows))

	for i, class := range criteria.Classes() {
		threshold, _ := criteria.Threshold(class)
		col, ok := t.ClassIndex(class)
		if !ok {
			continue
		}
		for _, row := range t.ApparentDetections(class, threshold) {
			matches[row.Filename] = append(matches[row.Filename], match{
				class:     class,
				score:     row.Scores[col],
				threshold: formatThreshold(threshold),
				priority:  i + 1,
			})
			rowByName[row.Filename] = row
		}
	}

	if len(matches) == 0 {
		return []Row{}
	}

	clips := make(map[string]clipinfo.Clip)
	for _, clip := range clipinfo.BuildClipTable(t) {
		clips[clip.Filename] = clip
	}

	reviewRows := make([]Row, 0, len(matches))
	for filename, clipMatches := range matches {
		// Criteria order makes priorities ascend within clipMatches, so
		// the first entry is the winner.
		best := clipMatches[0]

		tagSet := make(map[string]struct{}, len(clipMatches))
		for _, m := range clipMatches {
			tagSet[m.class] = struct{}{}
		}
		tags := make([]string, 0, len(tagSet))
		for class := range tagSet {
			tags = append(tags, class)
		}
		sort.Strings(tags)

		clip := clips[filename]
		reviewRows = append(reviewRows, Row{
			Filename:  filename,
			Top1Match: best.class,
			Top1Dist:  best.score,
			Threshold: best.threshold,
			Priority:  best.priority,
			Area:      clip.Area,
			Site:      clip.Site,
			Stn:       clip.Stn,
			Part:      clip.Part,
			RecDay:    clip.RecDay,
			RecWeek:   clip.RecWeek,
			AutoTag:   strings.Join(tags, "+"),
			Scores:    rowByName[filename].Scores,
		})
	}

	sort.Slice(reviewRows, func(i, j int) bool {
		if reviewRows[i].Top1Match != reviewRows[j].Top1Match {
			return reviewRows[i].Top1Match < reviewRows[j].Top1Match
		}
		return reviewRows[i].Filename < reviewRows[j].Filename
	})
	return reviewRows
}

func formatThreshold(t float64) string {
	return strconv.FormatFloat(t, 'g', -1, 64)
}
