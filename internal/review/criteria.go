// Package review selects apparent detections from a class score table and
// shapes them into tables for human review, including the Kaleidoscope
// export format used by the spotted owl monitoring program.
package review

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/pnwcnet/pnwcnet-go/internal/cnet"
	"github.com/pnwcnet/pnwcnet-go/internal/errors"
)

// Default review thresholds: spotted owl classes get a low threshold so
// faint calls surface for review, everything else a high one.
const (
	defaultOwlThresholdV4 = 0.25
	defaultOwlThresholdV5 = 0.50
	defaultOtherThreshold = 0.95
)

// stocClasses are the northern spotted owl classes across model versions.
var stocClasses = []string{"STOC", "STOC_IRREG", "STOC_4Note", "STOC_Series"}

// Criteria is an ordered mapping of class code to score threshold. The
// insertion order defines review priority: the first class a clip matches
// wins ties.
type Criteria struct {
	classes    []string
	thresholds map[string]float64
}

// NewCriteria returns empty criteria.
func NewCriteria() *Criteria {
	return &Criteria{thresholds: make(map[string]float64)}
}

// Set adds a class with its threshold. A class keeps the priority of its
// first insertion; setting it again only updates the threshold.
func (c *Criteria) Set(class string, threshold float64) {
	if _, ok := c.thresholds[class]; !ok {
		c.classes = append(c.classes, class)
	}
	c.thresholds[class] = threshold
}

// Classes lists the class codes in priority order.
func (c *Criteria) Classes() []string {
	return c.classes
}

// Threshold returns the threshold for a class.
func (c *Criteria) Threshold(class string) (float64, bool) {
	t, ok := c.thresholds[class]
	return t, ok
}

// Len returns the number of classes.
func (c *Criteria) Len() int {
	return len(c.classes)
}

var (
	thresholdPattern = regexp.MustCompile(`[0-9]*\.[0-9]+`)
	classPattern     = regexp.MustCompile(`[A-Za-z0-9_]+`)
)

// ParseCriteriaString reads review criteria from a compact string of class
// code groups alternating with thresholds, e.g.
//
//	"BRMA1 0.5 STVA_8Note STVA_Series 0.95"
//
// Every class in a group gets the threshold that follows it. A string
// whose class groups and thresholds do not pair up (e.g. a trailing class
// with no threshold) is malformed and yields an error.
func ParseCriteriaString(critString string) (*Criteria, error) {
	var classGroups []string
	for _, group := range thresholdPattern.Split(critString, -1) {
		if classPattern.MatchString(group) {
			classGroups = append(classGroups, group)
		}
	}
	thresholds := thresholdPattern.FindAllString(critString, -1)

	if len(classGroups) != len(thresholds) {
		return nil, errors.Newf("criteria string %q has %d class groups but %d thresholds",
			critString, len(classGroups), len(thresholds)).
			Component("review").
			Category(errors.CategoryValidation).
			Build()
	}

	criteria := NewCriteria()
	for i, group := range classGroups {
		threshold, err := strconv.ParseFloat(thresholds[i], 64)
		if err != nil {
			return nil, fmt.Errorf("bad threshold %q: %w", thresholds[i], err)
		}
		for _, class := range classPattern.FindAllString(group, -1) {
			criteria.Set(class, threshold)
		}
	}
	return criteria, nil
}

// ReadSettingsFile reads review criteria from a two-column CSV file with
// header Class,Threshold.
func ReadSettingsFile(path string) (*Criteria, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open review settings %s: %w", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read review settings %s: %w", path, err)
	}
	if len(records) < 2 || records[0][0] != "Class" || len(records[0]) < 2 || records[0][1] != "Threshold" {
		return nil, errors.Newf("review settings %s is not a Class,Threshold table", path).
			Component("review").
			Category(errors.CategoryFileParsing).
			Build()
	}

	criteria := NewCriteria()
	for _, record := range records[1:] {
		if len(record) < 2 {
			return nil, errors.Newf("review settings %s has a short row", path).
				Component("review").
				Category(errors.CategoryFileParsing).
				Build()
		}
		threshold, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("review settings %s: bad threshold %q: %w", path, record[1], err)
		}
		criteria.Set(record[0], threshold)
	}
	return criteria, nil
}

// DefaultCriteria maps every class of the given model version to a review
// threshold the way the owl monitoring program historically has: spotted
// owl classes first at a low threshold, then all remaining classes in
// their canonical order at 0.95. The result is freshly built on every
// call; nothing shared is reordered.
func DefaultCriteria(version string) (*Criteria, error) {
	classNames, err := cnet.ClassNames(version)
	if err != nil {
		return nil, err
	}
	owlThreshold := defaultOwlThresholdV5
	if version == cnet.V4 {
		owlThreshold = defaultOwlThresholdV4
	}

	isOwl := make(map[string]bool, len(stocClasses))
	for _, class := range stocClasses {
		isOwl[class] = true
	}

	criteria := NewCriteria()
	for _, class := range classNames {
		if isOwl[class] {
			criteria.Set(class, owlThreshold)
		}
	}
	for _, class := range classNames {
		if !isOwl[class] {
			criteria.Set(class, defaultOtherThreshold)
		}
	}
	return criteria, nil
}

// ResolveCriteria turns the user-facing review settings value into
// criteria: empty means defaults for the model version, an existing file
// path is read as a settings CSV, anything else is parsed as a compact
// criteria string.
func ResolveCriteria(setting, version string) (*Criteria, error) {
	if setting == "" {
		return DefaultCriteria(version)
	}
	if _, err := os.Stat(setting); err == nil {
		return ReadSettingsFile(setting)
	}
	return ParseCriteriaString(setting)
}
