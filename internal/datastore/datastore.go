// Package datastore persists review detections and detection summaries to
// a SQLite database, so multi-season survey results can be queried without
// re-reading piles of CSV files.
package datastore

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pnwcnet/pnwcnet-go/internal/errors"
	"github.com/pnwcnet/pnwcnet-go/internal/review"
	"github.com/pnwcnet/pnwcnet-go/internal/summary"
)

// Detection is one clip surfaced for review.
type Detection struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Run       string `gorm:"index"` // processing run label, normally the score file stem
	Filename  string `gorm:"index"`
	Top1Match string `gorm:"index"`
	Top1Dist  float64
	Threshold string
	Priority  int
	Area      string
	Site      string
	Stn       string `gorm:"index"`
	Part      string
	RecDay    int
	RecWeek   int
	AutoTag   string
	CreatedAt time.Time
}

// SummaryCount is one (station-day, threshold, class) apparent-detection
// count, the long-format unpivot of the detection summary table.
type SummaryCount struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Run       string `gorm:"index"`
	Area      string
	Site      string
	Stn       string `gorm:"index"`
	Date      string `gorm:"index"`
	RecDay    int
	RecWeek   int
	Clips     int
	Effort    float64
	Threshold float64
	Class     string `gorm:"index"`
	Count     int
	CreatedAt time.Time
}

// Store wraps the SQLite connection.
type Store struct {
	DB *gorm.DB
}

// Open opens (creating if needed) the SQLite database at path and
// migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Newf("failed to open SQLite database %s: %v", path, err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	if err := db.AutoMigrate(&Detection{}, &SummaryCount{}); err != nil {
		return nil, errors.Newf("failed to migrate database schema: %v", err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return &Store{DB: db}, nil
}

// SaveReview stores the rows of one review run.
func (s *Store) SaveReview(run string, rows []review.Row) error {
	if s.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	detections := make([]Detection, len(rows))
	for i := range rows {
		detections[i] = Detection{
			Run:       run,
			Filename:  rows[i].Filename,
			Top1Match: rows[i].Top1Match,
			Top1Dist:  rows[i].Top1Dist,
			Threshold: rows[i].Threshold,
			Priority:  rows[i].Priority,
			Area:      rows[i].Area,
			Site:      rows[i].Site,
			Stn:       rows[i].Stn,
			Part:      rows[i].Part,
			RecDay:    rows[i].RecDay,
			RecWeek:   rows[i].RecWeek,
			AutoTag:   rows[i].AutoTag,
		}
	}
	if len(detections) == 0 {
		return nil
	}
	if err := s.DB.CreateInBatches(detections, 200).Error; err != nil {
		return errors.Newf("failed to save review detections: %v", err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("run", run).
			Build()
	}
	return nil
}

// SaveSummary stores a detection summary in long format, one record per
// (group, threshold, class).
func (s *Store) SaveSummary(run string, rows []summary.SummaryRow, classes []string) error {
	if s.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	records := make([]SummaryCount, 0, len(rows)*len(classes))
	for i := range rows {
		for j, class := range classes {
			records = append(records, SummaryCount{
				Run:       run,
				Area:      rows[i].Area,
				Site:      rows[i].Site,
				Stn:       rows[i].Stn,
				Date:      rows[i].Date.Format("2006-01-02"),
				RecDay:    rows[i].RecDay,
				RecWeek:   rows[i].RecWeek,
				Clips:     rows[i].Clips,
				Effort:    rows[i].Effort,
				Threshold: rows[i].Threshold,
				Class:     class,
				Count:     rows[i].Counts[j],
			})
		}
	}
	if len(records) == 0 {
		return nil
	}
	if err := s.DB.CreateInBatches(records, 500).Error; err != nil {
		return errors.Newf("failed to save detection summary: %v", err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("run", run).
			Build()
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
