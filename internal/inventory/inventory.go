// Package inventory builds and persists tables of long-form audio files
// found under a survey directory. One inventory row records a file's
// folder (relative to the survey root), name, size in bytes, and duration
// in seconds. The source resolver joins clips back to their source
// recordings through this table.
package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pnwcnet/pnwcnet-go/internal/logging"
)

var logger = func() *slog.Logger {
	if l := logging.ForService("inventory"); l != nil {
		return l
	}
	return slog.Default()
}

// Entry describes one audio file under the survey root.
type Entry struct {
	Folder   string  // folder containing the file, relative to the root
	Filename string  // base name including extension
	Size     int64   // bytes
	Duration float64 // seconds, -1 when the header could not be read
}

// Stem returns the filename without its extension, the join key the
// source resolver matches clips against.
func (e Entry) Stem() string {
	return strings.TrimSuffix(e.Filename, filepath.Ext(e.Filename))
}

// Path returns the file path for an inventory CSV of ext files under
// topDir, e.g. <topDir>/<dirname>_wav_inventory.csv.
func Path(topDir, ext string) string {
	name := fmt.Sprintf("%s_%s_inventory.csv", filepath.Base(topDir), strings.TrimPrefix(ext, "."))
	return filepath.Join(topDir, name)
}

// FindFiles walks the tree rooted at topDir and returns sorted paths of
// files with the given extension.
func FindFiles(topDir, ext string) ([]string, error) {
	ext = "." + strings.TrimPrefix(ext, ".")
	var found []string
	err := filepath.WalkDir(topDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ext) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", topDir, err)
	}
	sort.Strings(found)
	return found, nil
}

// Build inventories all audio files with the given extension under topDir.
// Files whose headers cannot be parsed keep a duration of -1 rather than
// failing the whole build.
func Build(topDir, ext string) ([]Entry, error) {
	paths, err := FindFiles(topDir, ext)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		rel, err := filepath.Rel(topDir, filepath.Dir(path))
		if err != nil {
			return nil, fmt.Errorf("failed to relativize %s: %w", path, err)
		}
		duration, err := AudioDuration(path)
		if err != nil {
			logger().Warn("could not read audio duration", "path", path, "error", err)
			duration = -1
		}
		entries = append(entries, Entry{
			Folder:   rel,
			Filename: filepath.Base(path),
			Size:     info.Size(),
			Duration: duration,
		})
	}
	return entries, nil
}

// Ensure returns the inventory of topDir, loading the existing inventory
// CSV when present and otherwise building and writing a fresh one.
func Ensure(topDir, ext string) ([]Entry, error) {
	invPath := Path(topDir, ext)
	if _, err := os.Stat(invPath); err == nil {
		return Load(invPath)
	}
	entries, err := Build(topDir, ext)
	if err != nil {
		return nil, err
	}
	if err := Write(invPath, entries); err != nil {
		return nil, err
	}
	logger().Info("inventory written", "path", invPath, "files", len(entries))
	return entries, nil
}

// Load reads an inventory CSV written by Write.
func Load(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory %s: %w", path, err)
	}
	defer file.Close()

	cr := csv.NewReader(file)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory header: %w", err)
	}
	if len(header) < 4 || header[0] != "Folder" || header[1] != "Filename" {
		return nil, fmt.Errorf("unexpected inventory header in %s", path)
	}

	var entries []Entry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read inventory record: %w", err)
		}
		size, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad size %q in %s: %w", record[2], path, err)
		}
		duration, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			// Legacy inventories record "NA" for unreadable durations.
			duration = -1
		}
		entries = append(entries, Entry{
			Folder:   record[0],
			Filename: record[1],
			Size:     size,
			Duration: duration,
		})
	}
	return entries, nil
}

// Write writes an inventory CSV.
func Write(path string, entries []Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create inventory %s: %w", path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write([]string{"Folder", "Filename", "Size", "Duration"}); err != nil {
		return fmt.Errorf("failed to write inventory header: %w", err)
	}
	for _, e := range entries {
		record := []string{
			e.Folder,
			e.Filename,
			strconv.FormatInt(e.Size, 10),
			strconv.FormatFloat(e.Duration, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write inventory record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Summarize writes a human-readable inventory summary to w.
func Summarize(w io.Writer, entries []Entry) {
	var totalSeconds, totalBytes float64
	for _, e := range entries {
		if e.Duration > 0 {
			totalSeconds += e.Duration
		}
		totalBytes += float64(e.Size)
	}
	fmt.Fprintf(w, "\nFound %d audio files.\nTotal duration: %.1f h\nTotal size: %.1f GB\n\n",
		len(entries), totalSeconds/3600, totalBytes/(1024*1024*1024))
}
