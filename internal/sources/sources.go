// Package sources maps spectrogram clips back to the long-form audio
// files they were sliced from. Downstream offset and timestamp math is
// only safe when every clip resolves to exactly one source file, so
// ambiguous or missing sources fail the whole resolution rather than
// dropping rows.
package sources

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/pnwcnet/pnwcnet-go/internal/clipinfo"
	"github.com/pnwcnet/pnwcnet-go/internal/errors"
	"github.com/pnwcnet/pnwcnet-go/internal/inventory"
	"github.com/pnwcnet/pnwcnet-go/internal/logging"
)

// Resolution modes.
const (
	ModeFromSourceFiles = "from_source_files" // join clips against the audio inventory
	ModeFromClipNames   = "from_clip_names"   // build folders from station codes, no inventory
)

var partPattern = regexp.MustCompile(`part_[0-9]+`)

var logger = func() *slog.Logger {
	if l := logging.ForService("sources"); l != nil {
		return l
	}
	return slog.Default()
}

// Mapping ties one clip to its source audio file.
type Mapping struct {
	Folder   string // source folder, relative to the survey root or inferred
	InFile   string // source audio filename
	Part     string // zero-padded segment index from the clip name, e.g. "004"
	Filename string // clip filename
}

// SourceFile derives the source audio filename and part marker from a
// clip name. Clips without a part_NNN marker return two empty strings,
// signalling "no pattern match" rather than an error.
func SourceFile(clipName, ext string) (sourceFile, part string) {
	part = partPattern.FindString(clipName)
	if part == "" {
		return "", ""
	}
	base := clipName
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	stem, _, _ := strings.Cut(base, "_part")
	return stem + ext, part
}

// Resolve maps every clip in clipNames to a source file.
//
// In ModeFromSourceFiles the clips are joined against the audio inventory
// of topDir (built on demand when the inventory CSV is absent); a clip
// matching zero or more than one inventory file aborts the resolution.
// In ModeFromClipNames the folder is constructed from the station code
// embedded in each clip name plus an optional prefix, without consulting
// any inventory.
func Resolve(clipNames []string, mode, topDir, prefix string, flacMode bool) ([]Mapping, error) {
	ext := ".wav"
	if flacMode {
		ext = ".flac"
	}

	switch mode {
	case ModeFromSourceFiles:
		entries, err := inventory.Ensure(topDir, ext)
		if err != nil {
			return nil, err
		}
		return resolveFromInventory(clipNames, entries, ext)
	case ModeFromClipNames:
		return resolveFromClipNames(clipNames, prefix, ext), nil
	default:
		return nil, errors.Newf("unknown source resolution mode %q", mode).
			Component("sources").
			Category(errors.CategoryValidation).
			Build()
	}
}

// resolveFromInventory joins clips with inventory entries on the source
// file stem. Every clip must match exactly one entry.
func resolveFromInventory(clipNames []string, entries []inventory.Entry, ext string) ([]Mapping, error) {
	byStem := make(map[string][]inventory.Entry, len(entries))
	for _, e := range entries {
		byStem[e.Stem()] = append(byStem[e.Stem()], e)
	}

	mappings := make([]Mapping, 0, len(clipNames))
	for _, clip := range clipNames {
		sourceFile, part := SourceFile(clip, ext)
		part = strings.TrimPrefix(part, "part_")
		stem := strings.TrimSuffix(sourceFile, ext)
		matches := byStem[stem]
		if len(matches) != 1 {
			logger().Warn("source files could not be located for all clips, or clips map to duplicate filenames",
				"clip", clip, "stem", stem, "matches", len(matches))
			return nil, errors.Newf("clip %s matched %d source files", clip, len(matches)).
				Component("sources").
				Category(errors.CategoryNotFound).
				Context("stem", stem).
				Build()
		}
		mappings = append(mappings, Mapping{
			Folder:   matches[0].Folder,
			InFile:   matches[0].Filename,
			Part:     part,
			Filename: clip,
		})
	}
	return mappings, nil
}

func resolveFromClipNames(clipNames []string, prefix, ext string) []Mapping {
	mappings := make([]Mapping, 0, len(clipNames))
	for _, clip := range clipNames {
		sourceFile, part := SourceFile(clip, ext)
		mappings = append(mappings, Mapping{
			Folder:   prefix + clipinfo.Parse(clip).Stn,
			InFile:   sourceFile,
			Part:     strings.TrimPrefix(part, "part_"),
			Filename: clip,
		})
	}
	return mappings
}
