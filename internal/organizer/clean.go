package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jellydator/validation"
)

// CleanOptions configures one clean run.
type CleanOptions struct {
	Dir           string
	Pattern       string // glob matched against file names; empty means "*"
	OlderThanDays int    // 0 disables the age filter
	DryRun        bool
}

func (opts CleanOptions) Validate() error {
	err := validation.ValidateStruct(&opts,
		validation.Field(&opts.Dir, validation.Required),
		validation.Field(&opts.OlderThanDays, validation.Min(0)),
	)
	if err != nil {
		return fmt.Errorf("invalid clean options: %w", err)
	}
	if opts.Pattern != "" {
		return checkPatterns([]string{opts.Pattern})
	}
	return nil
}

// CleanResult reports what a clean run removed, or would remove in dry-run
// mode. Candidates is only populated for dry runs.
type CleanResult struct {
	Files      int
	Bytes      int64
	Candidates []string
	DryRun     bool
}

// Clean removes files in the top level of a directory that match the pattern
// and, when an age filter is set, were last modified at least that many days
// ago. Directories are never touched. A dry run only reports candidates.
func (o *Organizer) Clean(opts CleanOptions) (*CleanResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	dir, err := resolveDir(opts.Dir)
	if err != nil {
		return nil, err
	}

	pattern := opts.Pattern
	if pattern == "" {
		pattern = "*"
	}

	o.log.Info().
		Str("dir", dir).
		Str("pattern", pattern).
		Int("older_than_days", opts.OlderThanDays).
		Bool("dry_run", opts.DryRun).
		Msg("cleaning directory")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -opts.OlderThanDays)

	var candidates []string
	var sizes []int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := doublestar.Match(pattern, entry.Name()); !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if opts.OlderThanDays > 0 && info.ModTime().After(cutoff) {
			continue
		}

		candidates = append(candidates, filepath.Join(dir, entry.Name()))
		sizes = append(sizes, info.Size())
	}

	result := &CleanResult{DryRun: opts.DryRun}

	if opts.DryRun {
		result.Candidates = candidates
		result.Files = len(candidates)
		for _, size := range sizes {
			result.Bytes += size
		}
		o.log.Info().Int("files", result.Files).Int64("bytes", result.Bytes).Msg("dry run, nothing removed")
		return result, nil
	}

	for i, path := range candidates {
		if err := os.Remove(path); err != nil {
			o.log.Warn().Err(err).Str("path", path).Msg("could not remove file")
			continue
		}
		result.Files++
		result.Bytes += sizes[i]
	}

	o.log.Info().Int("files", result.Files).Int64("bytes", result.Bytes).Msg("cleaning completed")
	return result, nil
}
