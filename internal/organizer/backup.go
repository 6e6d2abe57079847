package organizer

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jellydator/validation"
	"github.com/kdomanski/iso9660"
)

// Backup archive formats.
const (
	FormatZip  = "zip"
	FormatCopy = "copy"
	FormatISO  = "iso"
)

// BackupOptions configures one backup run.
type BackupOptions struct {
	Source   string
	Dest     string
	Format   string // zip, copy or iso; empty means zip
	Name     string // optional extra suffix for the backup name
	Excludes []string
}

// Validate checks the options before any filesystem work happens.
func (opts BackupOptions) Validate() error {
	err := validation.ValidateStruct(&opts,
		validation.Field(&opts.Source, validation.Required),
		validation.Field(&opts.Dest, validation.Required),
		validation.Field(&opts.Format, validation.In(FormatZip, FormatCopy, FormatISO)),
	)
	if err != nil {
		return fmt.Errorf("invalid backup options: %w", err)
	}
	return checkPatterns(opts.Excludes)
}

// BackupResult reports what a backup produced.
type BackupResult struct {
	Path  string
	Files int
	Bytes int64
}

// Backup copies the source directory into dest as a timestamped zip archive,
// ISO image or plain directory copy. Excluded entries are skipped; excluded
// directories are pruned whole.
func (o *Organizer) Backup(opts BackupOptions) (*BackupResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	format := opts.Format
	if format == "" {
		format = FormatZip
	}

	source, err := resolveDir(opts.Source)
	if err != nil {
		return nil, err
	}

	dest, err := filepath.Abs(expandHome(opts.Dest))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", opts.Dest, err)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	backupPath := filepath.Join(dest, backupName(filepath.Base(source), opts.Name, format))

	var result *BackupResult
	switch format {
	case FormatCopy:
		result, err = o.backupCopy(source, backupPath, opts.Excludes)
	case FormatISO:
		result, err = o.backupISO(source, backupPath, opts.Excludes)
	default:
		result, err = o.backupZip(source, backupPath, opts.Excludes)
	}
	if err != nil {
		return nil, err
	}

	o.log.Info().
		Str("path", result.Path).
		Int("files", result.Files).
		Int64("bytes", result.Bytes).
		Msg("backup completed")

	return result, nil
}

// backupName builds "<base>_<timestamp>[_<name>][.ext]".
func backupName(base, name, format string) string {
	ext := ""
	switch format {
	case FormatZip:
		ext = ".zip"
	case FormatISO:
		ext = ".iso"
	}

	stem := base + "_" + timestamp()
	if name != "" {
		stem += "_" + strings.TrimSuffix(name, ext)
	}
	return stem + ext
}

// walkSource visits every entry under source except excluded ones and the
// backup target itself. rel is slash separated.
func walkSource(source, skip string, excludes []string, fn func(path, rel string, info os.FileInfo) error) error {
	return filepath.WalkDir(source, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == source {
			return nil
		}
		if path == skip {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if excluded(rel, d.Name(), excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() && !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		return fn(path, rel, info)
	})
}

func (o *Organizer) backupZip(source, backupPath string, excludes []string) (*BackupResult, error) {
	o.log.Info().Str("path", backupPath).Msg("creating compressed backup")

	out, err := os.Create(backupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	zw := zip.NewWriter(out)
	result := &BackupResult{Path: backupPath}

	err = walkSource(source, backupPath, excludes, func(path, rel string, info os.FileInfo) error {
		if info.IsDir() {
			return nil
		}

		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = rel
		hdr.Method = zip.Deflate

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}

		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()

		n, err := io.Copy(w, in)
		if err != nil {
			return err
		}

		result.Files++
		result.Bytes += n
		return nil
	})
	if err != nil {
		zw.Close()
		out.Close()
		return nil, fmt.Errorf("failed to build archive: %w", err)
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to write archive: %w", err)
	}

	return result, nil
}

func (o *Organizer) backupCopy(source, backupPath string, excludes []string) (*BackupResult, error) {
	o.log.Info().Str("path", backupPath).Msg("creating directory backup")

	if err := os.MkdirAll(backupPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	result := &BackupResult{Path: backupPath}

	err := walkSource(source, backupPath, excludes, func(path, rel string, info os.FileInfo) error {
		target := filepath.Join(backupPath, filepath.FromSlash(rel))

		if info.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm())
		}

		n, err := copyFile(path, target, info.Mode().Perm())
		if err != nil {
			return err
		}

		result.Files++
		result.Bytes += n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to copy tree: %w", err)
	}

	return result, nil
}

func (o *Organizer) backupISO(source, backupPath string, excludes []string) (*BackupResult, error) {
	o.log.Info().Str("path", backupPath).Msg("creating ISO backup")

	writer, err := iso9660.NewWriter()
	if err != nil {
		return nil, fmt.Errorf("failed to create ISO writer: %w", err)
	}
	defer writer.Cleanup()

	result := &BackupResult{Path: backupPath}

	err = walkSource(source, backupPath, excludes, func(path, rel string, info os.FileInfo) error {
		if info.IsDir() {
			return nil
		}
		if err := writer.AddLocalFile(path, rel); err != nil {
			return err
		}
		result.Files++
		result.Bytes += info.Size()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stage ISO contents: %w", err)
	}

	out, err := os.Create(backupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}
	if err := writer.WriteTo(out, volumeID(filepath.Base(source))); err != nil {
		out.Close()
		return nil, fmt.Errorf("failed to write ISO image: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to write image: %w", err)
	}

	return result, nil
}

// volumeID squeezes a directory name into the ISO9660 volume identifier
// character set, 32 characters at most.
func volumeID(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if b.Len() >= 32 {
			break
		}
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "BACKUP"
	}
	return b.String()
}
