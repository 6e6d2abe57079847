package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultRules maps lowercase file extensions to the folder files of that
// type are moved into, relative to the directory being organized.
func DefaultRules() map[string]string {
	return map[string]string{
		// Documents
		"pdf":  "Documents/PDFs",
		"doc":  "Documents/Word",
		"docx": "Documents/Word",
		"xls":  "Documents/Excel",
		"xlsx": "Documents/Excel",
		"ppt":  "Documents/PowerPoint",
		"pptx": "Documents/PowerPoint",
		"txt":  "Documents/Text",

		// Images
		"jpg":  "Images",
		"jpeg": "Images",
		"png":  "Images",
		"gif":  "Images",
		"bmp":  "Images",

		// Audio and video
		"mp3": "Media/Audio",
		"wav": "Media/Audio",
		"mp4": "Media/Video",
		"avi": "Media/Video",
		"mkv": "Media/Video",

		// Archives
		"zip": "Files/Compressed",
		"rar": "Files/Compressed",
		"tar": "Files/Compressed",
		"gz":  "Files/Compressed",

		// Installers
		"exe": "Installers",
		"msi": "Installers",
		"dmg": "Installers",

		// Code
		"py":   "Code/Python",
		"js":   "Code/JavaScript",
		"html": "Code/Web",
		"css":  "Code/Web",
		"java": "Code/Java",
		"c":    "Code/C",
		"cpp":  "Code/C++",
	}
}

// OrganizeResult reports how many files were moved and where.
type OrganizeResult struct {
	Files   int
	Folders map[string]int
}

// Organize moves top-level files of a directory into typed subfolders. A nil
// or empty rules map uses DefaultRules. Name collisions get a timestamp
// suffix instead of overwriting.
func (o *Organizer) Organize(dir string, rules map[string]string) (*OrganizeResult, error) {
	resolved, err := resolveDir(dir)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		rules = DefaultRules()
	}

	o.log.Info().Str("dir", resolved).Msg("organizing files")

	entries, err := os.ReadDir(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	result := &OrganizeResult{Folders: map[string]int{}}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
		folder, ok := rules[ext]
		if !ok {
			continue
		}

		destDir := filepath.Join(resolved, filepath.FromSlash(folder))
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %q: %w", folder, err)
		}

		destPath := filepath.Join(destDir, entry.Name())
		if _, err := os.Stat(destPath); err == nil {
			suffix := filepath.Ext(entry.Name())
			stem := strings.TrimSuffix(entry.Name(), suffix)
			destPath = filepath.Join(destDir, stem+"_"+timestamp()+suffix)
		}

		if err := os.Rename(filepath.Join(resolved, entry.Name()), destPath); err != nil {
			o.log.Warn().Err(err).Str("file", entry.Name()).Msg("could not move file")
			continue
		}

		result.Files++
		result.Folders[folder]++
		o.log.Debug().Str("file", entry.Name()).Str("dest", destPath).Msg("moved")
	}

	o.log.Info().Int("files", result.Files).Msg("organization completed")
	return result, nil
}
