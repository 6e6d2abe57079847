package organizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganize(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"report.pdf": "pdf",
		"photo.JPG":  "jpg",
		"song.mp3":   "mp3",
		"script.py":  "py",
		"README":     "no extension",
		"data.xyz":   "unknown type",
	})

	result, err := newTestOrganizer().Organize(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Files)
	assert.Equal(t, map[string]int{
		"Documents/PDFs": 1,
		"Images":         1,
		"Media/Audio":    1,
		"Code/Python":    1,
	}, result.Folders)

	// Extension matching is case insensitive.
	_, err = os.Stat(filepath.Join(dir, "Images", "photo.JPG"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "Documents", "PDFs", "report.pdf"))
	assert.NoError(t, err)

	// Files without a matching rule stay put.
	_, err = os.Stat(filepath.Join(dir, "README"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "data.xyz"))
	assert.NoError(t, err)
}

func TestOrganizeCollision(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"pic.jpg":        "new",
		"Images/pic.jpg": "existing",
	})

	result, err := newTestOrganizer().Organize(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Files)

	entries, err := os.ReadDir(filepath.Join(dir, "Images"))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// The existing file is kept, the new one gets a timestamp suffix.
	got, err := os.ReadFile(filepath.Join(dir, "Images", "pic.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "existing", string(got))

	var renamed string
	for _, entry := range entries {
		if entry.Name() != "pic.jpg" {
			renamed = entry.Name()
		}
	}
	assert.Regexp(t, `^pic_\d{8}_\d{6}\.jpg$`, renamed)
}

func TestOrganizeCustomRules(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"notes.md": "md",
		"a.pdf":    "pdf",
	})

	result, err := newTestOrganizer().Organize(dir, map[string]string{"md": "Notes"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Files)
	_, err = os.Stat(filepath.Join(dir, "Notes", "notes.md"))
	assert.NoError(t, err)

	// Custom rules replace the defaults entirely.
	_, err = os.Stat(filepath.Join(dir, "a.pdf"))
	assert.NoError(t, err)
}

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	assert.Equal(t, "Documents/PDFs", rules["pdf"])
	assert.Equal(t, "Files/Compressed", rules["zip"])
	assert.Equal(t, "Code/C++", rules["cpp"])

	// Callers get their own copy.
	rules["pdf"] = "Elsewhere"
	assert.Equal(t, "Documents/PDFs", DefaultRules()["pdf"])
}
