package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFont(t *testing.T, dir, rel string) string {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte("font"), 0o644))
	return full
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "Inter/Inter-Regular.ttf")
	writeFont(t, dir, "Inter/Inter-Bold.otf")
	writeFont(t, dir, "README.txt")

	list, err := ScanDir(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Inter/Inter-Regular.ttf", "Inter/Inter-Bold.otf"}, list)

	list, err = ScanDir(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSearchCandidates(t *testing.T) {
	assert.Equal(t, []string{"Inter/Inter-Regular.ttf", "Inter", "Inter/Inter-Regular", "Inter-Regular.ttf"}, SearchCandidates("Inter/Inter-Regular.ttf"))
	assert.Equal(t, []string{"DejaVuSans-Bold.ttf", "DejaVuSans", "DejaVuSans-Bold"}, SearchCandidates("DejaVuSans-Bold.ttf"))
	assert.Equal(t, []string{"Inter"}, SearchCandidates(" Inter "))
}

func TestFindPrefersRegular(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "Inter/Inter-Bold.ttf")
	regular := writeFont(t, dir, "Inter/Inter-Regular.ttf")
	f := &Finder{Dirs: []string{filepath.Join(dir, "missing"), dir}}

	rel, full, err := f.Find("inter")
	require.NoError(t, err)
	assert.Equal(t, "Inter/Inter-Regular.ttf", rel)
	assert.Equal(t, regular, full)

	_, _, err = f.Find("Roboto")
	assert.True(t, errors.Is(err, os.ErrNotExist))
	_, _, err = f.Find(" - ")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	regular := writeFont(t, dir, "DejaVu/DejaVuSans.ttf")
	f := &Finder{Dirs: []string{dir}}

	got, err := f.Resolve(regular)
	require.NoError(t, err)
	assert.Equal(t, regular, got, "existing file is used as is")

	got, err = f.Resolve("DejaVu Sans")
	require.NoError(t, err)
	assert.Equal(t, regular, got)

	got, err = f.Resolve("elsewhere/DejaVuSans-Bold.ttf")
	require.NoError(t, err)
	assert.Equal(t, regular, got, "falls back to the family name")

	_, err = f.Resolve("")
	assert.Error(t, err)
	_, err = f.Resolve("Roboto")
	assert.Error(t, err)
}
