// Package fonts finds the overlay font on disk. A config value may be a path or a family name
// such as "Inter"; names are matched against the files under the font directories.
package fonts

import (
	"os"
	"path/filepath"
	"strings"
)

// Extensions we consider as font files.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate base directories for fonts (relative to process cwd).
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// Finder searches Dirs in order.
type Finder struct {
	Dirs []string
}

// NewFinder returns a finder over BaseDirs.
func NewFinder() *Finder {
	return &Finder{Dirs: BaseDirs()}
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf").
// Paths use forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// SearchCandidates returns search terms to try in order.
// Example: "Inter/Inter-Regular.ttf" -> ["Inter/Inter-Regular.ttf", "Inter", "Inter/Inter-Regular", "Inter-Regular.ttf"].
func SearchCandidates(pathOrName string) []string {
	pathOrName = strings.TrimSpace(pathOrName)
	seen := map[string]bool{pathOrName: true}
	candidates := []string{pathOrName}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			candidates = append(candidates, s)
		}
	}
	// First path segment (e.g. "Inter" from "Inter/Inter-Regular.ttf")
	if i := strings.IndexAny(pathOrName, "/\\"); i > 0 {
		add(pathOrName[:i])
	}
	base := pathOrName
	if i := strings.LastIndexAny(base, "/\\"); i >= 0 {
		base = base[i+1:]
	}
	// Family before the style (e.g. "DejaVuSans" from "DejaVuSans-Bold.ttf")
	if i := strings.Index(base, "-"); i > 0 {
		add(base[:i])
	}
	for _, ext := range Exts {
		if strings.HasSuffix(strings.ToLower(pathOrName), ext) {
			add(pathOrName[:len(pathOrName)-len(ext)])
			break
		}
	}
	add(base)
	return candidates
}

// Find searches the font directories for a file whose path matches search.
// Returns the relative path and the full path, or os.ErrNotExist if none match.
// When multiple files match, prefers one whose path contains "Regular".
func (f *Finder) Find(search string) (relPath string, fullPath string, err error) {
	norm := normalizeForMatch(search)
	if norm == "" {
		return "", "", os.ErrNotExist
	}
	type match struct{ rel, full string }
	var matches []match
	for _, base := range f.Dirs {
		list, walkErr := ScanDir(base)
		if walkErr != nil || len(list) == 0 {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				matches = append(matches, match{rel, filepath.Join(base, filepath.FromSlash(rel))})
			}
		}
	}
	if len(matches) == 0 {
		return "", "", os.ErrNotExist
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(m.rel), "regular") {
			return m.rel, m.full, nil
		}
	}
	return matches[0].rel, matches[0].full, nil
}

// Resolve turns a config value into a font file path. An existing file is used as is;
// otherwise each search candidate is tried in turn.
func (f *Finder) Resolve(pathOrName string) (string, error) {
	pathOrName = strings.TrimSpace(pathOrName)
	if pathOrName == "" {
		return "", os.ErrNotExist
	}
	if info, err := os.Stat(pathOrName); err == nil && !info.IsDir() && isFont(pathOrName) {
		return pathOrName, nil
	}
	for _, c := range SearchCandidates(pathOrName) {
		if _, full, err := f.Find(c); err == nil {
			return full, nil
		}
	}
	return "", os.ErrNotExist
}
