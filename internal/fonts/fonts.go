// Package fonts locates TTF/OTF files for the overlay.
package fonts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Exts are the font file extensions considered.
var Exts = []string{".ttf", ".otf"}

// ErrNotFound is returned when no font matches.
var ErrNotFound = errors.New("font not found")

// BaseDirs returns candidate font directories relative to the working directory, so fonts
// are found whether run from the repo root or from cmd/brainmap.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns slash-separated paths of all font files under dir, relative to dir.
// A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !isFont(path) {
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

// normalize lowercases and drops spaces, dashes and underscores for fuzzy matching.
func normalize(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// Find resolves search in BaseDirs. See FindIn.
func Find(search string) (string, error) {
	return FindIn(BaseDirs(), search)
}

// FindIn returns the path of a font for search. An existing file path is returned as is;
// otherwise search is matched loosely against the fonts under dirs ("Inter",
// "inter-regular"), preferring a Regular face when several match.
func FindIn(dirs []string, search string) (string, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return "", ErrNotFound
	}
	if st, err := os.Stat(search); err == nil && !st.IsDir() && isFont(search) {
		return search, nil
	}
	norm := normalize(strings.TrimSuffix(search, filepath.Ext(search)))
	var matches []string
	for _, base := range dirs {
		list, err := ScanDir(base)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalize(rel), norm) {
				matches = append(matches, filepath.Join(base, filepath.FromSlash(rel)))
			}
		}
	}
	if len(matches) == 0 {
		return "", ErrNotFound
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(filepath.Base(m)), "regular") {
			return m, nil
		}
	}
	return matches[0], nil
}
