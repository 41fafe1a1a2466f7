// Package icons resolves display icons for search results.
// Icons are looked up in the installed freedesktop icon themes; anything
// that cannot be found falls back to icons embedded in the binary.
package icons

import (
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/lvim-tech/qf/pkg/utils"
)

// Resolver maps paths to icon handles (a file path or an icon name).
type Resolver interface {
	Folder() string
	ForFile(path string) string
}

// ThemeResolver looks icons up in freedesktop icon themes.
type ThemeResolver struct {
	themes   []string
	size     int
	baseDirs []string
	pixmaps  []string
	bundled  *Bundled

	mu    sync.Mutex
	cache map[string]string
}

// NewThemeResolver creates a resolver that prefers theme, then hicolor and Adwaita.
// size is the preferred pixel size (128 when <= 0).
func NewThemeResolver(theme string, size int, bundled *Bundled) *ThemeResolver {
	if size <= 0 {
		size = 128
	}

	var themes []string
	for _, t := range []string{theme, "hicolor", "Adwaita"} {
		if t == "" || contains(themes, t) {
			continue
		}
		themes = append(themes, t)
	}

	baseDirs := []string{
		filepath.Join(utils.GetHomeDir(), ".icons"),
		filepath.Join(utils.GetDataDir(), "icons"),
	}
	var pixmaps []string
	for _, d := range utils.GetDataDirs() {
		baseDirs = append(baseDirs, filepath.Join(d, "icons"))
		pixmaps = append(pixmaps, filepath.Join(d, "pixmaps"))
	}

	return &ThemeResolver{
		themes:   themes,
		size:     size,
		baseDirs: baseDirs,
		pixmaps:  pixmaps,
		bundled:  bundled,
		cache:    make(map[string]string),
	}
}

// Folder returns the themed folder icon or the bundled one.
func (r *ThemeResolver) Folder() string {
	if p, ok := r.Lookup("folder", "inode-directory"); ok {
		return p
	}
	return r.bundled.Path(FolderIcon)
}

// ForFile guesses the MIME type of path from its extension and returns
// the matching themed icon, or the bundled generic file icon.
func (r *ThemeResolver) ForFile(path string) string {
	names := IconNamesForMIME(GuessMIME(path))
	if len(names) > 0 {
		if p, ok := r.Lookup(names...); ok {
			return p
		}
	}
	return r.bundled.Path(FileIcon)
}

// Lookup returns the first icon file found for any of names.
func (r *ThemeResolver) Lookup(names ...string) (string, bool) {
	key := strings.Join(names, "|")

	r.mu.Lock()
	if p, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return p, p != ""
	}
	r.mu.Unlock()

	p := r.lookup(names)

	r.mu.Lock()
	r.cache[key] = p
	r.mu.Unlock()

	return p, p != ""
}

func (r *ThemeResolver) lookup(names []string) string {
	for _, name := range names {
		for _, theme := range r.themes {
			for _, base := range r.baseDirs {
				if p := r.findInTheme(filepath.Join(base, theme), name); p != "" {
					return p
				}
			}
		}
	}
	for _, name := range names {
		for _, dir := range r.pixmaps {
			for _, ext := range []string{".png", ".svg"} {
				p := filepath.Join(dir, name+ext)
				if fileExists(p) {
					return p
				}
			}
		}
	}
	return ""
}

// findInTheme searches both <theme>/<size>/<context>/ and <theme>/<context>/<size>/ layouts.
func (r *ThemeResolver) findInTheme(themeDir, name string) string {
	if !fileExists(themeDir) {
		return ""
	}

	var matches []string
	for _, ext := range []string{".png", ".svg"} {
		found, _ := filepath.Glob(filepath.Join(themeDir, "*", "*", name+ext))
		matches = append(matches, found...)
	}
	if len(matches) == 0 {
		return ""
	}

	best, bestScore := "", -1
	for _, m := range matches {
		if score := r.score(m); score > bestScore {
			best, bestScore = m, score
		}
	}
	return best
}

// score ranks a candidate icon path by how well its size directory matches.
func (r *ThemeResolver) score(path string) int {
	s := strconv.Itoa(r.size)
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		switch {
		case part == s+"x"+s || part == s:
			return 3
		case part == "scalable":
			return 2
		case strings.HasPrefix(part, s+"x"+s+"@"):
			return 1
		}
	}
	return 0
}

// GuessMIME returns the MIME type for the extension of path, without parameters.
func GuessMIME(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	mt := mime.TypeByExtension(ext)
	if mt == "" {
		mt = mime.TypeByExtension(strings.ToLower(ext))
	}
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}

// IconNamesForMIME returns the freedesktop icon names for a MIME type,
// most specific first: "application/pdf" -> application-pdf, application-x-generic.
func IconNamesForMIME(mt string) []string {
	major, _, ok := strings.Cut(mt, "/")
	if !ok || major == "" {
		return nil
	}
	return []string{
		strings.ReplaceAll(mt, "/", "-"),
		major + "-x-generic",
	}
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
