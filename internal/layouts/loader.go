// Package layouts loads board layouts from files. The chute and classic layouts
// are embedded; a user directory can add layouts or replace built-ins by name.
package layouts

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-pachinko/internal/board"
	"github.com/vovakirdan/tui-pachinko/internal/layouts/formats"
)

//go:embed builtin/*.yaml builtin/*.toml
var builtinFS embed.FS

// ErrUnknownLayout is returned when no layout has the requested name.
var ErrUnknownLayout = errors.New("unknown layout")

// DefaultName is the layout used when none is requested.
const DefaultName = "chute"

// Layout is a parsed layout and where it came from.
type Layout struct {
	board.Layout
	FilePath string
}

// Loader reads layout files from a file system.
type Loader struct {
	FS fs.FS
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root)}
}

// Builtin returns a loader over the embedded layouts.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return &Loader{FS: sub}
}

// LoadAll recursively scans and loads all layout files, sorted by name.
// Files that fail to parse are skipped.
func (l *Loader) LoadAll() ([]Layout, error) {
	var out []Layout

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(path.Ext(p)) {
			return nil
		}

		layout, err := l.LoadFile(p)
		if err != nil {
			return nil
		}
		out = append(out, layout)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("layouts: walking: %w", err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// LoadFile loads a single layout file.
func (l *Loader) LoadFile(p string) (Layout, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Layout{}, fmt.Errorf("layouts: reading %s: %w", p, err)
	}

	parsed, err := formats.Parse(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Layout{}, fmt.Errorf("layouts: parsing %s: %w", p, err)
	}

	return Layout{Layout: parsed, FilePath: p}, nil
}

// LoadByName returns the layout with the given name.
func (l *Loader) LoadByName(name string) (Layout, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Layout{}, err
	}
	for _, layout := range all {
		if layout.Name == name {
			return layout, nil
		}
	}
	return Layout{}, fmt.Errorf("layouts: %q: %w", name, ErrUnknownLayout)
}

// Resolve looks a layout up in userDir first, then among the built-ins.
// An empty name selects DefaultName; a missing userDir is ignored.
func Resolve(name, userDir string) (board.Layout, error) {
	if name == "" {
		name = DefaultName
	}

	if userDir != "" {
		if info, err := os.Stat(userDir); err == nil && info.IsDir() {
			if l, err := NewLoader(userDir).LoadByName(name); err == nil {
				return l.Layout, nil
			}
		}
	}

	l, err := Builtin().LoadByName(name)
	if err != nil {
		return board.Layout{}, err
	}
	return l.Layout, nil
}

// Names lists the layouts available from userDir and the built-ins.
func Names(userDir string) ([]string, error) {
	seen := map[string]bool{}
	var names []string

	loaders := []*Loader{Builtin()}
	if userDir != "" {
		if info, err := os.Stat(userDir); err == nil && info.IsDir() {
			loaders = append(loaders, NewLoader(userDir))
		}
	}

	for _, l := range loaders {
		all, err := l.LoadAll()
		if err != nil {
			return nil, err
		}
		for _, layout := range all {
			if !seen[layout.Name] {
				seen[layout.Name] = true
				names = append(names, layout.Name)
			}
		}
	}

	sort.Strings(names)
	return names, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
