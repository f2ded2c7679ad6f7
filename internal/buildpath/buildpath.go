// Package buildpath resolves a Unity web build directory and names every file
// the responsive conversion reads or writes inside it.
package buildpath

import (
	"fmt"
	"os"
	"path/filepath"

	rerrors "github.com/provide-io/unity-responsive/pkg/responsive/errors"
)

// Fixed names relative to the build directory.
const (
	IndexFile      = "index.html"
	StyleFile      = "TemplateData/style.css"
	BuildDir       = "Build"
	BackupDir      = "backup"
	BackupSuffix   = ".backup"
	MarkerFile     = "responsive.json"
	DirPerms       = 0o755
	GeneratedPerms = 0o644
)

// Layout is an absolute build directory plus the product name that prefixes
// the Unity payload files.
type Layout struct {
	root    string
	product string
}

// Resolve makes path absolute and checks it names an existing directory.
func Resolve(path, product string) (Layout, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Layout{}, fmt.Errorf("resolving %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, fmt.Errorf("%w: %s", rerrors.ErrBuildDirNotFound, abs)
		}
		return Layout{}, fmt.Errorf("inspecting %s: %w", abs, err)
	}
	if !info.IsDir() {
		return Layout{}, fmt.Errorf("%w: %s is not a directory", rerrors.ErrBuildDirNotFound, abs)
	}

	return Layout{root: abs, product: product}, nil
}

// Root returns the absolute build directory.
func (l Layout) Root() string {
	return l.root
}

// Product returns the product name used for payload file names.
func (l Layout) Product() string {
	return l.product
}

// Path joins rel onto the build directory.
func (l Layout) Path(rel string) string {
	return filepath.Join(l.root, filepath.FromSlash(rel))
}

// ==================== Entry page ====================

// Index returns the entry HTML page path
func (l Layout) Index() string {
	return l.Path(IndexFile)
}

// Style returns the stylesheet path
func (l Layout) Style() string {
	return l.Path(StyleFile)
}

// ==================== Build payload ====================

// BuildFile returns the relative slash path Build/<product><name>.
func (l Layout) BuildFile(name string) string {
	return BuildDir + "/" + l.product + name
}

// Loader returns the relative path of the Unity loader script
func (l Layout) Loader() string {
	return l.BuildFile(".loader.js")
}

// ==================== Backups ====================

// Backup returns the backup directory
func (l Layout) Backup() string {
	return l.Path(BackupDir)
}

// BackupOf returns where a backup of the file at rel is stored.
func (l Layout) BackupOf(rel string) string {
	return filepath.Join(l.Backup(), filepath.Base(filepath.FromSlash(rel))+BackupSuffix)
}

// Marker returns the run marker path inside the backup directory
func (l Layout) Marker() string {
	return filepath.Join(l.Backup(), MarkerFile)
}

// Exists reports whether the file at rel exists.
func (l Layout) Exists(rel string) bool {
	_, err := os.Stat(l.Path(rel))
	return err == nil
}
