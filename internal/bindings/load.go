//go:build !ios && !android && (amd64 || arm64)

// Package bindings loads the QmlNet native library with purego and exposes
// its C interface as Go methods.
package bindings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/qmlnet/internal/platform"
)

// ErrNotLoaded is returned when native functions are needed before Load.
var ErrNotLoaded = errors.New("qmlnet: QmlNet native library not loaded; call qmlnet.Init() first")

// ErrLibraryNotFound is returned when the QmlNet library cannot be found.
var ErrLibraryNotFound = errors.New("qmlnet: QmlNet native library not found")

// ErrMissingSymbol is returned when the library lacks a required export.
var ErrMissingSymbol = errors.New("qmlnet: QmlNet native library is missing a required symbol")

// LibraryName is the base name of the native library.
const LibraryName = "QmlNet"

// DirEnv names the environment variable that overrides every other search
// location.
const DirEnv = "QMLNET_LIB_DIR"

// Options controls how the library is located.
type Options struct {
	// Path is an explicit library file. When set, no search is performed.
	Path string

	// SearchDirs are consulted after QMLNET_LIB_DIR and before the loader
	// path and standard directories.
	SearchDirs []string
}

// Load locates and opens the QmlNet library and binds its exports.
func Load(opts Options) (*Library, error) {
	path, err := FindLibrary(opts)
	if err != nil {
		return nil, err
	}

	// RTLD_GLOBAL so Qt plugins loaded later by the library resolve its symbols.
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("qmlnet: failed to load %s: %w", path, err)
	}

	lib := &Library{handle: handle, path: path}
	if err := lib.bind(); err != nil {
		return nil, err
	}
	return lib, nil
}

// FindLibrary returns the path of the library file Load would open.
//
// Search order:
//  1. opts.Path
//  2. QMLNET_LIB_DIR
//  3. opts.SearchDirs
//  4. LD_LIBRARY_PATH / DYLD_LIBRARY_PATH / PATH
//  5. Standard library directories
//  6. Executable directory
//  7. Current working directory
func FindLibrary(opts Options) (string, error) {
	if opts.Path != "" {
		if _, err := os.Stat(opts.Path); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrLibraryNotFound, opts.Path, err)
		}
		return opts.Path, nil
	}

	name := platform.FormatLibraryName(LibraryName)

	if dir := os.Getenv(DirEnv); dir != "" {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		return "", fmt.Errorf("%w: %s=%s does not contain %s", ErrLibraryNotFound, DirEnv, dir, name)
	}

	dirs := SearchPaths(opts.SearchDirs)
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: looked for %s in %d locations. Set %s or library.path",
		ErrLibraryNotFound, name, len(dirs), DirEnv)
}

// SearchPaths returns extra followed by the platform search directories,
// without duplicates.
func SearchPaths(extra []string) []string {
	var dirs []string
	dirs = append(dirs, extra...)

	if p := os.Getenv(platform.LibraryPathEnv()); p != "" {
		dirs = append(dirs, filepath.SplitList(p)...)
	}
	dirs = append(dirs, platform.StandardLibraryDirs()...)

	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}

	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]
	for _, dir := range dirs {
		dir = strings.TrimSpace(dir)
		if dir == "" || seen[dir] {
			continue
		}
		seen[dir] = true
		out = append(out, dir)
	}
	return out
}

// BuildInstructions returns platform-specific hints for making the library
// loadable.
func BuildInstructions() string {
	name := platform.FormatLibraryName(LibraryName)
	switch runtime.GOOS {
	case "linux", "freebsd":
		return fmt.Sprintf("Build QmlNet against your Qt installation, then either\n"+
			"  export %s=/path/to/dir/containing/%s\n"+
			"  # OR\n"+
			"  export LD_LIBRARY_PATH=/path/to/dir:$LD_LIBRARY_PATH", DirEnv, name)
	case "darwin":
		return fmt.Sprintf("Build QmlNet against Qt (brew install qt), then either\n"+
			"  export %s=/path/to/dir/containing/%s\n"+
			"  # OR\n"+
			"  export DYLD_LIBRARY_PATH=/path/to/dir:$DYLD_LIBRARY_PATH", DirEnv, name)
	case "windows":
		return fmt.Sprintf("Build QmlNet with MSVC or MinGW Qt, then copy %s next to your executable or set %s", name, DirEnv)
	default:
		return fmt.Sprintf("Platform %s/%s is not supported", runtime.GOOS, runtime.GOARCH)
	}
}
