//go:build !ios && !android && (amd64 || arm64)

// Package platform describes how shared libraries are named and located on
// the current operating system.
package platform

import (
	"runtime"
	"unsafe"
)

// Is64Bit indicates whether the platform is 64-bit.
// Handles cross the boundary as uintptr, and purego callbacks are only
// supported on 64-bit targets.
const Is64Bit = unsafe.Sizeof(uintptr(0)) == 8

// LibraryExtension is the file extension for shared libraries on this platform.
var LibraryExtension string

// LibraryPrefix is the prefix for shared library names on this platform.
var LibraryPrefix string

func init() {
	switch runtime.GOOS {
	case "darwin":
		LibraryExtension = ".dylib"
		LibraryPrefix = "lib"
	case "windows":
		LibraryExtension = ".dll"
		LibraryPrefix = ""
	default: // linux, freebsd, etc.
		LibraryExtension = ".so"
		LibraryPrefix = "lib"
	}
}

// FormatLibraryName returns the platform-specific library filename.
//
// Examples:
//   - Linux:   FormatLibraryName("QmlNet") -> "libQmlNet.so"
//   - macOS:   FormatLibraryName("QmlNet") -> "libQmlNet.dylib"
//   - Windows: FormatLibraryName("QmlNet") -> "QmlNet.dll"
func FormatLibraryName(name string) string {
	return LibraryPrefix + name + LibraryExtension
}

// LibraryPathEnv returns the environment variable the dynamic loader
// consults for extra search directories.
func LibraryPathEnv() string {
	switch runtime.GOOS {
	case "darwin":
		return "DYLD_LIBRARY_PATH"
	case "windows":
		return "PATH"
	default:
		return "LD_LIBRARY_PATH"
	}
}

// StandardLibraryDirs returns the directories shared libraries are commonly
// installed into on this platform.
func StandardLibraryDirs() []string {
	switch runtime.GOOS {
	case "linux":
		dirs := []string{"/usr/local/lib", "/usr/lib", "/lib"}
		switch runtime.GOARCH {
		case "amd64":
			dirs = append(dirs, "/usr/lib/x86_64-linux-gnu")
		case "arm64":
			dirs = append(dirs, "/usr/lib/aarch64-linux-gnu")
		}
		return dirs
	case "darwin":
		return []string{"/opt/homebrew/lib", "/usr/local/lib"}
	case "windows":
		return nil
	default:
		return []string{"/usr/local/lib", "/usr/lib"}
	}
}
