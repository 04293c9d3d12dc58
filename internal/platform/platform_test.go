//go:build !ios && !android && (amd64 || arm64)

package platform

import (
	"runtime"
	"testing"
)

func TestIs64Bit(t *testing.T) {
	if !Is64Bit {
		t.Error("Platform should be 64-bit")
	}
}

func TestFormatLibraryName(t *testing.T) {
	got := FormatLibraryName("QmlNet")

	var want string
	switch runtime.GOOS {
	case "darwin":
		want = "libQmlNet.dylib"
	case "windows":
		want = "QmlNet.dll"
	default:
		want = "libQmlNet.so"
	}
	if got != want {
		t.Errorf("FormatLibraryName = %q, want %q", got, want)
	}
}

func TestLibraryPathEnv(t *testing.T) {
	got := LibraryPathEnv()

	switch runtime.GOOS {
	case "darwin":
		if got != "DYLD_LIBRARY_PATH" {
			t.Errorf("expected DYLD_LIBRARY_PATH, got %s", got)
		}
	case "windows":
		if got != "PATH" {
			t.Errorf("expected PATH, got %s", got)
		}
	default:
		if got != "LD_LIBRARY_PATH" {
			t.Errorf("expected LD_LIBRARY_PATH, got %s", got)
		}
	}
}

func TestStandardLibraryDirs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no standard library directories on Windows")
	}
	if len(StandardLibraryDirs()) == 0 {
		t.Error("StandardLibraryDirs should return at least one directory")
	}
}
