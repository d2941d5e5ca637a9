package utils

import (
	"path/filepath"
	"runtime"
)

// ResolveFile returns the absolute path of fn, given relative to the module root. Tests use it to find files
// shipped with the module regardless of the package they run in.
func ResolveFile(fn string) string {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		return fn
	}
	root := filepath.Join(filepath.Dir(thisFile), "..")
	return filepath.Join(root, filepath.FromSlash(fn))
}
