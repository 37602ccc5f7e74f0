// Package pathutil wraps path/filepath with the File::leaf/base/ext/
// parent accessor names of original_source/rs-core/file.hpp, which
// splits a path into exactly those four views rather than filepath's
// two-piece Split/Ext.
package pathutil

import "path/filepath"

// Leaf returns the final path element (name + extension), matching
// file.hpp's File::leaf.
func Leaf(path string) string {
	return filepath.Base(path)
}

// Base returns the leaf with its extension removed, matching file.hpp's
// File::base.
func Base(path string) string {
	leaf := filepath.Base(path)
	ext := filepath.Ext(leaf)
	return leaf[:len(leaf)-len(ext)]
}

// Ext returns the leaf's extension including the leading dot, matching
// file.hpp's File::ext.
func Ext(path string) string {
	return filepath.Ext(path)
}

// Parent returns the path's containing directory, matching file.hpp's
// File::parent.
func Parent(path string) string {
	return filepath.Dir(path)
}

// IsAbsolute reports whether path is absolute, matching file.hpp's
// File::is_absolute.
func IsAbsolute(path string) bool {
	return filepath.IsAbs(path)
}

// Join joins path elements with the platform separator, matching
// file.hpp's operator/ path-append.
func Join(elem ...string) string {
	return filepath.Join(elem...)
}

// WithExt replaces path's extension with ext (which should include the
// leading dot, or be empty to strip it entirely).
func WithExt(path, ext string) string {
	cur := filepath.Ext(path)
	return path[:len(path)-len(cur)] + ext
}
