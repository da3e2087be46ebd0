// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// imageExtensions are the plane file types the analysis tools accept.
var imageExtensions = []string{".tif", ".tiff"}

// ListImageFiles returns the full paths of all image plane files directly
// inside dir, sorted lexically so plane order matches acquisition order.
// Subdirectories are not descended into; a plane directory is flat.
func ListImageFiles(dir string) ([]string, error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		return nil, err
	}

	var files []string
	for _, path := range entries {
		if isImageFile(path) {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// FindFilesByExtension recursively searches the given root path for all files
// ending with the specified extension. It returns a slice of their full paths,
// sorted lexically.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
