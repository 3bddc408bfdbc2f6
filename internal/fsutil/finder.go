// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a slice of their full paths, sorted.
// A root that is itself a matching file is returned as is; a missing root
// yields no files.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	info, err := os.Stat(rootPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error accessing path %s: %w", rootPath, err)
	}
	if !info.IsDir() {
		if filepath.Ext(rootPath) == extension {
			return []string{rootPath}, nil
		}
		return nil, nil
	}

	return FindFiles(rootPath, "**/*"+extension)
}

// FindFiles returns the regular files under rootPath matching a doublestar
// pattern relative to rootPath, sorted.
func FindFiles(rootPath, pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(rootPath, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}
