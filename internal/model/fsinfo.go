// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the FSInfo struct, which stores file system metadata for
// a loaded record.
//
// The source path connects an in-memory geometry back to its file on disk. It
// is reported in load errors and its stem names the generated mesh and
// configuration record.
package model

import (
	"path/filepath"
	"strings"
)

type FSInfo struct {
	FilePath string
}

func NewFSInfo(filePath string) *FSInfo {
	return &FSInfo{
		FilePath: filePath,
	}
}

// Stem returns the base name of the file without its extension.
func (f *FSInfo) Stem() string {
	if f == nil || f.FilePath == "" {
		return ""
	}
	base := filepath.Base(f.FilePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
