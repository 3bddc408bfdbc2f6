package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/magnetsetup/internal/ctxlog"
	"github.com/vk/magnetsetup/internal/fsutil"
)

// DataSuffix is the file name suffix of local records.
const DataSuffix = "-data.json"

// Directory is a Provider serving <name>-data.json files from a directory.
// The record kind is not part of the file name; every accepted kind reads
// from the same directory.
type Directory struct {
	root string
}

// NewDirectory returns a provider reading records below root.
func NewDirectory(root string) *Directory {
	return &Directory{root: root}
}

// Path returns the file a record is read from.
func (d *Directory) Path(name string) string {
	return filepath.Join(d.root, name+DataSuffix)
}

// Lookup reads and decodes <root>/<name>-data.json.
func (d *Directory) Lookup(ctx context.Context, kind, name string) (map[string]any, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	path := d.Path(name)
	ctxlog.FromContext(ctx).Debug("Reading local record.", "kind", kind, "path", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, lookupFailed(ctx, d, kind, name, err)
	}
	var rec map[string]any
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, lookupFailed(ctx, d, kind, name, fmt.Errorf("decoding %s: %w", path, err))
	}
	return rec, nil
}

// List returns the names of the records found below root.
func (d *Directory) List(ctx context.Context, kind string) ([]string, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	files, err := fsutil.FindFiles(d.root, "*"+DataSuffix)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = strings.TrimSuffix(filepath.Base(f), DataSuffix)
	}
	return names, nil
}
