package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/magnetsetup/internal/config"
	"github.com/vk/magnetsetup/internal/ctxlog"
	"github.com/vk/magnetsetup/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL setup table loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under the given paths and merges their
// setup blocks into one table.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Table, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("%w: no .hcl setup file found in %v", config.ErrMissingTemplateEntry, paths)
	}

	table := config.NewTable()
	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, setup := range root.Setups {
			if err := table.Add(setup.key(), setup.translate(file)); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("HCL loading complete.", "setups", table.Len())
	return table, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if _, wasSeen := seen[f]; !wasSeen {
				allFiles = append(allFiles, f)
				seen[f] = struct{}{}
			}
		}
	}
	return allFiles, nil
}
