package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/magnetsetup/internal/ctxlog"
	"github.com/vk/magnetsetup/internal/fsutil"
	"github.com/vk/magnetsetup/internal/provider"
	"github.com/vk/magnetsetup/internal/selector"
)

// ErrOutputExists is returned when an output file is already present.
var ErrOutputExists = errors.New("output file already exists")

// BaseName returns the output base of a run: the data file name without its
// directory and data suffix, or the magnet name.
func BaseName(datafile, magnet string) string {
	if datafile != "" {
		return strings.TrimSuffix(filepath.Base(datafile), provider.DataSuffix)
	}
	return magnet
}

// OutputNames holds the file names produced by a run.
type OutputNames struct {
	JSON string
	Cfg  string
}

// Names builds <base>-<method>-<model>[-nonlinear]-<geom>-sim.json and its
// .cfg sibling.
func Names(base string, sel selector.Selector, linear bool) OutputNames {
	parts := []string{base, string(sel.Method), string(sel.Model)}
	if !linear {
		parts = append(parts, "nonlinear")
	}
	parts = append(parts, string(sel.Geometry), "sim")
	stem := strings.Join(parts, "-")
	return OutputNames{JSON: stem + ".json", Cfg: stem + ".cfg"}
}

// Output is one file to write.
type Output struct {
	Name string
	Data []byte
}

// WriteOutputs writes every output below dir. No file is written when any of
// them already exists, and files written before a failure are removed.
func WriteOutputs(ctx context.Context, dir string, outputs []Output) error {
	logger := ctxlog.FromContext(ctx)

	for _, o := range outputs {
		path := filepath.Join(dir, o.Name)
		exists, err := fsutil.Exists(path)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", path, err)
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrOutputExists, path)
		}
	}

	var written []string
	for _, o := range outputs {
		path := filepath.Join(dir, o.Name)
		if err := fsutil.WriteExclusive(path, o.Data); err != nil {
			for _, w := range written {
				_ = os.Remove(w)
			}
			if errors.Is(err, os.ErrExist) {
				return fmt.Errorf("%w: %s", ErrOutputExists, path)
			}
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
		logger.Info("Output written.", "path", path, "bytes", len(o.Data))
	}
	return nil
}
