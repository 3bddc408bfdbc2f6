// Package provider retrieves magnet and material records by kind and name,
// either from the magnet database API or from a local directory.
package provider

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrRemoteLookupFailed is returned when a record cannot be retrieved.
var ErrRemoteLookupFailed = errors.New("remote lookup failed")

// ErrUnsupportedKind is returned for a record kind the provider does not serve.
var ErrUnsupportedKind = errors.New("unsupported record kind")

// Record kinds served by the magnet database.
const (
	KindSite     = "msite"
	KindMagnet   = "magnet"
	KindHelix    = "Helix"
	KindBitter   = "Bitter"
	KindSupra    = "Supra"
	KindMaterial = "material"
)

// Kinds lists the accepted record kinds.
var Kinds = []string{KindSite, KindMagnet, KindHelix, KindBitter, KindSupra, KindMaterial}

// Provider looks records up by kind and name.
type Provider interface {
	// Lookup returns the record of the given kind and name.
	Lookup(ctx context.Context, kind, name string) (map[string]any, error)
	// List returns the names of the records of the given kind.
	List(ctx context.Context, kind string) ([]string, error)
}

// LookupError reports a failed lookup with the names that were available.
type LookupError struct {
	Kind      string
	Name      string
	Available []string
	Err       error
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("failed to retrieve %s %q", e.Kind, e.Name)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if len(e.Available) > 0 {
		msg += fmt.Sprintf(" (available: %s)", strings.Join(e.Available, ", "))
	}
	return msg
}

// Is makes LookupError match ErrRemoteLookupFailed.
func (e *LookupError) Is(target error) bool { return target == ErrRemoteLookupFailed }

func (e *LookupError) Unwrap() error { return e.Err }

func checkKind(kind string) error {
	if !slices.Contains(Kinds, kind) {
		return fmt.Errorf("%w: %q (valid: %s)", ErrUnsupportedKind, kind, strings.Join(Kinds, ", "))
	}
	return nil
}

// lookupFailed builds a LookupError, listing the available names when the
// provider can still enumerate them.
func lookupFailed(ctx context.Context, p Provider, kind, name string, cause error) error {
	lerr := &LookupError{Kind: kind, Name: name, Err: cause}
	if names, err := p.List(ctx, kind); err == nil {
		lerr.Available = names
	}
	return lerr
}
