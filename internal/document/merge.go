package document

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMergeConflict is returned by Merge under Reject when a key exists on
// both sides.
var ErrMergeConflict = errors.New("merge conflict")

// ConflictPolicy decides what Merge does with a key present in dst and src.
type ConflictPolicy int

const (
	// Reject fails the merge and leaves dst untouched.
	Reject ConflictPolicy = iota
	// Overwrite replaces the dst value with the src value.
	Overwrite
	// KeepExisting keeps the dst value.
	KeepExisting
)

func (p ConflictPolicy) String() string {
	switch p {
	case Reject:
		return "reject"
	case Overwrite:
		return "overwrite"
	case KeepExisting:
		return "keep-existing"
	}
	return fmt.Sprintf("ConflictPolicy(%d)", int(p))
}

// Merge copies the top-level keys of src into dst. It returns the sorted keys
// present on both sides.
func Merge(dst, src map[string]any, policy ConflictPolicy) ([]string, error) {
	var conflicts []string
	for k := range src {
		if _, ok := dst[k]; ok {
			conflicts = append(conflicts, k)
		}
	}
	sort.Strings(conflicts)

	if len(conflicts) > 0 && policy == Reject {
		return conflicts, fmt.Errorf("%w: key(s) %s already defined", ErrMergeConflict, strings.Join(conflicts, ", "))
	}
	for k, v := range src {
		if _, ok := dst[k]; ok && policy == KeepExisting {
			continue
		}
		dst[k] = v
	}
	return conflicts, nil
}
