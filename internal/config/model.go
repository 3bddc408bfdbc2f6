package config

import (
	"errors"
	"fmt"
)

// ErrMissingTemplateEntry is returned when the table has no entry for a
// combination, or the entry lacks a required file name.
var ErrMissingTemplateEntry = errors.New("missing template entry")

// Key identifies a setup entry.
type Key struct {
	Method string
	Time   string
	Geom   string
	Model  string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", k.Method, k.Time, k.Geom, k.Model)
}

// Entry lists the template file names of one combination. Names are relative
// to <repo>/<method>/<geom>/<model>/.
type Entry struct {
	Cfg                string
	Model              string
	ModelNonlinear     string
	ConductorLinear    string
	ConductorNonlinear string
	Insulator          string
	// Cooling and CoolingPost are keyed by cooling model.
	Cooling     map[string]string
	CoolingPost map[string]string
	StatsT      string
	StatsPower  string
	// Filename lists auxiliary files shipped with the templates.
	Filename map[string]string
	// Source is the file the entry was read from.
	Source string
}

// Require returns value, or ErrMissingTemplateEntry naming the attribute.
func (e *Entry) Require(attr, value string) (string, error) {
	if value == "" {
		return "", fmt.Errorf("%w: attribute %q not set (defined in %s)", ErrMissingTemplateEntry, attr, e.Source)
	}
	return value, nil
}

// RequireKeyed returns m[key], or ErrMissingTemplateEntry naming attr.key.
func (e *Entry) RequireKeyed(attr string, m map[string]string, key string) (string, error) {
	return e.Require(attr+"."+key, m[key])
}

// Table is the setup table, keyed by combination.
type Table struct {
	entries map[Key]*Entry
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[Key]*Entry)}
}

// Add registers an entry. Defining the same key twice is an error.
func (t *Table) Add(k Key, e *Entry) error {
	if prev, ok := t.entries[k]; ok {
		return fmt.Errorf("setup %s defined twice (%s and %s)", k, prev.Source, e.Source)
	}
	t.entries[k] = e
	return nil
}

// Lookup returns the entry for k.
func (t *Table) Lookup(k Key) (*Entry, error) {
	e, ok := t.entries[k]
	if !ok {
		return nil, fmt.Errorf("%w: no setup for %s", ErrMissingTemplateEntry, k)
	}
	return e, nil
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }
