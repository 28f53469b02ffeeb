// Package keymap holds the column-name to short-alias table used when
// transcoding rule statistics.
package keymap

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateAlias is returned when two original names would share an alias.
var ErrDuplicateAlias = errors.New("duplicate alias")

// Entry is a single original name and its alias.
type Entry struct {
	Original string `json:"original"`
	Alias    string `json:"alias"`
}

var defaultEntries = []Entry{
	{"cancer_type", "ct"},
	{"trial_id", "tid"},
	{"rule", "r"},
	{"rule_section", "rs"},
	{"overall_frequency", "of"},
	{"n_trials", "nt"},
	{"enrollment_mean", "em"},
	{"enrollment_std", "es"},
	{"site_mean", "sm"},
	{"site_std", "ss"},
	{"recruitment_months_mean", "rm"},
	{"recruitment_months_std", "rms"},
	{"epsm_mean", "epm"},
	{"epsm_std", "eps"},
	{"start_date_mean", "sd"},
	{"start_date_std_yrs", "sds"},
	{"Overall", "O"},
	{"White", "W"},
	{"Asian", "A"},
	{"African-American", "AA"},
	{"Female", "F"},
	{"Male", "M"},
	{"18-50", "a1"},
	{"50-65", "a2"},
	{">65", "a3"},
	{"cluster_id", "cid"},
	{"cluster_center_rule", "ccr"},
	{"Drug: Chemotherapy", "dCh"},
	{"Drug: Targeted Therapy", "dTa"},
	{"Drug: Immunotherapy / Biological Therapy", "dIm"},
	{"Drug: Hormonal Therapy", "dHo"},
	{"Drug: Photodynamic Therapy", "dPh"},
	{"Drug: Supportive Care", "dSu"},
	{"Drug: Placebo", "dPl"},
}

// Map resolves original field names to aliases. The zero value maps nothing.
type Map struct {
	entries []Entry
	index   map[string]int
}

// Default returns the built-in key map.
func Default() *Map {
	m, err := New(defaultEntries)
	if err != nil {
		// The built-in table is fixed; a collision here is a programming error.
		panic(err)
	}
	return m
}

// New builds a Map from entries, rejecting repeated originals or aliases.
func New(entries []Entry) (*Map, error) {
	m := &Map{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if err := m.add(e); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Map) add(e Entry) error {
	if e.Original == "" || e.Alias == "" {
		return fmt.Errorf("empty key map entry %q -> %q", e.Original, e.Alias)
	}
	if _, ok := m.index[e.Original]; ok {
		return fmt.Errorf("original %q mapped twice", e.Original)
	}
	for _, existing := range m.entries {
		if existing.Alias == e.Alias {
			return fmt.Errorf("%w %q for %q and %q", ErrDuplicateAlias, e.Alias, existing.Original, e.Original)
		}
	}
	m.index[e.Original] = len(m.entries)
	m.entries = append(m.entries, e)
	return nil
}

// Key returns the alias for name, or name itself when it is not mapped.
func (m *Map) Key(name string) string {
	if alias, ok := m.Lookup(name); ok {
		return alias
	}
	return name
}

// Lookup reports the alias for name and whether one exists.
func (m *Map) Lookup(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	i, ok := m.index[name]
	if !ok {
		return "", false
	}
	return m.entries[i].Alias, true
}

// Len returns the number of mapped names.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns a copy of the table in declaration order.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// WithOverrides returns a new Map with overrides applied on top of m.
// An override for an existing original replaces its alias in place; new
// originals are appended in sorted order so the result is deterministic.
func (m *Map) WithOverrides(overrides map[string]string) (*Map, error) {
	if len(overrides) == 0 {
		return New(m.Entries())
	}

	base := m.Entries()
	merged := make([]Entry, 0, len(base)+len(overrides))
	seen := make(map[string]bool, len(overrides))
	for _, e := range base {
		if alias, ok := overrides[e.Original]; ok {
			e.Alias = alias
			seen[e.Original] = true
		}
		merged = append(merged, e)
	}
	for _, name := range sortedKeys(overrides) {
		if !seen[name] {
			merged = append(merged, Entry{Original: name, Alias: overrides[name]})
		}
	}

	out, err := New(merged)
	if err != nil {
		return nil, fmt.Errorf("apply key overrides: %w", err)
	}
	return out, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
