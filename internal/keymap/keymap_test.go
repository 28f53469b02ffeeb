package keymap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAliasesAreUnique(t *testing.T) {
	m := Default()
	require.Equal(t, 34, m.Len())

	seen := make(map[string]string)
	for _, e := range m.Entries() {
		if prev, ok := seen[e.Alias]; ok {
			t.Fatalf("alias %q used by %q and %q", e.Alias, prev, e.Original)
		}
		seen[e.Alias] = e.Original
	}
}

func TestKey(t *testing.T) {
	m := Default()

	tests := []struct {
		in   string
		want string
	}{
		{"cancer_type", "ct"},
		{"overall_frequency", "of"},
		{"n_trials", "nt"},
		{"African-American", "AA"},
		{">65", "a3"},
		{"Drug: Immunotherapy / Biological Therapy", "dIm"},
		{"custom_note", "custom_note"},
		{"Cancer_Type", "Cancer_Type"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Key(tt.in), "key for %q", tt.in)
	}
}

func TestNilMapPassesThrough(t *testing.T) {
	var m *Map
	assert.Equal(t, "cancer_type", m.Key("cancer_type"))
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Entries())
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New([]Entry{{"a", "x"}, {"b", "x"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateAlias))

	_, err = New([]Entry{{"a", "x"}, {"a", "y"}})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDuplicateAlias))

	_, err = New([]Entry{{"a", ""}})
	require.Error(t, err)
}

func TestWithOverrides(t *testing.T) {
	base := Default()

	m, err := base.WithOverrides(map[string]string{
		"custom_note": "cn",
		"cancer_type": "cancer",
		"batch":       "b",
	})
	require.NoError(t, err)

	assert.Equal(t, "cancer", m.Key("cancer_type"))
	assert.Equal(t, "cn", m.Key("custom_note"))
	assert.Equal(t, "b", m.Key("batch"))
	assert.Equal(t, base.Len()+2, m.Len())

	entries := m.Entries()
	assert.Equal(t, Entry{"cancer_type", "cancer"}, entries[0])
	assert.Equal(t, Entry{"batch", "b"}, entries[len(entries)-2])
	assert.Equal(t, Entry{"custom_note", "cn"}, entries[len(entries)-1])

	// base is untouched
	assert.Equal(t, "ct", base.Key("cancer_type"))
}

func TestWithOverridesRejectsCollision(t *testing.T) {
	_, err := Default().WithOverrides(map[string]string{"custom_note": "ct"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateAlias))
}

func TestWithOverridesEmpty(t *testing.T) {
	m, err := Default().WithOverrides(nil)
	require.NoError(t, err)
	assert.Equal(t, Default().Entries(), m.Entries())
}

func TestDescribeCoversDefaults(t *testing.T) {
	for _, e := range Default().Entries() {
		label, group := Describe(e.Alias)
		assert.NotEmpty(t, label, "label for %q", e.Alias)
		assert.NotEmpty(t, group, "group for %q", e.Alias)
	}

	label, group := Describe("a3")
	assert.Equal(t, ">65 %", label)
	assert.Equal(t, GroupExclusion, group)

	label, group = Describe("cn")
	assert.Empty(t, label)
	assert.Empty(t, group)
}
