package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/ruleconv/internal/keymap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "summary.csv")
	out := filepath.Join(dir, "rules.json")
	require.NoError(t, os.WriteFile(in, []byte("cancer_type,overall_frequency,n_trials\nLung,0.8333333,12\n"), 0644))

	stdout, err := execute(t, "convert", "-i", in, "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout, "a successful run prints nothing")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, `[{"ct":"Lung","of":0.83,"nt":12}]`, string(data))
}

func TestConvertCommandWithConfig(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "summary.csv")
	out := filepath.Join(dir, "rules.json")
	cfgPath := filepath.Join(dir, "ruleconv.yml")
	require.NoError(t, os.WriteFile(in, []byte("custom_note,White\nok,12.345\n"), 0644))
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"input: "+in+"\noutput: "+filepath.Join(dir, "ignored.json")+"\nkeys:\n  custom_note: cn\n"), 0644))

	// --output wins over the config file
	_, err := execute(t, "convert", "--config", cfgPath, "--output", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, `[{"cn":"ok","W":12.35}]`, string(data))

	_, err = os.Stat(filepath.Join(dir, "ignored.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestConvertCommandErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "convert", "-o", filepath.Join(dir, "rules.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input")

	_, err = execute(t, "convert", "-i", filepath.Join(dir, "summary.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output")

	missing := filepath.Join(dir, "missing.csv")
	_, err = execute(t, "convert", "-i", missing, "-o", filepath.Join(dir, "rules.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)

	_, err = execute(t, "convert", "--config", filepath.Join(dir, "missing.yml"))
	require.Error(t, err)
}

func TestConvertCommandRejectsAliasCollision(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "ruleconv.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("keys:\n  custom_note: ct\n"), 0644))

	_, err := execute(t, "convert", "--config", cfgPath, "-i", "a.csv", "-o", "b.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate alias")
}

func TestKeysCommand(t *testing.T) {
	stdout, err := execute(t, "keys")
	require.NoError(t, err)
	assert.Contains(t, stdout, "cancer_type")
	assert.Contains(t, stdout, "Drug: Placebo")
	assert.Contains(t, stdout, "34 columns mapped")
}

func TestKeysCommandJSON(t *testing.T) {
	stdout, err := execute(t, "keys", "--json")
	require.NoError(t, err)

	var entries []keymap.Entry
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 34)
	assert.Equal(t, keymap.Entry{Original: "cancer_type", Alias: "ct"}, entries[0])
	assert.Contains(t, stdout, `"original":">65"`)
	assert.NotContains(t, stdout, `\u003e`)
}

// chdirProject makes dir the working directory with a grove.yml holding
// the given ruleconv section, isolated from any user-level grove config.
func chdirProject(t *testing.T, dir, section string) {
	t.Helper()
	t.Setenv("GROVE_HOME", filepath.Join(dir, "grove-home"))
	t.Setenv("GROVE_CONFIG_OVERLAY", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "grove.yml"),
		[]byte("name: rules-browser\nruleconv:\n"+section), 0644))
	t.Chdir(dir)
}

func TestConvertCommandGroveExtension(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "summary.csv")
	require.NoError(t, os.WriteFile(in, []byte("custom_note,batch,White\nok,b1,3\n"), 0644))
	chdirProject(t, dir,
		"  input: "+in+"\n"+
			"  output: "+filepath.Join(dir, "from-grove.json")+"\n"+
			"  keys:\n    custom_note: cn\n    batch: bt\n")

	readOutput := func(name string) string {
		t.Helper()
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		return string(data)
	}

	t.Run("extension alone", func(t *testing.T) {
		_, err := execute(t, "convert")
		require.NoError(t, err)
		assert.Equal(t, `[{"cn":"ok","bt":"b1","W":3}]`, readOutput("from-grove.json"))
	})

	cfgPath := filepath.Join(dir, "ruleconv.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"output: "+filepath.Join(dir, "from-config.json")+"\nkeys:\n  custom_note: note\n"), 0644))

	t.Run("config file over extension", func(t *testing.T) {
		_, err := execute(t, "convert", "--config", cfgPath)
		require.NoError(t, err)
		assert.Equal(t, `[{"note":"ok","bt":"b1","W":3}]`, readOutput("from-config.json"))
	})

	t.Run("flags over config file", func(t *testing.T) {
		_, err := execute(t, "convert", "--config", cfgPath, "-o", filepath.Join(dir, "from-flag.json"))
		require.NoError(t, err)
		assert.Equal(t, `[{"note":"ok","bt":"b1","W":3}]`, readOutput("from-flag.json"))
	})
}

func TestKeysCommandGroveExtension(t *testing.T) {
	chdirProject(t, t.TempDir(), "  keys:\n    custom_note: cn\n")

	stdout, err := execute(t, "keys", "--json")
	require.NoError(t, err)

	var entries []keymap.Entry
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 35)
	assert.Equal(t, keymap.Entry{Original: "custom_note", Alias: "cn"}, entries[34])
}
