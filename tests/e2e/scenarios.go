package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/ruleconv/internal/keymap"
	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/command"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

const summaryCSV = `cancer_type,trial_id,rule,rule_section,overall_frequency,n_trials,White,>65,custom_note
Lung,NCT00000001,"ECOG performance status > 2, or unknown",exclusion,0.8333333,12,42.0,3.14159,
Breast,NCT00000002,Pregnant or nursing,exclusion,0.5,7,-3,,see appendix
Colon,NCT00000003,Prior chemotherapy,inclusion,1,1,White,0.125,n/a
`

// setupSummary writes a rule summary CSV into a scratch directory.
func setupSummary(ctx *harness.Context) error {
	dir := ctx.NewDir("ruleconv")
	dataDir := filepath.Join(dir, "data")
	if err := fs.CreateDir(dataDir); err != nil {
		return err
	}

	input := filepath.Join(dir, "merged_rule_level_summary_final.csv")
	if err := fs.WriteString(input, summaryCSV); err != nil {
		return fmt.Errorf("failed to write summary csv: %w", err)
	}

	ctx.Set("work_dir", dir)
	ctx.Set("input", input)
	ctx.Set("output", filepath.Join(dataDir, "rules.json"))
	return nil
}

// RuleconvConvertScenario tests the 'ruleconv convert' command
func RuleconvConvertScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "ruleconv-convert-command",
		Steps: []harness.Step{
			harness.NewStep("Setup rule summary", setupSummary),
			harness.NewStep("Run 'ruleconv convert'", func(ctx *harness.Context) error {
				bin, err := FindProjectBinary()
				if err != nil {
					return err
				}

				cmd := command.New(bin, "convert", "--input", ctx.GetString("input"), "--output", ctx.GetString("output"))
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "ruleconv convert should exit successfully"); err != nil {
					return err
				}
				return assert.Equal("", result.Stdout, "A successful conversion prints nothing")
			}),
			harness.NewStep("Verify rules.json", func(ctx *harness.Context) error {
				data, err := os.ReadFile(ctx.GetString("output"))
				if err != nil {
					return err
				}
				content := string(data)

				want := `[{"ct":"Lung","tid":"NCT00000001","r":"ECOG performance status > 2, or unknown","rs":"exclusion","of":0.83,"nt":12,"W":42,"a3":3.14,"custom_note":""},` +
					`{"ct":"Breast","tid":"NCT00000002","r":"Pregnant or nursing","rs":"exclusion","of":0.5,"nt":7,"W":-3,"a3":"","custom_note":"see appendix"},` +
					`{"ct":"Colon","tid":"NCT00000003","r":"Prior chemotherapy","rs":"inclusion","of":1,"nt":1,"W":"White","a3":0.12,"custom_note":"n/a"}]`
				if err := assert.Equal(want, content, "Output should be the compact record array"); err != nil {
					return err
				}

				var records []map[string]interface{}
				if err := json.Unmarshal([]byte(content), &records); err != nil {
					return fmt.Errorf("failed to parse JSON output: %w", err)
				}
				return assert.Equal(3, len(records), "One record per data row")
			}),
		},
	}
}

// RuleconvConvertErrorsScenario tests failure handling of 'ruleconv convert'
func RuleconvConvertErrorsScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "ruleconv-convert-errors",
		Steps: []harness.Step{
			harness.NewStep("Setup rule summary", setupSummary),
			harness.NewStep("Run 'ruleconv convert' with a missing input", func(ctx *harness.Context) error {
				bin, err := FindProjectBinary()
				if err != nil {
					return err
				}

				missing := filepath.Join(ctx.GetString("work_dir"), "missing.csv")
				cmd := command.New(bin, "convert", "--input", missing, "--output", ctx.GetString("output"))
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if result.ExitCode == 0 {
					return fmt.Errorf("ruleconv convert should fail for a missing input")
				}
				if err := assert.Contains(result.Stderr, missing, "Error should name the missing file"); err != nil {
					return err
				}
				if _, err := os.Stat(ctx.GetString("output")); err == nil {
					return fmt.Errorf("no output may be written when the input is missing")
				}
				return nil
			}),
			harness.NewStep("Run 'ruleconv convert' with a ragged row", func(ctx *harness.Context) error {
				bin, err := FindProjectBinary()
				if err != nil {
					return err
				}

				ragged := filepath.Join(ctx.GetString("work_dir"), "ragged.csv")
				if err := fs.WriteString(ragged, "cancer_type,n_trials\nLung,3\nColon\n"); err != nil {
					return err
				}
				cmd := command.New(bin, "convert", "--input", ragged, "--output", ctx.GetString("output"))
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if result.ExitCode == 0 {
					return fmt.Errorf("ruleconv convert should fail for a ragged row")
				}
				return assert.Contains(result.Stderr, "line 3", "Error should name the offending line")
			}),
		},
	}
}

// RuleconvKeysScenario tests the 'ruleconv keys' command
func RuleconvKeysScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "ruleconv-keys-command",
		Steps: []harness.Step{
			harness.NewStep("Run 'ruleconv keys'", func(ctx *harness.Context) error {
				bin, err := FindProjectBinary()
				if err != nil {
					return err
				}

				cmd := command.New(bin, "keys")
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "ruleconv keys should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "ALIAS", "Should print table header"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "cancer_type", "Should list cancer_type")
			}),
			harness.NewStep("Run 'ruleconv keys --json'", func(ctx *harness.Context) error {
				bin, err := FindProjectBinary()
				if err != nil {
					return err
				}

				cmd := command.New(bin, "keys", "--json")
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "ruleconv keys --json should exit successfully"); err != nil {
					return err
				}

				var entries []keymap.Entry
				if err := json.Unmarshal([]byte(result.Stdout), &entries); err != nil {
					return fmt.Errorf("failed to parse JSON output: %w", err)
				}
				if err := assert.Equal(34, len(entries), "Should list every built-in column"); err != nil {
					return err
				}
				if err := assert.Equal("cancer_type", entries[0].Original, "cancer_type should come first"); err != nil {
					return err
				}
				if err := assert.Equal("ct", entries[0].Alias, "cancer_type should map to ct"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, `"original":">65"`, "Comparison operators should not be escaped")
			}),
		},
	}
}
