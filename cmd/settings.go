package cmd

import (
	core_config "github.com/grovetools/core/config"
	ruleconv_config "github.com/grovetools/ruleconv/config"
)

// extensionName is the key of the ruleconv section in grove.yml.
const extensionName = "ruleconv"

// loadSettings layers the grove.yml extension, then an explicit config
// file. Flags are applied by the caller on top.
func loadSettings(configPath string) (*ruleconv_config.Config, error) {
	cfg := &ruleconv_config.Config{}

	// A missing or unrelated grove.yml is not an error for a standalone run.
	if coreCfg, err := core_config.LoadDefault(); err == nil {
		var ext ruleconv_config.Config
		if err := coreCfg.UnmarshalExtension(extensionName, &ext); err == nil {
			cfg.Merge(ext)
		}
	}

	if configPath != "" {
		fileCfg, err := ruleconv_config.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg.Merge(*fileCfg)
	}

	return cfg, nil
}
