package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindProjectBinary locates the ruleconv binary under test. RULECONV_BINARY
// takes precedence; otherwise bin/ruleconv is searched for from the working
// directory upwards.
func FindProjectBinary() (string, error) {
	if bin := os.Getenv("RULECONV_BINARY"); bin != "" {
		return bin, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, "bin", "ruleconv")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("ruleconv binary not found; build it into bin/ or set RULECONV_BINARY")
		}
		dir = parent
	}
}
