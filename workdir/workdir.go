// Package workdir resolves and applies the build tool's working directory,
// honoring the <CWD> and <CFD> path prefixes from the TOML config.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve computes the working directory for a run. cliArg, when non-empty,
// beats the config's work_dir field (the CLI --work-dir-equivalent). Both
// are resolved relative to configDir, the directory containing the config
// file, with <CWD> and <CFD> expanding to the caller's current directory and
// configDir respectively.
func Resolve(cliArg, configWorkDir, configPath string) (string, error) {
	absConfigPath, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	configDir := filepath.Dir(absConfigPath)

	input := cliArg
	if input == "" {
		input = configWorkDir
	}
	if input == "" {
		return configDir, nil
	}
	return parse(input, configDir)
}

func parse(input, configDir string) (string, error) {
	switch {
	case strings.HasPrefix(input, "<CWD>"):
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve <CWD>: %w", err)
		}
		return cwd + strings.TrimPrefix(input, "<CWD>"), nil
	case strings.HasPrefix(input, "<CFD>"):
		return configDir + strings.TrimPrefix(input, "<CFD>"), nil
	default:
		return filepath.Join(configDir, input), nil
	}
}

// Chdir resolves the working directory and sets the process CWD to it,
// returning the resolved path.
func Chdir(cliArg, configWorkDir, configPath string) (string, error) {
	dir, err := Resolve(cliArg, configWorkDir, configPath)
	if err != nil {
		return "", err
	}
	if err := os.Chdir(dir); err != nil {
		return "", fmt.Errorf("chdir %s: %w", dir, err)
	}
	return dir, nil
}
