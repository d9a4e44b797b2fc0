package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apidex-dev/apidex/internal/config"
	"github.com/spf13/cobra"
)

// resolveRoot reads the --root flag and verifies it names a directory.
func resolveRoot(cmd *cobra.Command) (string, error) {
	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return "", fmt.Errorf("failed to read --root flag: %w", err)
	}
	rootPath, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", root, err)
	}
	info, err := os.Stat(rootPath)
	if err != nil {
		return "", fmt.Errorf("failed to access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path %q is not a directory", root)
	}
	return rootPath, nil
}

// loadSettings merges the scan root's config file with the command's flags.
// Explicit flags win over config values, which win over defaults; --exclude
// patterns are appended to the config's.
func loadSettings(cmd *cobra.Command, root string) (*config.Config, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	for name, dst := range map[string]*string{
		"out":        &cfg.Out,
		"index":      &cfg.Index,
		"fn_prefix":  &cfg.FnPrefix,
		"auto_out":   &cfg.AutoOut,
		"api_header": &cfg.APIHeader,
	} {
		if err := overrideString(cmd, name, dst); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Lookup("exclude") != nil {
		extra, err := cmd.Flags().GetStringSlice("exclude")
		if err != nil {
			return nil, fmt.Errorf("failed to read --exclude flag: %w", err)
		}
		cfg.Exclude = append(cfg.Exclude, extra...)
	}

	return cfg, nil
}

func overrideString(cmd *cobra.Command, name string, dst *string) error {
	flag := cmd.Flags().Lookup(name)
	if flag == nil || !flag.Changed {
		return nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	*dst = value
	return nil
}
