package cli

import (
	"fmt"
	"os"

	"github.com/apidex-dev/apidex/internal/emit"
	"github.com/apidex-dev/apidex/internal/ignore"
	"github.com/apidex-dev/apidex/internal/needs"
	"github.com/apidex-dev/apidex/internal/scan"
	"github.com/spf13/cobra"
)

func RunNeeds(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadSettings(cmd, root)
	if err != nil {
		return err
	}

	visMode, err := cmd.Flags().GetString("vis")
	if err != nil {
		return fmt.Errorf("failed to read --vis flag: %w", err)
	}
	if visMode != "public" && visMode != "private" {
		return fmt.Errorf("invalid --vis %q (expected public or private)", visMode)
	}
	includePrivate := visMode == "private"

	entryPath, err := cmd.Flags().GetString("entry")
	if err != nil {
		return fmt.Errorf("failed to read --entry flag: %w", err)
	}
	preCmd, err := cmd.Flags().GetString("preprocess")
	if err != nil {
		return fmt.Errorf("failed to read --preprocess flag: %w", err)
	}
	if entryPath == "" && preCmd == "" {
		return fmt.Errorf("needs: provide --entry <file> and/or --preprocess <cmd>")
	}

	// The preprocessed output, when available, supersedes the raw entry
	// file: it reflects what the consumer actually compiles.
	var entryText string
	if preCmd != "" {
		entryText, err = needs.Preprocess(preCmd)
		if err != nil {
			return err
		}
	} else {
		data, err := os.ReadFile(entryPath)
		if err != nil {
			return fmt.Errorf("failed to read entry file %s: %w", entryPath, err)
		}
		entryText = string(data)
	}

	table, err := scan.ScanTree(root, ignore.NewMatcher(cfg.Exclude))
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}

	selected := needs.Select(table, includePrivate, entryText)
	if err := emit.WriteImportHeader(cfg.AutoOut, table, selected, includePrivate, cfg.APIHeader); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", cfg.AutoOut)
	return nil
}
