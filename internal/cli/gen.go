package cli

import (
	"fmt"

	"github.com/apidex-dev/apidex/internal/emit"
	"github.com/apidex-dev/apidex/internal/ignore"
	"github.com/apidex-dev/apidex/internal/scan"
	"github.com/spf13/cobra"
)

func RunGen(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadSettings(cmd, root)
	if err != nil {
		return err
	}

	table, err := scan.ScanTree(root, ignore.NewMatcher(cfg.Exclude))
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}

	if err := emit.WriteIndex(cfg.Index, table); err != nil {
		return err
	}
	if err := emit.WriteAPIDef(cfg.Out, table, cfg.FnPrefix); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\nWrote %s\n", cfg.Out, cfg.Index)
	return nil
}
