package cli

import (
	"fmt"
	"os"

	"github.com/apidex-dev/apidex/internal/ignore"
	"github.com/apidex-dev/apidex/internal/scan"
	"github.com/apidex-dev/apidex/internal/search"
	"github.com/spf13/cobra"
)

func RunSearch(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadSettings(cmd, root)
	if err != nil {
		return err
	}

	query := search.Query{}
	for name, dst := range map[string]*string{
		"kind":    &query.Kind,
		"name":    &query.Name,
		"pattern": &query.Pattern,
	} {
		value, err := cmd.Flags().GetString(name)
		if err != nil {
			return fmt.Errorf("failed to read --%s flag: %w", name, err)
		}
		*dst = value
	}

	table, err := scan.ScanTree(root, ignore.NewMatcher(cfg.Exclude))
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}

	search.Print(os.Stdout, search.Filter(table, query))
	return nil
}
