package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "apidex",
		Short: "Index C-like APIs and generate selective-import headers",
		Long: `Apidex scans a tree of C-like sources with line-oriented heuristics,
extracts functions, structs, and typedef-structs with a public/private
visibility label, and uses that table to emit a JSON index, an X-macro
API definition file, and per-consumer selective-import headers.

Visibility defaults to public under include/ or public/ directories and
private elsewhere; a "// @api public" or "// @api private" comment within
the 6 lines above a declaration overrides the default.`,
	}

	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Scan the tree and write the API definition and JSON index",
		RunE:  RunGen,
	}
	addScanFlags(genCmd)
	genCmd.Flags().String("out", "", "Output path for the API definition file")
	genCmd.Flags().String("index", "", "Output path for the JSON index")
	genCmd.Flags().String("fn_prefix", "", "Only emit prototypes whose name has this prefix")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Filter the symbol table by kind, name, or substring",
		RunE:  RunSearch,
	}
	addScanFlags(searchCmd)
	searchCmd.Flags().String("kind", "", "Symbol kind: fn|fn_proto|fn_def|struct|typedef_struct")
	searchCmd.Flags().String("name", "", "Exact symbol name")
	searchCmd.Flags().String("pattern", "", "Case-insensitive substring over name or snippet")

	needsCmd := &cobra.Command{
		Use:   "needs",
		Short: "Compute a consumer's API needs and write its import header",
		RunE:  RunNeeds,
	}
	addScanFlags(needsCmd)
	needsCmd.Flags().String("vis", "public", "Visibility mode: public|private")
	needsCmd.Flags().String("entry", "", "Consumer source file to analyze")
	needsCmd.Flags().String("preprocess", "", "Command whose stdout is analyzed instead of the entry file")
	needsCmd.Flags().String("auto_out", "", "Output path for the selective-import header")
	needsCmd.Flags().String("api_header", "", "Base API header included by the generated file")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("apidex %s\n", version)
		},
	}

	rootCmd.AddCommand(
		genCmd,
		searchCmd,
		needsCmd,
		versionCmd,
	)

	return rootCmd
}

func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().String("root", ".", "Scan root directory")
	cmd.Flags().StringSlice("exclude", nil, "Glob patterns to exclude from the scan (doublestar)")
}
