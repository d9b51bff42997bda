package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/assembler/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract [legacy-file]",
	Short: "Extracts fragments from a single-file legacy page",
	Long: `The extract command splits a legacy page (default: the configured
legacyFile) into src/sections/<name>.html, src/components/header.html and
src/components/footer.html, overwriting existing fragments. Sections whose
boundaries are missing or ambiguous are reported and left untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		legacy := appConfig.LegacyFile
		if len(args) == 1 {
			legacy = args[0]
		}

		report, err := extract.New(workDir, appConfig.SrcDir, logger).Extract(legacy)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, p := range report.Written {
			fmt.Fprintf(out, "Extracted %s\n", p)
		}
		if len(report.Missing) > 0 {
			fmt.Fprintf(out, "Not found in %s: %s\n", legacy, strings.Join(report.Missing, ", "))
		}
		for _, p := range report.Problems {
			fmt.Fprintf(out, "Skipped %v\n", p)
		}
		fmt.Fprintf(out, "%d fragment(s) written\n", len(report.Written))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
