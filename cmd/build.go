package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Bitlatte/assembler/internal/build"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the home page and every SEO page",
	Long: `The build command creates the fragment and output directories, extracts
fragments from the legacy index.html when src/sections holds no hero fragment,
then writes index.html and one file per configured SEO page.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd)
	},
}

func runBuild(cmd *cobra.Command) error {
	d := &build.Driver{
		Config: appConfig,
		Dir:    workDir,
		Out:    cmd.OutOrStdout(),
		Logger: logger,
	}
	_, err := d.Run()
	return err
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
