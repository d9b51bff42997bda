package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Bitlatte/assembler/internal/config"
	"github.com/Bitlatte/assembler/internal/logging"
)

var (
	cfgFile   string
	workDir   string
	verbose   bool
	appConfig config.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "assembler",
	Short: "Assembles static pages from HTML fragments",
	Long: `assembler builds complete HTML pages from the fragments in src/components
and src/sections, adding per-page SEO metadata. Run without a subcommand it
builds the home page and every configured SEO page.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(verbose)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd)
	},
}

func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&workDir, "dir", ".", "build directory holding src/ and the generated pages")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initializeConfig(cmd *cobra.Command) error {
	cfg, used, err := loadConfig(cfgFile, workDir)
	if err != nil {
		return err
	}
	if used != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", used)
	}
	appConfig = cfg
	return nil
}

// loadConfig layers an optional config file and ASSEMBLER_* environment
// variables over config.Default. It returns the config file used, if any.
func loadConfig(file, dir string) (config.Config, string, error) {
	v := viper.New()

	def := config.Default()
	v.SetDefault("siteName", def.SiteName)
	v.SetDefault("siteURL", def.SiteURL)
	v.SetDefault("description", def.Description)
	v.SetDefault("ogImage", def.OGImage)
	v.SetDefault("homeTitle", def.HomeTitle)
	v.SetDefault("homeFile", def.HomeFile)
	v.SetDefault("srcDir", def.SrcDir)
	v.SetDefault("outputDir", def.OutputDir)
	v.SetDefault("legacyFile", def.LegacyFile)
	v.SetDefault("sitemap", def.Sitemap)
	v.SetDefault("homeSections", def.HomeSections)
	v.SetDefault("pages", def.Pages)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("ASSEMBLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || file != "" {
			return config.Config{}, "", fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return config.Config{}, "", fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return cfg, used, nil
}
