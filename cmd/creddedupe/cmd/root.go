package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taggedzi/creddedupe/internal/cmd/output"
	"github.com/taggedzi/creddedupe/pkg/logging"
)

var (
	configFile string
	formatFlag string
	verbose    bool
	quiet      bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "creddedupe",
	Short: "Password export deduplication CLI",
	Long: `Creddedupe normalizes CSV exports from password managers into a common
record model, finds duplicate credentials across them, and writes a cleaned
export back out in any supported manager's format.

Nothing is ever uploaded: all parsing, matching, and merging happens locally,
and no record is discarded without an explicit decision or an exact match.`,
	PersistentPreRunE: setupLogging,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.creddedupe.yaml)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", "output format: table, json, or yaml (default: table on a terminal, json otherwise)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")

	if err := viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format")); err != nil {
		panic(fmt.Sprintf("Failed to bind format flag: %v", err))
	}
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("Failed to bind verbose flag: %v", err))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".creddedupe")
	}

	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// loadEnvFiles loads .env files from the working directory, most specific
// first so earlier files win.
func loadEnvFiles() {
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	level := "info"
	switch {
	case quiet:
		level = "error"
	case verbose || viper.GetBool("verbose"):
		level = "debug"
	}
	os.Setenv("LOG_LEVEL", level)
	logging.Reload()
	return nil
}

// outputFormat resolves the output format from the flag, config, and the
// terminal state of stdout.
func outputFormat() (output.Format, error) {
	explicit := formatFlag
	if explicit == "" {
		explicit = viper.GetString("format")
	}
	if explicit != "" {
		if _, err := output.ParseFormat(explicit); err != nil {
			return "", err
		}
	}
	return output.DetectFormat(explicit), nil
}
