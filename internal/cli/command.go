package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/lexikort/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lexikort --input <file> --output <dir>",
		Short: "Swedish vocabulary lookup and flashcard export",
		Long: `lexikort looks up Swedish words in Folkets lexikon and Svensk ordbok,
merges what both dictionaries know about each word and writes one
directory per word class with _index.csv, _import.csv and the
pronunciation recordings.

Each line of the input file is a query: a word, optionally with a
parenthetical note and a "| category" suffix.

Examples:
  lexikort --input words.csv --output export
  lexikort --input words.csv --output export --apkg
  lexikort lookup "igång | adv."`,
		Args:         cobra.NoArgs,
		Version:      internal.Version,
		SilenceUsage: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

// CreateLookupCommand creates the subcommand resolving a single query line
func CreateLookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <query>",
		Short: "Look up one query and print the merged entry as JSON",
		Example: `  lexikort lookup igång
  lexikort lookup "hus (building) | subst."`,
		Args: cobra.ExactArgs(1),
	}
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.lexikort.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")

	// Local flags
	cmd.Flags().StringVarP(&flags.InputFile, "input", "i", "", "Query file, one query per line")
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", "", "Output directory for the export bundle")
	cmd.Flags().BoolVar(&flags.SkipAudio, "skip-audio", false, "Skip pronunciation downloads")
	cmd.Flags().BoolVar(&flags.APKG, "apkg", false, "Also write an Anki package per category")
	cmd.Flags().StringVar(&flags.DeckPrefix, "deck-prefix", flags.DeckPrefix, "Parent deck name for the Anki packages")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move a previous bundle in the output directory to archive/ first")

	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", cmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag(KeyDeckPrefix, cmd.Flags().Lookup("deck-prefix"))
	viper.BindPFlag(KeySkipAudio, cmd.Flags().Lookup("skip-audio"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	setDefaults()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".lexikort" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lexikort")
	}

	// Environment variables, LEXIKORT_HTTP_TIMEOUT for http.timeout
	viper.SetEnvPrefix("LEXIKORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
