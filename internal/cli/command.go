package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/vocabbuilder/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vocabbuilder",
		Short: "Kindle Vocabulary Builder to Anki importer",
		Long: `vocabbuilder turns the words you looked up on your Kindle into Anki
cloze flashcards.

Each word is defined with the Larousse dictionary, the sentence you read
it in is translated, and the result is written as an Anki package.

Examples:
  vocabbuilder                              # Import from a mounted Kindle
  vocabbuilder --db ~/vocab.db --since 2024-01-01
  vocabbuilder --batch words.txt            # Import words from a file
  vocabbuilder --anki-csv --translator none # CSV without translations`,
		Args:         cobra.NoArgs,
		Version:      internal.Version,
		SilenceUsage: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Decks go to the home directory unless configured otherwise
	defaultOutputDir, _ := os.UserHomeDir()

	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.vocabbuilder.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")

	// Source flags
	cmd.Flags().StringVar(&flags.DBPath, "db", flags.DBPath, "Path to the Kindle vocabulary database (vocab.db)")
	cmd.Flags().StringVarP(&flags.Lang, "lang", "l", flags.Lang, "Language of the looked-up words")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Import words from file instead of the Kindle (word [(stem)] [= usage] per line)")
	cmd.Flags().StringVar(&flags.Since, "since", "", "Only import lookups made on or after this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&flags.Limit, "limit", 0, "Import at most this many lookups (0 imports all)")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Snapshot the Kindle vocabulary database before importing")

	// Output flags
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", defaultOutputDir, "Output directory for the deck file")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Anki deck name")
	cmd.Flags().BoolVar(&flags.AnkiCSV, "anki-csv", false, "Generate CSV instead of APKG")

	// Dictionary flags
	cmd.Flags().StringVar(&flags.DictionaryURL, "dictionary-url", flags.DictionaryURL, "Dictionary lookup URL template (%s is replaced by the word)")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout for a single dictionary lookup, with a unit (e.g. 15s)")

	// Translation flags
	cmd.Flags().StringVar(&flags.TranslationProvider, "translator", flags.TranslationProvider, "Translation provider: openai, gemini or none")
	cmd.Flags().StringVar(&flags.TargetLang, "target-lang", flags.TargetLang, "Language to translate usage sentences to")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model used for translation")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model used for translation")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("kindle.db", cmd.Flags().Lookup("db"))
	viper.BindPFlag("kindle.lang", cmd.Flags().Lookup("lang"))
	viper.BindPFlag("output.directory", cmd.Flags().Lookup("output"))
	viper.BindPFlag("anki.deck_name", cmd.Flags().Lookup("deck-name"))
	viper.BindPFlag("dictionary.url", cmd.Flags().Lookup("dictionary-url"))
	viper.BindPFlag("dictionary.timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("translator"))
	viper.BindPFlag("translation.target_lang", cmd.Flags().Lookup("target-lang"))
	viper.BindPFlag("translation.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("translation.gemini_model", cmd.Flags().Lookup("gemini-model"))
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", cmd.PersistentFlags().Lookup("log-format"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
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

		// Search config in home directory with name ".vocabbuilder" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vocabbuilder")
	}

	// Environment variables
	viper.SetEnvPrefix("VOCABBUILDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("translation.gemini_key")
}
