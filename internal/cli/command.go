package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/sheettrans/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheettrans [file]",
		Short: "Spreadsheet and CSV column translator",
		Long: `sheettrans translates selected columns of spreadsheet, CSV and SQLite
files cell by cell with a hosted language model and saves the result
next to the input as <name>_translated.<ext>.

Examples:
  sheettrans                                   # Launch interactive GUI (default)
  sheettrans --list-columns data.xlsx          # Show sheets and columns
  sheettrans -c Greeting data.csv              # Translate English to Chinese in place
  sheettrans -c Title,Body --new-columns --source Chinese --target English book.xlsx
  sheettrans --batch files.txt -c Description  # Translate several files`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.sheettrans.yaml)")

	// Local flags
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process files listed in a file (one per line, optional '= sheet')")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")
	cmd.Flags().BoolVar(&flags.ListColumns, "list-columns", false, "List sheets and columns of the input file and exit")
	cmd.Flags().BoolVar(&flags.GUIMode, "gui", false, "Launch the GUI even when a file is given")
	cmd.Flags().StringVar(&flags.UILanguage, "ui-lang", "", "GUI language: en or zh (default: system locale)")

	// Translation flags
	cmd.Flags().StringVarP(&flags.Sheet, "sheet", "s", "", "Sheet to translate (default: first sheet)")
	cmd.Flags().StringSliceVarP(&flags.Columns, "columns", "c", nil, "Columns to translate (repeatable or comma separated)")
	cmd.Flags().BoolVar(&flags.AllColumns, "all-columns", false, "Translate every column of the sheet")
	cmd.Flags().StringVar(&flags.SourceLang, "source", flags.SourceLang, "Source language (name or code, e.g. English, zh)")
	cmd.Flags().StringVar(&flags.TargetLang, "target", flags.TargetLang, "Target language (name or code, e.g. Chinese, en)")
	cmd.Flags().BoolVar(&flags.NewColumns, "new-columns", false, "Write translations to <column>_translated instead of overwriting")
	cmd.Flags().IntVar(&flags.Workers, "workers", flags.Workers, "Concurrent provider calls (1 = sequential)")
	cmd.Flags().BoolVar(&flags.Dedupe, "dedupe", false, "Translate identical cell texts only once per run")

	// Provider flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: openai, gemini, bedrock or deeplx")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Model name (default depends on provider)")
	cmd.Flags().StringVar(&flags.Region, "region", flags.Region, "AWS region for the bedrock provider")
	cmd.Flags().StringVar(&flags.BaseURL, "base-url", "", "OpenAI-compatible base URL or DeepLX translate endpoint")
	cmd.Flags().StringVar(&flags.DeepLXURL, "deeplx-url", "", "DeepLX translate endpoint (default http://127.0.0.1:1188/translate)")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout for a single provider call")
	cmd.Flags().BoolVar(&flags.Breaker, "breaker", false, "Fail fast after repeated provider failures")
	cmd.Flags().IntVar(&flags.BreakerFailures, "breaker-failures", flags.BreakerFailures, "Consecutive failures before the breaker opens")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translate.sheet", cmd.Flags().Lookup("sheet"))
	viper.BindPFlag("translate.columns", cmd.Flags().Lookup("columns"))
	viper.BindPFlag("translate.source", cmd.Flags().Lookup("source"))
	viper.BindPFlag("translate.target", cmd.Flags().Lookup("target"))
	viper.BindPFlag("translate.new_columns", cmd.Flags().Lookup("new-columns"))
	viper.BindPFlag("translate.workers", cmd.Flags().Lookup("workers"))
	viper.BindPFlag("translate.dedupe", cmd.Flags().Lookup("dedupe"))
	viper.BindPFlag("provider.name", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("provider.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("provider.region", cmd.Flags().Lookup("region"))
	viper.BindPFlag("provider.base_url", cmd.Flags().Lookup("base-url"))
	viper.BindPFlag("provider.deeplx_url", cmd.Flags().Lookup("deeplx-url"))
	viper.BindPFlag("provider.timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("provider.breaker", cmd.Flags().Lookup("breaker"))
	viper.BindPFlag("provider.breaker_failures", cmd.Flags().Lookup("breaker-failures"))
	viper.BindPFlag("gui.language", cmd.Flags().Lookup("ui-lang"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

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

		// Search config in home directory with name ".sheettrans" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sheettrans")
	}

	// Environment variables
	// SHEETTRANS_TRANSLATE_SOURCE overrides translate.source
	viper.SetEnvPrefix("SHEETTRANS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// ApplyConfig copies viper values (flags, config file, environment) into flags
func ApplyConfig(flags *Flags) {
	flags.Sheet = viper.GetString("translate.sheet")
	flags.Columns = viper.GetStringSlice("translate.columns")
	flags.SourceLang = viper.GetString("translate.source")
	flags.TargetLang = viper.GetString("translate.target")
	flags.NewColumns = viper.GetBool("translate.new_columns")
	flags.Workers = viper.GetInt("translate.workers")
	flags.Dedupe = viper.GetBool("translate.dedupe")
	flags.Provider = viper.GetString("provider.name")
	flags.Model = viper.GetString("provider.model")
	flags.Region = viper.GetString("provider.region")
	flags.BaseURL = viper.GetString("provider.base_url")
	flags.DeepLXURL = viper.GetString("provider.deeplx_url")
	flags.Timeout = viper.GetDuration("provider.timeout")
	flags.Breaker = viper.GetBool("provider.breaker")
	flags.BreakerFailures = viper.GetInt("provider.breaker_failures")
	flags.UILanguage = viper.GetString("gui.language")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("provider.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("provider.gemini_key")
}

// GetAPIKey returns the API key for the named provider. Bedrock uses the
// AWS credential chain and DeepLX needs no key.
func GetAPIKey(provider string) string {
	switch provider {
	case "openai":
		return GetOpenAIKey()
	case "gemini":
		return GetGeminiKey()
	default:
		return ""
	}
}
