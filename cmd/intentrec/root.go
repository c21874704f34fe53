package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	intentsFile string
	language    string
)

var rootCmd = &cobra.Command{
	Use:          "intentrec",
	Short:        "intentrec",
	SilenceUsage: true,
	Long:         `Template-based intent recognizer for YAML-declared sentence intents.`,
}

// Execute runs the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&intentsFile, "intents", "i", defaultIntentsFile(), "path to the intents YAML file")
	rootCmd.PersistentFlags().StringVarP(&language, "language", "l", defaultLanguage(), "language code, overrides the intents file's own language")
	return rootCmd.Execute()
}

func defaultIntentsFile() string {
	return valueOrDefault(os.Getenv("INTENTREC_FILE"), "intents.yaml")
}

func defaultLanguage() string {
	return os.Getenv("INTENTREC_LANGUAGE")
}

func valueOrDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
