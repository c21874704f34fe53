package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"intentrec"
)

var (
	bestMetadataKey string
	bestSlotName    string
	allowUnmatched  bool
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize [sentence...]",
	Short: "Recognize the best-matching intent for a sentence",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("recognize requires at least one word of input")
		}
		intents, err := loadIntents()
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		result, err := intentrec.RecognizeBest(text, intents, recognizeOptions(), bestMetadataKey, bestSlotName)
		if err != nil {
			return err
		}
		if result == nil {
			fmt.Println("no match")
			return nil
		}
		printResult(result)
		return nil
	},
}

var recognizeAllCmd = &cobra.Command{
	Use:   "recognize-all [sentence...]",
	Short: "List every intent that matches a sentence",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("recognize-all requires at least one word of input")
		}
		intents, err := loadIntents()
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		results, err := intentrec.RecognizeAll(text, intents, recognizeOptions())
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("no match")
			return nil
		}
		for _, result := range results {
			printResult(result)
			fmt.Println("---")
		}
		return nil
	},
}

func recognizeOptions() *intentrec.Options {
	return &intentrec.Options{AllowUnmatchedEntities: allowUnmatched, Language: language}
}

func printResult(result *intentrec.Result) {
	fmt.Printf("intent: %s\n", result.IntentName)
	fmt.Printf("response: %s\n", result.Response)
	for name, entity := range result.EntitiesByName {
		fmt.Printf("  %s = %v (%q)\n", name, entity.Value, entity.Text)
	}
	for _, unmatched := range result.UnmatchedEntities {
		fmt.Printf("  ? %s (unmatched)\n", unmatched.EntityName())
	}
}

func init() {
	recognizeCmd.Flags().StringVar(&bestMetadataKey, "best-metadata-key", "", "prefer matches whose metadata has this key set")
	recognizeCmd.Flags().StringVar(&bestSlotName, "best-slot-name", "", "prefer matches with a non-wildcard value for this slot")
	recognizeCmd.Flags().BoolVar(&allowUnmatched, "allow-unmatched-entities", false, "allow entities that fail to match any slot list value")
	recognizeAllCmd.Flags().BoolVar(&allowUnmatched, "allow-unmatched-entities", false, "allow entities that fail to match any slot list value")

	rootCmd.AddCommand(recognizeCmd)
	rootCmd.AddCommand(recognizeAllCmd)
}
