package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"intentrec"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every sentence template parses and every list it references resolves",
	RunE: func(cmd *cobra.Command, args []string) error {
		intents, err := loadIntents()
		if err != nil {
			return err
		}
		if err := intentrec.Validate(intents); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
