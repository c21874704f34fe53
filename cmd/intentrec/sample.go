package main

import (
	"fmt"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"intentrec"
)

var (
	sampleIntent        string
	sampleSkipOptionals bool
	sampleTable         bool
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Enumerate the concrete sentences an intent's templates can produce",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sampleIntent == "" {
			return fmt.Errorf("sample requires --intent")
		}
		intents, err := loadIntents()
		if err != nil {
			return err
		}
		intent, ok := intents.Intents[sampleIntent]
		if !ok {
			return fmt.Errorf("no such intent: %s", sampleIntent)
		}

		var all []string
		for _, data := range intent.Data {
			sentences, err := data.Sentences()
			if err != nil {
				return err
			}
			for _, sentence := range sentences {
				samples, err := intentrec.SampleSentence(&intentrec.SampleSettings{
					SlotLists:      intents.SlotLists,
					ExpansionRules: intents.ExpansionRules,
					Language:       intents.Language,
					SkipOptionals:  sampleSkipOptionals,
				}, sentence)
				if err != nil {
					return err
				}
				all = append(all, samples...)
			}
		}

		if !sampleTable {
			for _, s := range all {
				fmt.Println(s)
			}
			return nil
		}
		printSampleTable(all)
		return nil
	},
}

// printSampleTable prints a right-aligned 1-based index column followed by
// each sample, padding every sample on the right to the widest one, using
// go-runewidth's display width so CJK and other double-width runes don't
// throw off terminal alignment.
func printSampleTable(samples []string) {
	indexWidth := len(strconv.Itoa(len(samples)))
	widest := 0
	for _, s := range samples {
		if w := runewidth.StringWidth(s); w > widest {
			widest = w
		}
	}
	for i, s := range samples {
		pad := widest - runewidth.StringWidth(s)
		fmt.Printf("%*d  %s%s\n", indexWidth, i+1, s, spaces(pad))
	}
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func init() {
	sampleCmd.Flags().StringVar(&sampleIntent, "intent", "", "name of the intent to sample")
	sampleCmd.Flags().BoolVar(&sampleSkipOptionals, "skip-optionals", false, "omit the non-empty branch of every optional group")
	sampleCmd.Flags().BoolVar(&sampleTable, "table", false, "column-align output with an index, instead of one bare line per sample")
	rootCmd.AddCommand(sampleCmd)
}
