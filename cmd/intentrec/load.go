package main

import (
	"fmt"
	"os"

	"intentrec"
)

func loadIntents() (*intentrec.Intents, error) {
	data, err := os.ReadFile(intentsFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", intentsFile, err)
	}
	intents, err := intentrec.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", intentsFile, err)
	}
	if language != "" {
		intents.Language = language
	}
	return intents, nil
}
