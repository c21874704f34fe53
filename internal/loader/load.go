package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"intentrec/internal/model"
	"intentrec/internal/parser"
)

// FromYAML decodes a single intents document from YAML bytes.
func FromYAML(data []byte) (*model.Intents, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding intents yaml: %w", err)
	}
	return fromRaw(&raw)
}

func fromRaw(raw *rawDocument) (*model.Intents, error) {
	globalLists := make(map[string]model.SlotList, len(raw.Lists))
	for name, rawList := range raw.Lists {
		list, err := buildSlotList(name, rawList, nil)
		if err != nil {
			return nil, err
		}
		globalLists[name] = list
	}

	globalRules, err := buildExpansionRules(raw.ExpansionRules, nil)
	if err != nil {
		return nil, err
	}

	intents := make(map[string]*model.Intent, len(raw.Intents))
	for intentName, rawIntent := range raw.Intents {
		meta := &parser.Metadata{IntentName: intentName}

		data := make([]*model.IntentData, 0, len(rawIntent.Data))
		for _, rawData := range rawIntent.Data {
			localLists := make(map[string]model.SlotList, len(rawData.Lists))
			for name, rawList := range rawData.Lists {
				list, err := buildSlotList(name, rawList, meta)
				if err != nil {
					return nil, err
				}
				localLists[name] = list
			}

			localRules, err := buildExpansionRules(rawData.ExpansionRules, meta)
			if err != nil {
				return nil, err
			}

			id := model.NewIntentData(rawData.Sentences, parseFnFor(meta))
			id.Slots = rawData.Slots
			id.RequiresContext = rawData.RequiresContext
			id.ExcludesContext = rawData.ExcludesContext
			id.Response = rawData.Response
			id.Metadata = rawData.Metadata
			id.SlotLists = localLists
			id.ExpansionRules = localRules
			id.RequiredKeywords = rawData.RequiredKeywords

			data = append(data, id)
		}

		intents[intentName] = &model.Intent{Name: intentName, Data: data}
	}

	return &model.Intents{
		Language:       raw.Language,
		Intents:        intents,
		SlotLists:      globalLists,
		ExpansionRules: globalRules,
		SkipWords:      raw.SkipWords,
		Settings: model.Settings{
			IgnoreWhitespace: raw.Settings.IgnoreWhitespace,
			FilterWithRegex:  raw.Settings.FilterWithRegex,
		},
	}, nil
}

func parseFnFor(meta *parser.Metadata) func(string) (*model.Sentence, error) {
	return func(text string) (*model.Sentence, error) {
		return parser.ParseSentence(text, false, meta)
	}
}

func buildExpansionRules(raw map[string]string, meta *parser.Metadata) (map[string]*model.Sentence, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	rules := make(map[string]*model.Sentence, len(raw))
	for name, text := range raw {
		sentence, err := parser.ParseSentence(text, false, meta)
		if err != nil {
			return nil, err
		}
		rules[name] = sentence
	}
	return rules, nil
}

// Validate parses every sentence template in intents and checks that every
// ListReference it contains, directly or through an expansion rule that
// resolves, names a list in the merged (global ∪ local) slot lists, without
// running the matcher. It surfaces a typo'd list name before the first
// recognition attempt rather than as a silent no-match. A RuleReference
// naming no declared rule is not reported. It returns the first problem
// found.
func Validate(intents *model.Intents) error {
	for intentName, intent := range intents.Intents {
		for _, data := range intent.Data {
			sentences, err := data.Sentences()
			if err != nil {
				return fmt.Errorf("intent %s: %w", intentName, err)
			}

			rules := mergeStringMaps(intents.ExpansionRules, data.ExpansionRules)
			lists := mergeStringMaps(intents.SlotLists, data.SlotLists)

			for _, sentence := range sentences {
				for _, listName := range model.ExpressionListNames(sentence.Root, rules) {
					if _, ok := lists[listName]; !ok {
						return &model.MissingListError{ListName: listName}
					}
				}
			}
		}
	}
	return nil
}
