package form

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/Vovarama1992/agent-form-bridge/internal/providers"
)

// PromptForm asks for every form field, using prev as defaults.
func PromptForm(catalog providers.Catalog, prev Form) (Form, error) {
	f := prev

	if err := survey.AskOne(&survey.Multiline{
		Message: "Define your AI Agent:",
		Default: prev.SystemPrompt,
		Help:    "The system prompt sent before your query. Finish with an empty line.",
	}, &f.SystemPrompt); err != nil {
		return Form{}, err
	}

	provider, err := PromptForProvider(prev.Provider)
	if err != nil {
		return Form{}, err
	}
	f.Provider = provider

	model, err := PromptForModel(catalog, provider, prev.Model)
	if err != nil {
		return Form{}, err
	}
	f.Model = model

	if err := survey.AskOne(&survey.Confirm{
		Message: "Allow Web Search?",
		Default: prev.AllowSearch,
		Help:    "Enable web search for real-time information",
	}, &f.AllowSearch); err != nil {
		return Form{}, err
	}

	if err := survey.AskOne(&survey.Confirm{
		Message: "Enable Reasoning Tools?",
		Default: prev.AllowReasoning,
		Help:    "Enable logical reasoning and analysis tools",
	}, &f.AllowReasoning); err != nil {
		return Form{}, err
	}

	f.Query = ""
	if err := survey.AskOne(&survey.Multiline{
		Message: "Enter your query:",
		Help:    "Ask Anything! Finish with an empty line.",
	}, &f.Query); err != nil {
		return Form{}, err
	}

	return f, nil
}

func PromptForProvider(def providers.Provider) (providers.Provider, error) {
	options := make([]string, 0, len(providers.All()))
	for _, p := range providers.All() {
		options = append(options, string(p))
	}
	if def == "" {
		def = providers.Groq
	}

	var selected string
	if err := survey.AskOne(&survey.Select{
		Message: "Select Provider:",
		Options: options,
		Default: string(def),
	}, &selected); err != nil {
		return "", err
	}
	return providers.Parse(selected)
}

func PromptForModel(catalog providers.Catalog, p providers.Provider, def string) (string, error) {
	options := catalog[p]
	if len(options) == 0 {
		return "", fmt.Errorf("no models available for %s", p)
	}

	prompt := &survey.Select{
		Message: fmt.Sprintf("Select %s Model:", p),
		Options: options,
	}
	if catalog.Allows(p, def) {
		prompt.Default = def
	}

	var selected string
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return selected, nil
}

// PromptAgain asks whether to submit another query.
func PromptAgain() (bool, error) {
	again := true
	err := survey.AskOne(&survey.Confirm{
		Message: "Ask the agent another question?",
		Default: true,
	}, &again)
	return again, err
}
