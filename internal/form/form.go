package form

import "github.com/Vovarama1992/agent-form-bridge/internal/providers"

// Form holds the values of the input controls.
type Form struct {
	SystemPrompt   string
	Provider       providers.Provider
	Model          string
	AllowSearch    bool
	AllowReasoning bool
	Query          string
}

// Request packages the form as a single-message chat request.
func (f Form) Request() ChatRequest {
	return ChatRequest{
		ModelName:      f.Model,
		ModelProvider:  string(f.Provider),
		SystemPrompt:   f.SystemPrompt,
		Messages:       []string{f.Query},
		AllowSearch:    f.AllowSearch,
		AllowReasoning: f.AllowReasoning,
	}
}

// EnabledTools names the enabled tool groups for display.
func (f Form) EnabledTools() []string {
	var out []string
	if f.AllowSearch {
		out = append(out, "Web Search")
	}
	if f.AllowReasoning {
		out = append(out, "Reasoning Tools")
	}
	return out
}
