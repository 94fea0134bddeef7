package tools

import (
	"errors"

	"github.com/Vovarama1992/agent-form-bridge/internal/agent"
)

var ErrSearchUnavailable = errors.New("web search is not configured")

// Flags are the tool toggles of one chat request.
type Flags struct {
	Search    bool
	Reasoning bool
}

// Build returns the tools enabled by f in the fixed order search, reasoning,
// logical analysis. search may be nil when no search provider is configured.
func Build(f Flags, search agent.Tool) ([]agent.Tool, error) {
	if f.Search && search == nil {
		return nil, ErrSearchUnavailable
	}

	n := 0
	if f.Search {
		n++
	}
	if f.Reasoning {
		n += 2
	}

	out := make([]agent.Tool, 0, n)
	if f.Search {
		out = append(out, search)
	}
	if f.Reasoning {
		out = append(out, ReasoningTool{}, LogicalAnalysisTool{})
	}
	return out, nil
}

// Names lists the tool names in order.
func Names(list []agent.Tool) []string {
	names := make([]string, 0, len(list))
	for _, t := range list {
		names = append(names, t.Spec().Name)
	}
	return names
}
