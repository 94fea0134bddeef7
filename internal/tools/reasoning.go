package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Vovarama1992/agent-form-bridge/internal/agent"
	"github.com/Vovarama1992/agent-form-bridge/internal/ai"
)

const (
	ReasoningToolName       = "reasoning_tool"
	LogicalAnalysisToolName = "logical_analysis_tool"
)

// Reason lays out a problem and its steps as a numbered reasoning block.
// It does no reasoning of its own: the model supplies the steps.
func Reason(problem string, steps []string) string {
	var b strings.Builder
	b.WriteString("🧠 **Reasoning Analysis**\n\n")
	fmt.Fprintf(&b, "**Problem:** %s\n\n", problem)
	b.WriteString("**Step-by-step reasoning:**\n")
	for i, step := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("\n**Conclusion:** Based on the above reasoning steps, ")
	fmt.Fprintf(&b, "this analysis provides a logical framework for understanding '%s'.", problem)
	return b.String()
}

// Analyze restates a premise and conclusion in a fixed template.
func Analyze(premise, conclusion string) string {
	var b strings.Builder
	b.WriteString("🔍 **Logical Analysis**\n\n")
	fmt.Fprintf(&b, "**Premise:** %s\n", premise)
	fmt.Fprintf(&b, "**Conclusion:** %s\n\n", conclusion)
	b.WriteString("**Analysis:** Examining the logical connection between the premise and conclusion...\n")
	b.WriteString("This tool helps evaluate whether the conclusion logically follows from the given premise.")
	return b.String()
}

type ReasoningTool struct{}

var _ agent.Tool = ReasoningTool{}

func (ReasoningTool) Spec() ai.ToolSpec {
	return ai.ToolSpec{
		Name:        ReasoningToolName,
		Description: "A reasoning tool that helps break down complex problems into logical steps. Returns a structured reasoning analysis.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"problem": map[string]any{
					"type":        "string",
					"description": "The problem or question to reason through",
				},
				"steps": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "A list of reasoning steps to work through the problem",
				},
			},
			"required": []string{"problem", "steps"},
		},
	}
}

func (ReasoningTool) Invoke(_ context.Context, arguments string) (string, error) {
	var in struct {
		Problem string   `json:"problem"`
		Steps   []string `json:"steps"`
	}
	if err := decodeArgs(arguments, &in); err != nil {
		return "", err
	}
	return Reason(in.Problem, in.Steps), nil
}

type LogicalAnalysisTool struct{}

var _ agent.Tool = LogicalAnalysisTool{}

func (LogicalAnalysisTool) Spec() ai.ToolSpec {
	return ai.ToolSpec{
		Name:        LogicalAnalysisToolName,
		Description: "Analyzes the logical connection between a premise and conclusion.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"premise": map[string]any{
					"type":        "string",
					"description": "The starting assumption or fact",
				},
				"conclusion": map[string]any{
					"type":        "string",
					"description": "The proposed conclusion",
				},
			},
			"required": []string{"premise", "conclusion"},
		},
	}
}

func (LogicalAnalysisTool) Invoke(_ context.Context, arguments string) (string, error) {
	var in struct {
		Premise    string `json:"premise"`
		Conclusion string `json:"conclusion"`
	}
	if err := decodeArgs(arguments, &in); err != nil {
		return "", err
	}
	return Analyze(in.Premise, in.Conclusion), nil
}

func decodeArgs(arguments string, v any) error {
	if strings.TrimSpace(arguments) == "" {
		arguments = "{}"
	}
	if err := json.Unmarshal([]byte(arguments), v); err != nil {
		return fmt.Errorf("invalid tool arguments: %w", err)
	}
	return nil
}
