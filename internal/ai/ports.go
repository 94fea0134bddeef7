package ai

import "context"

// Model is one hosted chat model able to request tool calls.
type Model interface {
	Complete(ctx context.Context, turns []Turn, tools []ToolSpec) (Turn, error)
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Turn is one entry of the conversation handed to a model. The Role tag decides
// which of the optional fields are meaningful: ToolCalls on assistant turns,
// ToolCallID and ToolName on tool turns.
type Turn struct {
	Role       Role
	Text       string
	ToolCalls  []ToolCall
	ToolCallID string
	ToolName   string
}

type ToolCall struct {
	ID        string
	Name      string
	Arguments string // raw JSON object
}

// ToolSpec is how a tool is presented to the model.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any // JSON schema of the arguments object
}

func SystemTurn(text string) Turn {
	return Turn{Role: RoleSystem, Text: text}
}

func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Text: text}
}

func AssistantTurn(text string, calls ...ToolCall) Turn {
	return Turn{Role: RoleAssistant, Text: text, ToolCalls: calls}
}

func ToolTurn(callID, name, text string) Turn {
	return Turn{Role: RoleTool, Text: text, ToolCallID: callID, ToolName: name}
}

// LastAssistantText returns the content of the last assistant turn.
func LastAssistantText(turns []Turn) (string, bool) {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == RoleAssistant {
			return turns[i].Text, true
		}
	}
	return "", false
}
