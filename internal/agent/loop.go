package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Vovarama1992/agent-form-bridge/internal/ai"
	"github.com/Vovarama1992/agent-form-bridge/internal/metrics"
)

const DefaultMaxSteps = 25

var ErrMaxSteps = errors.New("agent stopped after reaching max steps")

// Tool is a capability the model may call during a run.
type Tool interface {
	Spec() ai.ToolSpec
	// Invoke runs the tool with the raw JSON arguments chosen by the model.
	Invoke(ctx context.Context, arguments string) (string, error)
}

// Runtime alternates model calls and tool calls until the model answers
// without requesting tools.
type Runtime struct {
	MaxSteps int
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
}

func NewRuntime(maxSteps int, logger zerolog.Logger, m *metrics.Metrics) *Runtime {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Runtime{MaxSteps: maxSteps, Logger: logger, Metrics: m}
}

// Run returns the full transcript: the input turns followed by every
// assistant and tool turn produced by the run.
func (r *Runtime) Run(ctx context.Context, model ai.Model, tools []Tool, turns []ai.Turn) ([]ai.Turn, error) {
	maxSteps := r.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	byName := make(map[string]Tool, len(tools))
	specs := make([]ai.ToolSpec, 0, len(tools))
	for _, t := range tools {
		spec := t.Spec()
		byName[spec.Name] = t
		specs = append(specs, spec)
	}

	transcript := make([]ai.Turn, len(turns), len(turns)+4)
	copy(transcript, turns)

	for step := 1; step <= maxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return transcript, err
		}

		reply, err := model.Complete(ctx, transcript, specs)
		if err != nil {
			return transcript, fmt.Errorf("model call at step %d: %w", step, err)
		}
		if r.Metrics != nil {
			r.Metrics.AgentSteps.Inc()
		}

		reply.Role = ai.RoleAssistant
		transcript = append(transcript, reply)

		r.Logger.Debug().
			Int("step", step).
			Int("tool_calls", len(reply.ToolCalls)).
			Msg("model step")

		if len(reply.ToolCalls) == 0 {
			return transcript, nil
		}

		for _, call := range reply.ToolCalls {
			transcript = append(transcript, r.invoke(ctx, byName, call))
		}
	}

	return transcript, fmt.Errorf("%w (%d)", ErrMaxSteps, maxSteps)
}

// invoke never fails the run: errors are reported back to the model as the
// tool turn content.
func (r *Runtime) invoke(ctx context.Context, byName map[string]Tool, call ai.ToolCall) ai.Turn {
	tool, ok := byName[call.Name]
	r.countToolCall(call.Name, ok)
	if !ok {
		r.Logger.Warn().Str("tool", call.Name).Msg("model requested unknown tool")
		return ai.ToolTurn(call.ID, call.Name, fmt.Sprintf("Error: %s is not a valid tool, try one of the available tools.", call.Name))
	}

	out, err := tool.Invoke(ctx, call.Arguments)
	if err != nil {
		r.Logger.Warn().Err(err).Str("tool", call.Name).Msg("tool call failed")
		return ai.ToolTurn(call.ID, call.Name, fmt.Sprintf("Error: %v\n Please fix your mistakes.", err))
	}

	r.Logger.Debug().Str("tool", call.Name).Int("output_len", len(out)).Msg("tool call")
	return ai.ToolTurn(call.ID, call.Name, out)
}

// countToolCall labels calls to tools outside the run's set as "unknown" so
// invented names cannot grow the series set.
func (r *Runtime) countToolCall(name string, known bool) {
	if r.Metrics == nil {
		return
	}
	if !known {
		name = "unknown"
	}
	r.Metrics.ToolCalls.WithLabelValues(name).Inc()
}
