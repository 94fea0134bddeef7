package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	ChatRequests *prometheus.CounterVec
	AgentSteps   prometheus.Counter
	ToolCalls    *prometheus.CounterVec
}

var (
	once   sync.Once
	global *Metrics
)

func Global() *Metrics {
	once.Do(func() {
		global = &Metrics{
			ChatRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "agentbridge",
				Name:      "chat_requests_total",
				Help:      "Chat requests by provider and outcome",
			}, []string{"provider", "outcome"}),
			AgentSteps: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "agentbridge",
				Name:      "agent_steps_total",
				Help:      "Model calls made by the agent runtime",
			}),
			ToolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "agentbridge",
				Name:      "tool_calls_total",
				Help:      "Tool invocations requested by the model",
			}, []string{"tool"}),
		}
		prometheus.MustRegister(global.ChatRequests, global.AgentSteps, global.ToolCalls)
	})
	return global
}
