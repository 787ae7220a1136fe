package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	toolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "askwind_tool_calls_total",
			Help: "Total number of data-access tool invocations.",
		},
		[]string{"tool", "status"},
	)
	toolCallDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "askwind_tool_call_duration_seconds",
			Help:    "Tool invocation latency, including store round trips.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"tool"},
	)
	agentQuestionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "askwind_agent_questions_total",
			Help: "Total number of natural-language questions processed.",
		},
		[]string{"status"},
	)
	agentRounds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "askwind_agent_rounds",
			Help:    "Model round trips taken to answer one question.",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 10},
		},
	)
	llmRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "askwind_llm_requests_total",
			Help: "Total number of Messages API calls.",
		},
		[]string{"status"},
	)
	llmRequestDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "askwind_llm_request_duration_seconds",
			Help:    "Messages API call latency.",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		},
	)
)

func init() {
	prometheus.MustRegister(
		toolCallsTotal,
		toolCallDurationSeconds,
		agentQuestionsTotal,
		agentRounds,
		llmRequestsTotal,
		llmRequestDurationSeconds,
	)
}

func ObserveToolCall(tool string, isError bool, elapsed time.Duration) {
	status := "ok"
	if isError {
		status = "error"
	}
	toolCallsTotal.WithLabelValues(tool, status).Inc()
	toolCallDurationSeconds.WithLabelValues(tool).Observe(elapsed.Seconds())
}

func ObserveAgentQuestion(rounds int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	agentQuestionsTotal.WithLabelValues(status).Inc()
	if rounds > 0 {
		agentRounds.Observe(float64(rounds))
	}
}

func ObserveLLMRequest(err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	llmRequestsTotal.WithLabelValues(status).Inc()
	llmRequestDurationSeconds.Observe(elapsed.Seconds())
}
