package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/askwind/askwind/internal/observability"
)

const defaultMaxRounds = 10

// Config wires an Agent.
type Config struct {
	Logger *slog.Logger
	LLM    LLMClient
	Tools  ToolClient

	// MaxRounds bounds the number of model calls per question. Zero means
	// the default.
	MaxRounds int
}

func (c *Config) Validate() error {
	if c.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	if c.LLM == nil {
		return fmt.Errorf("llm client is required")
	}
	if c.Tools == nil {
		return fmt.Errorf("tool client is required")
	}
	if c.MaxRounds < 0 {
		return fmt.Errorf("max rounds must not be negative")
	}
	if c.MaxRounds == 0 {
		c.MaxRounds = defaultMaxRounds
	}
	return nil
}

// Agent answers one question at a time by looping between the model and the
// registered tools until the model stops requesting tool calls or the round
// budget runs out.
type Agent struct {
	log       *slog.Logger
	llm       LLMClient
	tools     ToolClient
	maxRounds int
}

func New(cfg Config) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid agent config: %w", err)
	}
	return &Agent{
		log:       cfg.Logger,
		llm:       cfg.LLM,
		tools:     cfg.Tools,
		maxRounds: cfg.MaxRounds,
	}, nil
}

// Ask runs the tool-calling loop for a single question and returns the
// model's final text. Each question is an independent exchange; no state is
// carried between calls.
func (a *Agent) Ask(ctx context.Context, question string) (string, error) {
	tools, err := a.tools.ListTools(ctx)
	if err != nil {
		observability.ObserveAgentQuestion(0, err)
		return "", fmt.Errorf("list tools: %w", err)
	}

	messages := []Message{a.llm.UserMessage(question)}
	rounds := 0
	var lastText string

	for round := 0; round < a.maxRounds; round++ {
		rounds = round + 1
		finalRound := round == a.maxRounds-1
		if finalRound && round > 0 {
			messages = append(messages, a.llm.UserMessage(finalizePrompt))
		}

		start := time.Now()
		response, err := a.llm.Call(ctx, messages, tools)
		observability.ObserveLLMRequest(err, time.Since(start))
		if err != nil {
			observability.ObserveAgentQuestion(rounds, err)
			return "", fmt.Errorf("model call: %w", err)
		}
		messages = append(messages, response.ToMessage())

		if text := textContent(response); text != "" {
			lastText = text
		}
		toolUses := extractToolUses(response.Content())
		a.log.DebugContext(ctx, "agent_round",
			slog.Int("round", rounds),
			slog.Int("tool_calls", len(toolUses)),
		)

		if len(toolUses) == 0 || finalRound {
			if lastText == "" {
				err := fmt.Errorf("model produced no answer after %d rounds", rounds)
				observability.ObserveAgentQuestion(rounds, err)
				return "", err
			}
			observability.ObserveAgentQuestion(rounds, nil)
			return lastText, nil
		}

		results := a.executeTools(ctx, toolUses)
		resultMessages, err := a.llm.ConvertToolResults(toolUses, results)
		if err != nil {
			observability.ObserveAgentQuestion(rounds, err)
			return "", fmt.Errorf("convert tool results: %w", err)
		}
		messages = append(messages, resultMessages...)
	}

	err = fmt.Errorf("model produced no answer after %d rounds", rounds)
	observability.ObserveAgentQuestion(rounds, err)
	return "", err
}

// executeTools runs the requested tool calls concurrently and reports the
// results in request order.
func (a *Agent) executeTools(ctx context.Context, toolUses []ToolUse) []ToolResult {
	results := make([]ToolResult, len(toolUses))
	var wg sync.WaitGroup
	for i, use := range toolUses {
		wg.Add(1)
		go func(i int, use ToolUse) {
			defer wg.Done()
			content, isErr, err := a.tools.CallToolText(ctx, use.Name, use.Input)
			if err != nil {
				content = fmt.Sprintf("Error: %v", err)
				isErr = true
			}
			if isErr {
				a.log.WarnContext(ctx, "tool_call_failed",
					slog.String("tool", use.Name),
					slog.String("result", content),
				)
			}
			results[i] = ToolResult{ID: use.ID, Content: content, IsError: isErr}
		}(i, use)
	}
	wg.Wait()
	return results
}

func extractToolUses(blocks []ContentBlock) []ToolUse {
	var uses []ToolUse
	for _, block := range blocks {
		id, name, input, ok := block.AsToolUse()
		if !ok {
			continue
		}
		args := map[string]any{}
		if len(input) > 0 {
			if err := json.Unmarshal(input, &args); err != nil {
				args = map[string]any{}
			}
		}
		uses = append(uses, ToolUse{ID: id, Name: name, Input: args})
	}
	return uses
}

func textContent(response Response) string {
	var text string
	for _, block := range response.Content() {
		if t, ok := block.AsText(); ok {
			if text != "" {
				text += "\n"
			}
			text += t
		}
	}
	return text
}
