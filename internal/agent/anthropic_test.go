package agent

import (
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askwind/askwind/internal/config"
)

func TestNewAnthropicClientRequiresKey(t *testing.T) {
	_, err := NewAnthropicClient(config.AgentConfig{Model: "claude-3-5-haiku-20241022"})
	require.ErrorContains(t, err, "api key")
}

func TestNewAnthropicClientMapsConfig(t *testing.T) {
	client, err := NewAnthropicClient(config.AgentConfig{
		APIKey:      "sk-test",
		Model:       "claude-3-5-haiku-20241022",
		MaxTokens:   2000,
		Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, anthropic.Model("claude-3-5-haiku-20241022"), client.model)
	assert.Equal(t, int64(2000), client.maxTokens)
	assert.InDelta(t, 0.7, client.temperature, 1e-9)
	assert.NotEmpty(t, client.system, "system prompt is wired in at construction")
}

func TestToAnthropicTools(t *testing.T) {
	params := toAnthropicTools([]Tool{{
		Name:        "execute_query",
		Description: "Run a SQL query",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{"type": "string"},
			},
			"required": []string{"query"},
		},
	}})
	require.Len(t, params, 1)
	require.NotNil(t, params[0].OfTool)
	assert.Equal(t, "execute_query", params[0].OfTool.Name)
	assert.Equal(t, []string{"query"}, params[0].OfTool.InputSchema.Required)
	assert.NotNil(t, params[0].OfTool.InputSchema.Properties)
}

func TestUserMessageWrapsParam(t *testing.T) {
	client, err := NewAnthropicClient(config.AgentConfig{APIKey: "sk-test", Model: "m", MaxTokens: 1})
	require.NoError(t, err)

	msg := client.UserMessage("How many orders?")
	param, ok := msg.ToParam().(anthropic.MessageParam)
	require.True(t, ok)
	assert.Equal(t, "user", string(param.Role))
	require.Len(t, param.Content, 1)
}

func TestConvertToolResultsPacksOneUserMessage(t *testing.T) {
	client, err := NewAnthropicClient(config.AgentConfig{APIKey: "sk-test", Model: "m", MaxTokens: 1})
	require.NoError(t, err)

	msgs, err := client.ConvertToolResults(
		[]ToolUse{{ID: "tu_1", Name: "list_tables"}, {ID: "tu_2", Name: "execute_query"}},
		[]ToolResult{{ID: "tu_1", Content: "[]"}, {ID: "tu_2", Content: "Error executing query: boom", IsError: true}},
	)
	require.NoError(t, err)
	require.Len(t, msgs, 1, "all tool results travel in one user turn")

	param, ok := msgs[0].ToParam().(anthropic.MessageParam)
	require.True(t, ok)
	assert.Equal(t, "user", string(param.Role))
	assert.Len(t, param.Content, 2)
}

func TestConvertToolResultsRejectsCountMismatch(t *testing.T) {
	client, err := NewAnthropicClient(config.AgentConfig{APIKey: "sk-test", Model: "m", MaxTokens: 1})
	require.NoError(t, err)

	_, err = client.ConvertToolResults([]ToolUse{{ID: "tu_1"}}, nil)
	require.ErrorContains(t, err, "counts differ")
}
