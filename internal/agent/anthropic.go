package agent

import (
	"context"
	"fmt"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/askwind/askwind/internal/config"
)

// AnthropicClient implements LLMClient on the Anthropic Messages API.
type AnthropicClient struct {
	client      anthropic.Client
	model       anthropic.Model
	maxTokens   int64
	temperature float64
	system      string
}

// NewAnthropicClient builds a client from agent configuration. The API key
// must already be present; config validation reports a missing key before
// this point.
func NewAnthropicClient(cfg config.AgentConfig) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	return &AnthropicClient{
		client:      anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:       anthropic.Model(cfg.Model),
		maxTokens:   int64(cfg.MaxTokens),
		temperature: cfg.Temperature,
		system:      systemPrompt,
	}, nil
}

func (c *AnthropicClient) Call(ctx context.Context, messages []Message, tools []Tool) (Response, error) {
	params := anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Opt(c.temperature),
		Messages:    make([]anthropic.MessageParam, 0, len(messages)),
		Tools:       toAnthropicTools(tools),
	}
	if c.system != "" {
		params.System = []anthropic.TextBlockParam{{Text: c.system}}
	}
	for _, msg := range messages {
		param, ok := msg.ToParam().(anthropic.MessageParam)
		if !ok {
			return nil, fmt.Errorf("expected anthropic.MessageParam, got %T", msg.ToParam())
		}
		params.Messages = append(params.Messages, param)
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return anthropicResponse{message: resp}, nil
}

func (c *AnthropicClient) UserMessage(content string) Message {
	return anthropicMessage{param: anthropic.NewUserMessage(anthropic.NewTextBlock(content))}
}

// ConvertToolResults packs tool outcomes into a single user message carrying
// one tool_result block per requested call.
func (c *AnthropicClient) ConvertToolResults(toolUses []ToolUse, results []ToolResult) ([]Message, error) {
	if len(toolUses) != len(results) {
		return nil, fmt.Errorf("tool use and result counts differ: %d vs %d", len(toolUses), len(results))
	}
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(results))
	for _, result := range results {
		blocks = append(blocks, anthropic.NewToolResultBlock(result.ID, result.Content, result.IsError))
	}
	return []Message{anthropicMessage{param: anthropic.NewUserMessage(blocks...)}}, nil
}

func toAnthropicTools(tools []Tool) []anthropic.ToolUnionParam {
	params := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, tool := range tools {
		props, _ := tool.InputSchema["properties"].(map[string]any)
		required, _ := tool.InputSchema["required"].([]string)
		toolParam := anthropic.ToolParam{
			Name:        tool.Name,
			Description: anthropic.Opt(tool.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Type:       "object",
				Properties: props,
				Required:   required,
			},
		}
		params = append(params, anthropic.ToolUnionParam{OfTool: &toolParam})
	}
	return params
}

// anthropicMessage wraps a MessageParam so the loop can hold provider
// messages behind the Message interface.
type anthropicMessage struct {
	param anthropic.MessageParam
}

func (m anthropicMessage) ToParam() any { return m.param }

type anthropicResponse struct {
	message *anthropic.Message
}

func (r anthropicResponse) Content() []ContentBlock {
	blocks := make([]ContentBlock, 0, len(r.message.Content))
	for _, block := range r.message.Content {
		blocks = append(blocks, anthropicContentBlock{block: block})
	}
	return blocks
}

func (r anthropicResponse) ToMessage() Message {
	return anthropicMessage{param: r.message.ToParam()}
}

type anthropicContentBlock struct {
	block anthropic.ContentBlockUnion
}

func (b anthropicContentBlock) AsText() (string, bool) {
	text := b.block.AsText()
	if text.Text == "" {
		return "", false
	}
	return text.Text, true
}

func (b anthropicContentBlock) AsToolUse() (string, string, []byte, bool) {
	use := b.block.AsToolUse()
	if use.ID == "" || use.Name == "" {
		return "", "", nil, false
	}
	return use.ID, use.Name, use.Input, true
}
