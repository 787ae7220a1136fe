// Package agent hosts the tool-calling loop that turns a natural-language
// question into an answer grounded in store queries.
package agent

import "context"

// Message is one entry in the conversation sent to the model.
type Message interface {
	// ToParam converts the message to the provider's parameter type.
	ToParam() any
}

// Response is one model reply.
type Response interface {
	Content() []ContentBlock
	// ToMessage converts the response into a Message for the running
	// conversation.
	ToMessage() Message
}

// ContentBlock is one block of a model reply: text or a tool-use request.
type ContentBlock interface {
	AsText() (text string, ok bool)
	AsToolUse() (id, name string, input []byte, ok bool)
}

// ToolUse is a tool invocation requested by the model.
type ToolUse struct {
	ID    string
	Name  string
	Input map[string]any
}

// ToolResult is the text outcome of one tool invocation.
type ToolResult struct {
	ID      string
	Content string
	IsError bool
}

// Tool describes one callable operation: the name and description are the
// entire contract the model matches against; InputSchema declares the named
// arguments as JSON schema.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
}

// ToolClient resolves tool calls by name and returns text. Failures inside
// a tool surface as marker-prefixed text with IsError set, never as a Go
// error; the error return is reserved for transport-level problems.
type ToolClient interface {
	ListTools(ctx context.Context) ([]Tool, error)
	CallToolText(ctx context.Context, name string, args map[string]any) (result string, isError bool, err error)
}

// LLMClient abstracts the chat-completion provider.
type LLMClient interface {
	Call(ctx context.Context, messages []Message, tools []Tool) (Response, error)
	UserMessage(content string) Message
	ConvertToolResults(toolUses []ToolUse, results []ToolResult) ([]Message, error)
}
