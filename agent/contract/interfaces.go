package contract

import "context"

// Topicker distills a free-text chat message into a single topic string.
type Topicker interface {
	ExtractTopic(ctx context.Context, req TopicRequest) (TopicResponse, error)
}

// HaikuWriter composes a haiku about a topic, honoring the Haiku contract.
type HaikuWriter interface {
	Write(ctx context.Context, req HaikuRequest) (HaikuResponse, error)
}

type Registry interface {
	Topicker() Topicker
	HaikuWriter() HaikuWriter
}

type ToolGateway interface {
	Execute(ctx context.Context, agentType string, reqs []ToolRequest) ([]ToolResult, error)
}

type MemoryStore interface {
	ReadSummary(ctx context.Context, userID string) (string, error)
	WriteSummary(ctx context.Context, userID string, update string) error
}
