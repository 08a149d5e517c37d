package tool

import (
	"strings"
	"unicode/utf8"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
)

const ToolTopicExtract = "topic.extract"

const maxTopicLength = 120

type TopicExtractOutput struct {
	Topic string `json:"topic"`
}

// executeTopicTool validates the message argument and passes it through as
// the topic, truncated to a sane length. The model does the distillation; the
// tool only enforces the contract shape.
func executeTopicTool(tool string, args map[string]any) (contractx.ToolResult, error) {
	raw, ok := args["message"]
	if !ok {
		return contractx.ToolResult{
			Tool:  tool,
			Error: "message is required",
		}, nil
	}

	message, ok := raw.(string)
	if !ok {
		return contractx.ToolResult{
			Tool:  tool,
			Error: "message must be a string",
		}, nil
	}

	topic := strings.TrimSpace(message)
	if topic == "" {
		return contractx.ToolResult{
			Tool:  tool,
			Error: "message is empty",
		}, nil
	}
	if utf8.RuneCountInString(topic) > maxTopicLength {
		runes := []rune(topic)
		topic = strings.TrimSpace(string(runes[:maxTopicLength]))
	}

	return contractx.ToolResult{
		Tool:   tool,
		Result: TopicExtractOutput{Topic: topic},
	}, nil
}
