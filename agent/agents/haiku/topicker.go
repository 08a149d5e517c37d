package haiku

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/goccy/go-json"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
)

type topickerImpl struct {
	runner compose.Runnable[map[string]any, topicLLMOutput]
}

type topicLLMOutput struct {
	Topic string `json:"topic"`
}

func newTopicker(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*topickerImpl, error) {
	runner, err := compileTopicGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	return &topickerImpl{runner: runner}, nil
}

func (t *topickerImpl) ExtractTopic(ctx context.Context, req contractx.TopicRequest) (contractx.TopicResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return contractx.TopicResponse{}, fmt.Errorf("%w: message is required", contractx.ErrValidation)
	}

	payload := map[string]any{"message": req.Message}
	input, err := json.Marshal(payload)
	if err != nil {
		return contractx.TopicResponse{}, fmt.Errorf("%w: marshal topic payload: %v", contractx.ErrValidation, err)
	}

	out, err := t.runner.Invoke(ctx, map[string]any{"input": string(input)})
	if err != nil {
		return contractx.TopicResponse{}, fmt.Errorf("%w: topic invoke: %v", contractx.ErrModelInvoke, err)
	}

	topic := strings.TrimSpace(out.Topic)
	if topic == "" {
		return contractx.TopicResponse{}, fmt.Errorf("%w: model returned an empty topic", contractx.ErrSchemaViolation)
	}

	return contractx.TopicResponse{Topic: topic}, nil
}
