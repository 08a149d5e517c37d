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

type writerImpl struct {
	runner compose.Runnable[map[string]any, haikuLLMOutput]
}

type haikuLLMOutput struct {
	Japanese   []string `json:"japanese"`
	English    []string `json:"english"`
	ImageNames []string `json:"image_names"`
}

func newWriter(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*writerImpl, error) {
	runner, err := compileHaikuGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	return &writerImpl{runner: runner}, nil
}

func (w *writerImpl) Write(ctx context.Context, req contractx.HaikuRequest) (contractx.HaikuResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return contractx.HaikuResponse{}, fmt.Errorf("%w: topic is required", contractx.ErrValidation)
	}

	payload := map[string]any{"topic": topic}
	input, err := json.Marshal(payload)
	if err != nil {
		return contractx.HaikuResponse{}, fmt.Errorf("%w: marshal haiku payload: %v", contractx.ErrValidation, err)
	}

	out, err := w.runner.Invoke(ctx, map[string]any{"input": string(input)})
	if err != nil {
		return contractx.HaikuResponse{}, fmt.Errorf("%w: haiku invoke: %v", contractx.ErrModelInvoke, err)
	}

	haiku := contractx.Haiku{
		Japanese:   trimLines(out.Japanese),
		English:    trimLines(out.English),
		ImageNames: trimLines(out.ImageNames),
	}
	if err := haiku.Validate(); err != nil {
		return contractx.HaikuResponse{}, err
	}

	return contractx.HaikuResponse{Haiku: haiku}, nil
}

func trimLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.TrimSpace(line))
	}
	return out
}
