package haiku

import (
	"context"
	"fmt"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
	llmx "github.com/foliopilot/foliopilot/agent/llm"
	promptx "github.com/foliopilot/foliopilot/agent/prompt"
)

type registryImpl struct {
	topicker contractx.Topicker
	writer   contractx.HaikuWriter
}

func (r *registryImpl) Topicker() contractx.Topicker {
	return r.topicker
}

func (r *registryImpl) HaikuWriter() contractx.HaikuWriter {
	return r.writer
}

// NewRegistry builds the LLM-backed topic extractor and haiku writer from the
// shared model config.
func NewRegistry(ctx context.Context, cfg llmx.Config) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()
	if prompts.Topic == "" {
		return nil, fmt.Errorf("%w: topic prompt", contractx.ErrPromptMissing)
	}
	if prompts.Haiku == "" {
		return nil, fmt.Errorf("%w: haiku prompt", contractx.ErrPromptMissing)
	}

	topicModelCfg := cfg.OpenRouterFor(contractx.AgentTypeTopic)
	topicModel, err := topicModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create topic model: %v", contractx.ErrModelInvoke, err)
	}
	haikuModelCfg := cfg.OpenRouterFor(contractx.AgentTypeHaiku)
	haikuModel, err := haikuModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create haiku model: %v", contractx.ErrModelInvoke, err)
	}

	topicker, err := newTopicker(ctx, topicModel, prompts.Topic)
	if err != nil {
		return nil, err
	}
	writer, err := newWriter(ctx, haikuModel, prompts.Haiku)
	if err != nil {
		return nil, err
	}

	return &registryImpl{
		topicker: topicker,
		writer:   writer,
	}, nil
}
