package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
	openrouterx "github.com/foliopilot/foliopilot/pkg/openrouter"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	TopicModel       string  `envconfig:"TOPIC_MODEL" split_words:"true"`
	HaikuModel       string  `envconfig:"HAIKU_MODEL" split_words:"true"`
	TopicTemperature float32 `envconfig:"TOPIC_TEMPERATURE" split_words:"true" default:"-1"`
	HaikuTemperature float32 `envconfig:"HAIKU_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// OpenRouterFor selects the model and temperature for an agent role, falling
// back to the defaults when the role has no override.
func (c Config) OpenRouterFor(agentType contractx.AgentType) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch agentType {
	case contractx.AgentTypeTopic:
		if v := strings.TrimSpace(c.TopicModel); v != "" {
			modelName = v
		}
		if c.TopicTemperature >= 0 {
			temp = c.TopicTemperature
		}
	case contractx.AgentTypeHaiku:
		if v := strings.TrimSpace(c.HaikuModel); v != "" {
			modelName = v
		}
		if c.HaikuTemperature >= 0 {
			temp = c.HaikuTemperature
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
