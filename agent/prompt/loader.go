package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/topic.txt
	topicRaw string

	//go:embed template/haiku.txt
	haikuRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Topic string
	Haiku string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Topic: strings.TrimSpace(topicRaw),
		Haiku: strings.TrimSpace(haikuRaw),
	}
}
