package contract

import (
	"fmt"
	"strings"
)

type AgentType string

const (
	AgentTypeCopilot AgentType = "copilot"
	AgentTypeTopic   AgentType = "topic"
	AgentTypeHaiku   AgentType = "haiku"
)

// HaikuLineCount is the fixed number of lines a haiku carries in each
// language.
const HaikuLineCount = 3

// PermittedImageNames is the closed list of illustration filenames a haiku
// may reference. The haiku contract rejects anything outside it.
var PermittedImageNames = []string{
	"Osaka_Castle.jpg",
	"Mount_Fuji.jpg",
	"Itsukushima_Shrine.jpg",
	"Tokyo_Skyline.jpg",
	"Kyoto_Bamboo_Grove.jpg",
	"Senso-ji_Temple.jpg",
	"Shibuya_Crossing.jpg",
	"Sakura_Blossoms.jpg",
	"Nara_Deer_Park.jpg",
	"Gion_District.jpg",
}

var permittedImageSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(PermittedImageNames))
	for _, name := range PermittedImageNames {
		set[name] = struct{}{}
	}
	return set
}()

// ImagePermitted reports whether name is on the closed illustration list.
func ImagePermitted(name string) bool {
	_, ok := permittedImageSet[name]
	return ok
}

type TopicRequest struct {
	Message string `json:"message"`
}

type TopicResponse struct {
	Topic string `json:"topic"`
}

// Haiku is the haiku-generation contract: parallel ordered sequences of
// source-language lines, translated lines, and illustration filenames.
type Haiku struct {
	Japanese   []string `json:"japanese"`
	English    []string `json:"english"`
	ImageNames []string `json:"image_names"`
}

// Validate enforces the haiku contract: exactly HaikuLineCount lines per
// language, parallel sequences of equal length, and images restricted to the
// permitted list.
func (h Haiku) Validate() error {
	if len(h.Japanese) != HaikuLineCount {
		return fmt.Errorf("%w: expected %d japanese lines, got %d", ErrSchemaViolation, HaikuLineCount, len(h.Japanese))
	}
	if len(h.English) != len(h.Japanese) {
		return fmt.Errorf("%w: japanese and english line counts differ (%d != %d)", ErrSchemaViolation, len(h.Japanese), len(h.English))
	}
	for i, line := range h.Japanese {
		if strings.TrimSpace(line) == "" {
			return fmt.Errorf("%w: japanese line %d is empty", ErrSchemaViolation, i+1)
		}
	}
	for i, line := range h.English {
		if strings.TrimSpace(line) == "" {
			return fmt.Errorf("%w: english line %d is empty", ErrSchemaViolation, i+1)
		}
	}
	if len(h.ImageNames) == 0 {
		return fmt.Errorf("%w: at least one image name is required", ErrSchemaViolation)
	}
	for _, name := range h.ImageNames {
		if !ImagePermitted(name) {
			return fmt.Errorf("%w: image %q is not on the permitted list", ErrSchemaViolation, name)
		}
	}
	return nil
}

type HaikuRequest struct {
	Topic string `json:"topic"`
}

type HaikuResponse struct {
	Haiku Haiku `json:"haiku"`
}

type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// CopilotReply is one completed chat turn: a topic, the generated haiku, and
// the reply text shown in the chat transcript.
type CopilotReply struct {
	Topic   string `json:"topic"`
	Message string `json:"message"`
	Haiku   Haiku  `json:"haiku"`
}
