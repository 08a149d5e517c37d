package nodes

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
	statex "github.com/foliopilot/foliopilot/agent/state"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrInvalidSession = errors.New("session id is empty")
)

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Reply contractx.CopilotReply
}

type GraphState struct {
	SessionID string
	Text      string
	Now       time.Time

	Session       *statex.SessionState
	MemorySummary string

	Topic   string
	Haiku   contractx.Haiku
	Message string
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		SessionID: sessionID,
		Text:      text,
		Now:       nowFn().UTC(),
	}, nil
}
