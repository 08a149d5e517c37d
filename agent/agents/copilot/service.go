package copilot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/foliopilot/foliopilot/agent/contract"
	nodex "github.com/foliopilot/foliopilot/agent/nodes"
	statex "github.com/foliopilot/foliopilot/agent/state"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidSession = nodex.ErrInvalidSession
)

type Config struct {
	UserID      string
	ChannelType string
}

type Copilot struct {
	store  statex.Store
	models contractx.Registry
	tools  contractx.ToolGateway
	memory contractx.MemoryStore

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	userID      string
	channelType string

	now func() time.Time
}

func New(
	store statex.Store,
	models contractx.Registry,
	tools contractx.ToolGateway,
	memory contractx.MemoryStore,
	cfg Config,
) (*Copilot, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if models == nil {
		return nil, errors.New("model registry is required")
	}
	if tools == nil {
		return nil, errors.New("tool gateway is required")
	}
	if memory == nil {
		memory = noopMemoryStore{}
	}

	userID := strings.TrimSpace(cfg.UserID)
	if userID == "" {
		userID = "default-user"
	}
	channelType := strings.TrimSpace(cfg.ChannelType)
	if channelType == "" {
		channelType = "chat"
	}

	c := &Copilot{
		store:       store,
		models:      models,
		tools:       tools,
		memory:      memory,
		userID:      userID,
		channelType: channelType,
		now:         time.Now,
	}

	graphRunner, err := c.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	c.graphRunner = graphRunner

	return c, nil
}

// HandleMessage runs one chat turn: extract the topic, write and validate a
// haiku, persist the session, and return the reply.
func (c *Copilot) HandleMessage(ctx context.Context, sessionID string, text string) (contractx.CopilotReply, error) {
	out, err := c.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		return contractx.CopilotReply{}, err
	}
	return out.Reply, nil
}

type noopMemoryStore struct{}

func (noopMemoryStore) ReadSummary(context.Context, string) (string, error) {
	return "", nil
}

func (noopMemoryStore) WriteSummary(context.Context, string, string) error {
	return nil
}
