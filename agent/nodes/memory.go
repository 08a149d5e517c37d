package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
)

func ReadMemory(ctx context.Context, in *GraphState, memory contractx.MemoryStore) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	summary, err := memory.ReadSummary(ctx, in.Session.UserID)
	if err != nil {
		// Memory is advisory; a failed read must not block the turn.
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("read memory summary failed")
		return in, nil
	}
	in.MemorySummary = strings.TrimSpace(summary)
	return in, nil
}

func WriteMemory(ctx context.Context, in *GraphState, memory contractx.MemoryStore) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}
	if in.Topic == "" {
		return in, nil
	}

	update := fmt.Sprintf("asked about %s", in.Topic)
	if err := memory.WriteSummary(ctx, in.Session.UserID, update); err != nil {
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("write memory summary failed")
	}
	return in, nil
}
