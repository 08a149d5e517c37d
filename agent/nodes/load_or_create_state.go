package nodes

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
	statex "github.com/foliopilot/foliopilot/agent/state"
)

func LoadOrCreateState(
	ctx context.Context,
	in *GraphState,
	store statex.Store,
	userID string,
	channelType string,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	st, err := store.Load(ctx, in.SessionID)
	switch {
	case err == nil:
		in.Session = st
	case errors.Is(err, statex.ErrStateNotFound):
		in.Session = statex.NewSessionState(in.SessionID, userID, channelType, in.Now)
	default:
		return nil, fmt.Errorf("load session state: %w", err)
	}

	if err := in.Session.AppendTurn(statex.RoleUser, in.Text, in.Now); err != nil {
		return nil, fmt.Errorf("append user turn: %w", err)
	}

	return in, nil
}
