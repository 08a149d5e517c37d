package nodes

import (
	"context"
	"fmt"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
	statex "github.com/foliopilot/foliopilot/agent/state"
)

// RecordOutcome applies the generated haiku and the copilot reply to the
// session transcript.
func RecordOutcome(in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	if err := in.Session.RecordHaiku(in.Topic, in.Haiku, in.Now); err != nil {
		return nil, fmt.Errorf("record haiku: %w", err)
	}
	if err := in.Session.AppendTurn(statex.RoleCopilot, in.Message, in.Now); err != nil {
		return nil, fmt.Errorf("append copilot turn: %w", err)
	}

	return in, nil
}

func ValidateAndSaveState(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	in.Session.Touch(in.Now)
	if err := in.Session.Validate(); err != nil {
		return nil, fmt.Errorf("state validation failed: %w", err)
	}
	if err := store.Save(ctx, in.Session); err != nil {
		return nil, err
	}

	return in, nil
}
