package nodes

import (
	"context"
	"fmt"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
)

func ExtractTopic(ctx context.Context, in *GraphState, topicker contractx.Topicker) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	resp, err := topicker.ExtractTopic(ctx, contractx.TopicRequest{Message: in.Text})
	if err != nil {
		return nil, err
	}

	in.Topic = resp.Topic
	return in, nil
}
