package nodes

import (
	"fmt"
	"strings"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	message := strings.TrimSpace(in.Message)
	if message == "" {
		return GraphOutput{}, fmt.Errorf("%w: copilot produced an empty message", contractx.ErrValidation)
	}
	if err := in.Haiku.Validate(); err != nil {
		return GraphOutput{}, err
	}

	return GraphOutput{
		Reply: contractx.CopilotReply{
			Topic:   in.Topic,
			Message: message,
			Haiku:   in.Haiku,
		},
	}, nil
}
