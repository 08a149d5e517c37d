package nodes

import (
	"context"
	"fmt"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
)

func WriteHaiku(ctx context.Context, in *GraphState, writer contractx.HaikuWriter) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Topic == "" {
		return nil, fmt.Errorf("%w: topic is required before writing", contractx.ErrValidation)
	}

	resp, err := writer.Write(ctx, contractx.HaikuRequest{Topic: in.Topic})
	if err != nil {
		return nil, err
	}

	in.Haiku = resp.Haiku
	in.Message = fmt.Sprintf("A haiku about %s:\n%s", in.Topic, joinLines(resp.Haiku.English))
	return in, nil
}

func joinLines(lines []string) string {
	out := ""
	for i, line := range lines {
		if i > 0 {
			out += "\n"
		}
		out += line
	}
	return out
}
