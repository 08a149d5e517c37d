package nodes

import (
	"context"
	"fmt"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
	toolx "github.com/foliopilot/foliopilot/agent/tool"
)

// ValidateHaiku runs the generated haiku back through the tool gateway so the
// reply honors the same contract external agent callers are held to.
func ValidateHaiku(ctx context.Context, in *GraphState, tools contractx.ToolGateway) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	results, err := tools.Execute(ctx, string(contractx.AgentTypeCopilot), []contractx.ToolRequest{
		{
			Tool: toolx.ToolHaikuGenerate,
			Args: map[string]any{
				"japanese":    in.Haiku.Japanese,
				"english":     in.Haiku.English,
				"image_names": in.Haiku.ImageNames,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("execute haiku validation: %w", err)
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("%w: expected one tool result, got %d", contractx.ErrValidation, len(results))
	}
	if results[0].Error != "" {
		return nil, fmt.Errorf("%w: %s", contractx.ErrSchemaViolation, results[0].Error)
	}

	return in, nil
}
