package tool

import (
	"context"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
)

// Gateway executes tool requests on behalf of an agent type. It satisfies
// contract.ToolGateway for both the in-process copilot graph and the external
// agent endpoint.
type Gateway struct {
	quotes QuoteService
}

var _ contractx.ToolGateway = (*Gateway)(nil)

func NewGateway(quotes QuoteService) *Gateway {
	return &Gateway{quotes: quotes}
}

func (g *Gateway) Execute(ctx context.Context, agentType string, reqs []contractx.ToolRequest) ([]contractx.ToolResult, error) {
	executor := NewExecutor(contractx.AgentType(agentType), g.quotes)

	results := make([]contractx.ToolResult, 0, len(reqs))
	for _, req := range reqs {
		result, err := executor(ctx, req.Tool, req.Args)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}
