package tool

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
)

const ToolPortfolioQuote = "portfolio.quote"

func executeQuoteTool(ctx context.Context, quotes QuoteService, tool string, args map[string]any) (contractx.ToolResult, error) {
	if quotes == nil {
		return contractx.ToolResult{
			Tool:  tool,
			Error: "market data is not configured",
		}, nil
	}

	raw, ok := args["symbol"]
	if !ok {
		return contractx.ToolResult{
			Tool:  tool,
			Error: "symbol is required",
		}, nil
	}
	symbol, ok := raw.(string)
	if !ok {
		return contractx.ToolResult{
			Tool:  tool,
			Error: "symbol must be a string",
		}, nil
	}
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return contractx.ToolResult{
			Tool:  tool,
			Error: "symbol is empty",
		}, nil
	}

	quote, err := quotes.Quote(ctx, symbol)
	if err != nil {
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("quote lookup failed: %v", err),
		}, nil
	}

	return contractx.ToolResult{
		Tool:   tool,
		Result: *quote,
	}, nil
}
