package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/foliopilot/foliopilot/agent/contract"
	"github.com/foliopilot/foliopilot/pkg/marketdata"
)

type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

// QuoteService is the market-data dependency of the quote tool.
type QuoteService interface {
	Quote(ctx context.Context, symbol string) (*marketdata.Quote, error)
}

func BuildForAgent(agentType contractx.AgentType, quotes QuoteService) ([]*schema.ToolInfo, Executor) {
	return infosForAgent(agentType), NewExecutor(agentType, quotes)
}

func NewExecutor(agentType contractx.AgentType, quotes QuoteService) Executor {
	fallback := DefaultExecutor(agentType)
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch tool {
		case ToolTopicExtract:
			return executeTopicTool(tool, args)
		case ToolHaikuGenerate:
			return executeHaikuTool(tool, args)
		case ToolPortfolioQuote:
			return executeQuoteTool(ctx, quotes, tool, args)
		default:
			return fallback(ctx, tool, args)
		}
	}
}

func DefaultExecutor(agentType contractx.AgentType) Executor {
	return func(ctx context.Context, tool string, _ map[string]any) (contractx.ToolResult, error) {
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("tool=%s is unavailable for agent=%s", tool, agentType),
		}, nil
	}
}

func infosForAgent(agentType contractx.AgentType) []*schema.ToolInfo {
	switch agentType {
	case contractx.AgentTypeTopic:
		return []*schema.ToolInfo{topicToolInfo()}
	case contractx.AgentTypeHaiku:
		return []*schema.ToolInfo{haikuToolInfo()}
	case contractx.AgentTypeCopilot:
		return []*schema.ToolInfo{
			topicToolInfo(),
			haikuToolInfo(),
			quoteToolInfo(),
		}
	default:
		return nil
	}
}

func topicToolInfo() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: ToolTopicExtract,
		Desc: "Extract a single short topic from a free-text chat message.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"message": {Type: schema.String, Desc: "Free-text chat message", Required: true},
		}),
	}
}

func haikuToolInfo() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: ToolHaikuGenerate,
		Desc: "Record a generated haiku: parallel Japanese lines, English translations, and permitted illustration filenames.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"japanese": {
				Type:     schema.Array,
				Desc:     "Three Japanese lines in 5-7-5 rhythm",
				Required: true,
				ElemInfo: &schema.ParameterInfo{Type: schema.String},
			},
			"english": {
				Type:     schema.Array,
				Desc:     "Three English lines translating the Japanese lines in order",
				Required: true,
				ElemInfo: &schema.ParameterInfo{Type: schema.String},
			},
			"image_names": {
				Type:     schema.Array,
				Desc:     "Illustration filenames from the permitted list",
				Required: true,
				ElemInfo: &schema.ParameterInfo{Type: schema.String},
			},
		}),
	}
}

func quoteToolInfo() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: ToolPortfolioQuote,
		Desc: "Fetch the latest market quote for a stock symbol.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"symbol": {Type: schema.String, Desc: "Ticker symbol, e.g. AAPL", Required: true},
		}),
	}
}
