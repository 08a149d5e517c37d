package tool

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
	"github.com/foliopilot/foliopilot/pkg/marketdata"
)

type fakeQuotes struct {
	quote *marketdata.Quote
	err   error
	calls []string
}

func (f *fakeQuotes) Quote(ctx context.Context, symbol string) (*marketdata.Quote, error) {
	f.calls = append(f.calls, symbol)
	if f.err != nil {
		return nil, f.err
	}
	return f.quote, nil
}

func TestBuildForAgentCopilot(t *testing.T) {
	t.Parallel()

	infos, executor := BuildForAgent(contractx.AgentTypeCopilot, &fakeQuotes{})
	if len(infos) != 3 {
		t.Fatalf("expected 3 tool infos, got %d", len(infos))
	}
	if infos[0].Name != ToolTopicExtract {
		t.Fatalf("unexpected first tool: %s", infos[0].Name)
	}
	if infos[1].Name != ToolHaikuGenerate {
		t.Fatalf("unexpected second tool: %s", infos[1].Name)
	}
	if infos[2].Name != ToolPortfolioQuote {
		t.Fatalf("unexpected third tool: %s", infos[2].Name)
	}
	if executor == nil {
		t.Fatal("executor must not be nil")
	}
}

func TestBuildForAgentUnknownTypeHasNoTools(t *testing.T) {
	t.Parallel()

	infos, _ := BuildForAgent(contractx.AgentType("other"), nil)
	if len(infos) != 0 {
		t.Fatalf("expected no tools, got %d", len(infos))
	}
}

func TestDefaultExecutorUnavailableMessage(t *testing.T) {
	t.Parallel()

	executor := DefaultExecutor(contractx.AgentTypeHaiku)
	out, err := executor(context.Background(), "portfolio.rebalance", map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Tool != "portfolio.rebalance" {
		t.Fatalf("unexpected tool: %s", out.Tool)
	}
	if out.Error == "" {
		t.Fatal("expected non-empty error message")
	}
}

func TestExecutorTopicExtract(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contractx.AgentTypeCopilot, nil)
	out, err := executor(context.Background(), ToolTopicExtract, map[string]any{
		"message": "  tell me about semiconductor stocks  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Error != "" {
		t.Fatalf("unexpected tool error: %s", out.Error)
	}
	result, ok := out.Result.(TopicExtractOutput)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.Result)
	}
	if result.Topic != "tell me about semiconductor stocks" {
		t.Fatalf("unexpected topic: %q", result.Topic)
	}
}

func TestExecutorTopicExtractValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args map[string]any
	}{
		{name: "missing", args: map[string]any{}},
		{name: "non-string", args: map[string]any{"message": 42}},
		{name: "empty", args: map[string]any{"message": "   "}},
	}

	executor := NewExecutor(contractx.AgentTypeCopilot, nil)
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := executor(context.Background(), ToolTopicExtract, tc.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Error == "" {
				t.Fatal("expected validation error in result")
			}
		})
	}
}

func TestExecutorTopicExtractTruncatesLongMessages(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contractx.AgentTypeCopilot, nil)
	out, err := executor(context.Background(), ToolTopicExtract, map[string]any{
		"message": strings.Repeat("a", 500),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result := out.Result.(TopicExtractOutput)
	if utf8.RuneCountInString(result.Topic) > maxTopicLength {
		t.Fatalf("topic not truncated: %d runes", utf8.RuneCountInString(result.Topic))
	}
}

func TestExecutorTopicExtractTruncatesAtRuneBoundary(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contractx.AgentTypeCopilot, nil)
	out, err := executor(context.Background(), ToolTopicExtract, map[string]any{
		"message": strings.Repeat("日経平均株価", 100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result := out.Result.(TopicExtractOutput)
	if !utf8.ValidString(result.Topic) {
		t.Fatalf("truncated topic is not valid utf-8: %q", result.Topic)
	}
	if got := utf8.RuneCountInString(result.Topic); got != maxTopicLength {
		t.Fatalf("topic rune count = %d, want %d", got, maxTopicLength)
	}
}

func TestExecutorHaikuGenerate(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contractx.AgentTypeCopilot, nil)
	out, err := executor(context.Background(), ToolHaikuGenerate, map[string]any{
		"japanese":    []any{"ichi", "ni", "san"},
		"english":     []any{"one", "two", "three"},
		"image_names": []any{"Mount_Fuji.jpg", "Sakura_Blossoms.jpg"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Error != "" {
		t.Fatalf("unexpected tool error: %s", out.Error)
	}
	result, ok := out.Result.(HaikuGenerateOutput)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.Result)
	}
	if len(result.Haiku.Japanese) != 3 || result.Haiku.English[2] != "three" {
		t.Fatalf("unexpected haiku: %+v", result.Haiku)
	}
}

func TestExecutorHaikuGenerateContractViolations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args map[string]any
	}{
		{
			name: "wrong line count",
			args: map[string]any{
				"japanese":    []any{"ichi", "ni"},
				"english":     []any{"one", "two"},
				"image_names": []any{"Mount_Fuji.jpg"},
			},
		},
		{
			name: "length mismatch",
			args: map[string]any{
				"japanese":    []any{"ichi", "ni", "san"},
				"english":     []any{"one", "two"},
				"image_names": []any{"Mount_Fuji.jpg"},
			},
		},
		{
			name: "image off the permitted list",
			args: map[string]any{
				"japanese":    []any{"ichi", "ni", "san"},
				"english":     []any{"one", "two", "three"},
				"image_names": []any{"Eiffel_Tower.jpg"},
			},
		},
		{
			name: "non-string element",
			args: map[string]any{
				"japanese":    []any{"ichi", 2, "san"},
				"english":     []any{"one", "two", "three"},
				"image_names": []any{"Mount_Fuji.jpg"},
			},
		},
		{
			name: "missing arrays",
			args: map[string]any{},
		},
	}

	executor := NewExecutor(contractx.AgentTypeCopilot, nil)
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := executor(context.Background(), ToolHaikuGenerate, tc.args)
			if err != nil {
				t.Fatalf("tool violations must not be Go errors: %v", err)
			}
			if out.Error == "" {
				t.Fatal("expected contract violation in result")
			}
		})
	}
}

func TestExecutorQuote(t *testing.T) {
	t.Parallel()

	quotes := &fakeQuotes{quote: &marketdata.Quote{Symbol: "AAPL", Price: 227.5}}
	executor := NewExecutor(contractx.AgentTypeCopilot, quotes)

	out, err := executor(context.Background(), ToolPortfolioQuote, map[string]any{"symbol": "AAPL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Error != "" {
		t.Fatalf("unexpected tool error: %s", out.Error)
	}
	quote, ok := out.Result.(marketdata.Quote)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.Result)
	}
	if quote.Price != 227.5 {
		t.Fatalf("unexpected price: %v", quote.Price)
	}
	if len(quotes.calls) != 1 || quotes.calls[0] != "AAPL" {
		t.Fatalf("unexpected quote calls: %v", quotes.calls)
	}
}

func TestExecutorQuoteFailureIsToolError(t *testing.T) {
	t.Parallel()

	quotes := &fakeQuotes{err: errors.New("upstream down")}
	executor := NewExecutor(contractx.AgentTypeCopilot, quotes)

	out, err := executor(context.Background(), ToolPortfolioQuote, map[string]any{"symbol": "AAPL"})
	if err != nil {
		t.Fatalf("lookup failure must not be a Go error: %v", err)
	}
	if out.Error == "" {
		t.Fatal("expected tool error")
	}
}

func TestExecutorQuoteWithoutService(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contractx.AgentTypeCopilot, nil)
	out, err := executor(context.Background(), ToolPortfolioQuote, map[string]any{"symbol": "AAPL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Error == "" {
		t.Fatal("expected unavailability error")
	}
}
