package portfolio

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/foliopilot/foliopilot/pkg/marketdata"
	"github.com/foliopilot/foliopilot/view"
)

// QuoteService resolves a live quote for a symbol.
type QuoteService interface {
	Quote(ctx context.Context, symbol string) (*marketdata.Quote, error)
}

// Position is a holding priced against the latest quote.
type Position struct {
	Symbol      string  `json:"symbol"`
	Quantity    float64 `json:"quantity"`
	CostBasis   float64 `json:"cost_basis"`
	Price       float64 `json:"price"`
	MarketValue float64 `json:"market_value"`
	DayChange   float64 `json:"day_change"`
}

// Summary is a priced snapshot of one user's portfolio.
type Summary struct {
	UserID     string     `json:"user_id"`
	TotalValue float64    `json:"total_value"`
	DayChange  float64    `json:"day_change"`
	TopMover   string     `json:"top_mover"`
	Positions  []Position `json:"positions"`
}

// Valuer prices portfolios from a store and a quote service.
type Valuer struct {
	store  Store
	quotes QuoteService
}

func NewValuer(store Store, quotes QuoteService) (*Valuer, error) {
	if store == nil {
		return nil, fmt.Errorf("holdings store is required")
	}
	return &Valuer{store: store, quotes: quotes}, nil
}

// Summarize prices every holding for the user. Symbols with no available
// quote are valued at cost basis so a partial market outage cannot blank
// the whole dashboard.
func (v *Valuer) Summarize(ctx context.Context, userID string) (*Summary, error) {
	holdings, err := v.store.Holdings(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{UserID: userID, Positions: make([]Position, 0, len(holdings))}
	var topChange float64

	for _, h := range holdings {
		pos := Position{
			Symbol:    h.Symbol,
			Quantity:  h.Quantity,
			CostBasis: h.CostBasis,
			Price:     h.CostBasis,
		}

		if v.quotes != nil {
			quote, err := v.quotes.Quote(ctx, h.Symbol)
			if err != nil {
				log.Warn().Err(err).Str("symbol", h.Symbol).Msg("quote lookup failed, falling back to cost basis")
			} else {
				pos.Price = quote.Price
				pos.DayChange = quote.Change * h.Quantity
			}
		}

		pos.MarketValue = pos.Price * pos.Quantity
		summary.TotalValue += pos.MarketValue
		summary.DayChange += pos.DayChange

		if summary.TopMover == "" || abs(pos.DayChange) > abs(topChange) {
			topChange = pos.DayChange
			summary.TopMover = pos.Symbol
		}

		summary.Positions = append(summary.Positions, pos)
	}

	sort.Slice(summary.Positions, func(i, j int) bool {
		return summary.Positions[i].MarketValue > summary.Positions[j].MarketValue
	})

	return summary, nil
}

// ViewContext flattens a summary into the substitution context used by the
// dashboard and portfolio page templates.
func (s *Summary) ViewContext(ownerName string) view.Context {
	rows := make([]map[string]any, 0, len(s.Positions))
	allocation := make([]map[string]any, 0, len(s.Positions))
	for _, pos := range s.Positions {
		rows = append(rows, map[string]any{
			"symbol":       pos.Symbol,
			"quantity":     pos.Quantity,
			"price":        pos.Price,
			"market_value": pos.MarketValue,
		})
		share := 0.0
		if s.TotalValue > 0 {
			share = pos.MarketValue / s.TotalValue
		}
		allocation = append(allocation, map[string]any{
			"symbol": pos.Symbol,
			"share":  share,
		})
	}

	greeting := "Welcome back"
	if ownerName != "" {
		greeting = fmt.Sprintf("Welcome back, %s", ownerName)
	}

	return view.Context{
		"greeting":    greeting,
		"total_value": fmt.Sprintf("$%.2f", s.TotalValue),
		"day_change":  fmt.Sprintf("%+.2f", s.DayChange),
		"top_mover":   s.TopMover,
		"holdings":    rows,
		"allocation":  allocation,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
