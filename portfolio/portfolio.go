package portfolio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	ErrHoldingNotFound = errors.New("holding not found")
	ErrInvalidHolding  = errors.New("invalid holding")
)

// Holding is one position in a user's portfolio.
type Holding struct {
	bun.BaseModel `bun:"table:holdings,alias:h"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    string    `bun:"user_id,notnull" json:"user_id"`
	Symbol    string    `bun:"symbol,notnull" json:"symbol"`
	Quantity  float64   `bun:"quantity,notnull" json:"quantity"`
	CostBasis float64   `bun:"cost_basis,notnull" json:"cost_basis"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

func (h *Holding) Validate() error {
	if strings.TrimSpace(h.UserID) == "" {
		return fmt.Errorf("%w: user id is empty", ErrInvalidHolding)
	}
	if strings.TrimSpace(h.Symbol) == "" {
		return fmt.Errorf("%w: symbol is empty", ErrInvalidHolding)
	}
	if h.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidHolding)
	}
	if h.CostBasis < 0 {
		return fmt.Errorf("%w: cost basis must not be negative", ErrInvalidHolding)
	}
	return nil
}

// Store persists portfolio holdings.
type Store interface {
	Holdings(ctx context.Context, userID string) ([]Holding, error)
	Upsert(ctx context.Context, holding *Holding) error
	Remove(ctx context.Context, userID, symbol string) error
}

type Config struct {
	DSN string `envconfig:"DSN"`
}

// NewDB opens a Postgres-backed bun handle from a connection string.
func NewDB(cfg Config) (*bun.DB, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, errors.New("portfolio dsn is required")
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// PGStore is the Postgres implementation of Store.
type PGStore struct {
	db *bun.DB
}

func NewPGStore(db *bun.DB) (*PGStore, error) {
	if db == nil {
		return nil, errors.New("bun db is required")
	}
	return &PGStore{db: db}, nil
}

// CreateSchema creates the holdings table if it does not exist yet.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*Holding)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create holdings table: %w", err)
	}
	return nil
}

func (s *PGStore) Holdings(ctx context.Context, userID string) ([]Holding, error) {
	var holdings []Holding
	err := s.db.NewSelect().
		Model(&holdings).
		Where("user_id = ?", userID).
		Order("symbol ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select holdings: %w", err)
	}
	return holdings, nil
}

func (s *PGStore) Upsert(ctx context.Context, holding *Holding) error {
	if holding == nil {
		return fmt.Errorf("%w: holding is nil", ErrInvalidHolding)
	}
	holding.Symbol = strings.ToUpper(strings.TrimSpace(holding.Symbol))
	if err := holding.Validate(); err != nil {
		return err
	}
	holding.UpdatedAt = time.Now().UTC()

	_, err := s.db.NewInsert().
		Model(holding).
		On("CONFLICT (user_id, symbol) DO UPDATE").
		Set("quantity = EXCLUDED.quantity").
		Set("cost_basis = EXCLUDED.cost_basis").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert holding: %w", err)
	}
	return nil
}

func (s *PGStore) Remove(ctx context.Context, userID, symbol string) error {
	res, err := s.db.NewDelete().
		Model((*Holding)(nil)).
		Where("user_id = ?", userID).
		Where("symbol = ?", strings.ToUpper(strings.TrimSpace(symbol))).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete holding: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete holding: %w", err)
	}
	if affected == 0 {
		return ErrHoldingNotFound
	}
	return nil
}
