package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"llm-investment-advisor/internal/logger"
)

// Store holds one durable ledger snapshot.
type Store interface {
	Exists() bool
	Load() (*State, error)
	Save(*State) error
}

// Service serializes whole-snapshot read-modify-write cycles over a
// Store. One mutex is the entire concurrency story: the design assumes a
// single caller, and separate processes sharing the same state file can
// still race each other (known limitation).
type Service struct {
	mu    sync.Mutex
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Initialized reports whether a snapshot already exists.
func (s *Service) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Exists()
}

// Initialize creates and persists a fresh state. It refuses to overwrite
// an existing snapshot; this is check-then-create, not a race-free
// operation.
func (s *Service) Initialize(ctx context.Context, startingCash decimal.Decimal) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if startingCash.IsNegative() {
		return nil, fmt.Errorf("starting cash %s must not be negative", startingCash)
	}
	if s.store.Exists() {
		return nil, ErrAlreadyInitialized
	}

	state := NewState(startingCash)
	if err := s.store.Save(state); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Ledger initialized", "starting_cash", startingCash.String())
	return state, nil
}

// Buy loads the snapshot, applies the purchase and persists the result.
// On any failure nothing is persisted and the durable snapshot is left
// exactly as it was.
func (s *Service) Buy(ctx context.Context, symbol string, qty int, price decimal.Decimal, date string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if err := state.Buy(symbol, qty, price, date); err != nil {
		return nil, err
	}
	if err := s.store.Save(state); err != nil {
		return nil, err
	}

	logger.Trade(ctx, symbol, "BUY", qty, price.InexactFloat64(), date,
		"cash", state.Cash.String(),
		"total_value", state.TotalValue.String(),
	)
	return state, nil
}

// Sell is the FIFO counterpart of Buy with the same persistence rules.
// The date is threaded through for audit display only; the ledger does
// not validate it.
func (s *Service) Sell(ctx context.Context, symbol string, qty int, price decimal.Decimal, date string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if err := state.Sell(symbol, qty, price); err != nil {
		return nil, err
	}
	if err := s.store.Save(state); err != nil {
		return nil, err
	}

	logger.Trade(ctx, symbol, "SELL", qty, price.InexactFloat64(), date,
		"cash", state.Cash.String(),
		"total_value", state.TotalValue.String(),
	)
	return state, nil
}

// Snapshot returns the read-only view of the current snapshot.
func (s *Service) Snapshot(ctx context.Context) (SnapshotView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load()
	if err != nil {
		return SnapshotView{}, err
	}
	return state.Snapshot(), nil
}
