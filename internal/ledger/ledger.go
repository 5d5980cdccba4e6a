// Package ledger is the portfolio accounting core: cash, per-symbol lot
// history and realized valuation, updated by whole-share buy/sell
// operations with FIFO cost-basis consumption.
package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Lot is a single acquisition record. Its quantity shrinks as FIFO sells
// consume it; price and date never change after the buy.
type Lot struct {
	Date     string          `json:"date"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Position tracks one symbol. The lot sequence is kept in acquisition
// order; the persisted field is named "transactions" for compatibility
// with existing state files, but it is not a trade log: sold-down lots
// are shrunk and pruned in place.
type Position struct {
	TotalQuantity int   `json:"total_quantity"`
	Lots          []Lot `json:"transactions"`
}

// State is the persisted aggregate, one instance per account.
type State struct {
	Cash       decimal.Decimal      `json:"cash"`
	TotalValue decimal.Decimal      `json:"total_value"`
	Holdings   map[string]*Position `json:"holdings"`
}

// SnapshotView is the read-only reporting view of the ledger.
type SnapshotView struct {
	Cash       decimal.Decimal `json:"cash"`
	TotalValue decimal.Decimal `json:"total_value"`
	Holdings   map[string]int  `json:"holdings"`
}

// NewState creates a fresh ledger holding only cash.
func NewState(startingCash decimal.Decimal) *State {
	return &State{
		Cash:       startingCash,
		TotalValue: startingCash,
		Holdings:   map[string]*Position{},
	}
}

// Buy appends a new lot for symbol and debits cash. The whole operation
// fails before any mutation if the cost exceeds available cash.
func (s *State) Buy(symbol string, qty int, price decimal.Decimal, date string) error {
	if qty <= 0 {
		return fmt.Errorf("buy %s: quantity must be positive, got %d", symbol, qty)
	}
	if price.IsNegative() {
		return fmt.Errorf("buy %s: price must not be negative, got %s", symbol, price)
	}

	cost := price.Mul(decimal.NewFromInt(int64(qty)))
	if cost.GreaterThan(s.Cash) {
		return fmt.Errorf("buy %d %s at %s costs %s with %s cash: %w",
			qty, symbol, price, cost, s.Cash, ErrInsufficientFunds)
	}

	s.Cash = s.Cash.Sub(cost)

	pos := s.Holdings[symbol]
	if pos == nil {
		pos = &Position{}
		s.Holdings[symbol] = pos
	}
	pos.Lots = append(pos.Lots, Lot{Date: date, Price: price, Quantity: qty})
	pos.TotalQuantity += qty

	s.revalue()
	return nil
}

// Sell credits cash at the sale price and consumes shares from the lot
// sequence oldest-first. Lots emptied by the sale are pruned; the order
// of the remaining lots is unchanged. Positions are never deleted, even
// at quantity zero.
func (s *State) Sell(symbol string, qty int, price decimal.Decimal) error {
	if qty <= 0 {
		return fmt.Errorf("sell %s: quantity must be positive, got %d", symbol, qty)
	}

	pos := s.Holdings[symbol]
	if pos == nil {
		return fmt.Errorf("sell %s: %w", symbol, ErrNoSuchPosition)
	}
	if qty > pos.TotalQuantity {
		return fmt.Errorf("sell %d %s with %d held: %w",
			qty, symbol, pos.TotalQuantity, ErrInsufficientShares)
	}

	s.Cash = s.Cash.Add(price.Mul(decimal.NewFromInt(int64(qty))))

	remaining := qty
	for i := range pos.Lots {
		if remaining == 0 {
			break
		}
		take := pos.Lots[i].Quantity
		if take > remaining {
			take = remaining
		}
		pos.Lots[i].Quantity -= take
		remaining -= take
	}

	kept := pos.Lots[:0]
	for _, lot := range pos.Lots {
		if lot.Quantity > 0 {
			kept = append(kept, lot)
		}
	}
	pos.Lots = kept
	pos.TotalQuantity -= qty

	s.revalue()
	return nil
}

// revalue recomputes total_value over all positions: cash plus each
// position's quantity marked at its most recent lot's price. The latest
// transaction price deliberately stands in for a market quote; changing
// this to live prices would change total_value semantics.
func (s *State) revalue() {
	total := s.Cash
	for _, pos := range s.Holdings {
		if len(pos.Lots) == 0 {
			continue
		}
		last := pos.Lots[len(pos.Lots)-1]
		total = total.Add(last.Price.Mul(decimal.NewFromInt(int64(pos.TotalQuantity))))
	}
	s.TotalValue = total
}

// Snapshot returns the read-only reporting view.
func (s *State) Snapshot() SnapshotView {
	holdings := make(map[string]int, len(s.Holdings))
	for symbol, pos := range s.Holdings {
		holdings[symbol] = pos.TotalQuantity
	}
	return SnapshotView{Cash: s.Cash, TotalValue: s.TotalValue, Holdings: holdings}
}

// Symbols returns held symbols in sorted order, for deterministic display.
func (v SnapshotView) Symbols() []string {
	symbols := make([]string, 0, len(v.Holdings))
	for s := range v.Holdings {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Validate checks the structural invariants a loaded snapshot must hold.
// A violation means the persisted state was corrupted or hand-edited.
func (s *State) Validate() error {
	if s.Holdings == nil {
		return fmt.Errorf("holdings missing: %w", ErrMalformedState)
	}
	if s.Cash.IsNegative() {
		return fmt.Errorf("negative cash %s: %w", s.Cash, ErrMalformedState)
	}
	for symbol, pos := range s.Holdings {
		if pos == nil {
			return fmt.Errorf("position %s is null: %w", symbol, ErrMalformedState)
		}
		if pos.TotalQuantity < 0 {
			return fmt.Errorf("position %s has negative quantity %d: %w",
				symbol, pos.TotalQuantity, ErrMalformedState)
		}
		sum := 0
		for _, lot := range pos.Lots {
			if lot.Quantity < 0 {
				return fmt.Errorf("position %s has a negative lot quantity: %w",
					symbol, ErrMalformedState)
			}
			if lot.Price.IsNegative() {
				return fmt.Errorf("position %s has a negative lot price: %w",
					symbol, ErrMalformedState)
			}
			sum += lot.Quantity
		}
		if sum != pos.TotalQuantity {
			return fmt.Errorf("position %s total %d does not match lot sum %d: %w",
				symbol, pos.TotalQuantity, sum, ErrMalformedState)
		}
	}
	return nil
}
