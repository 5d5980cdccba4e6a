package ledger

import "errors"

// Failure conditions reported by ledger operations. All are detected
// before any mutation is applied, so a returned error means neither the
// in-memory state nor the persisted snapshot changed. Match with
// errors.Is.
var (
	ErrAlreadyInitialized = errors.New("ledger already initialized")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNoSuchPosition     = errors.New("no such position")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrMalformedState     = errors.New("malformed ledger state")
	ErrStoreUnavailable   = errors.New("ledger store unavailable")
)
