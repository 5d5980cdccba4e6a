// Package tradelog keeps an append-only JSONL audit trail of executed
// trades. The FIFO ledger prunes consumed lots, so this file is the
// only full record of what happened and when.
package tradelog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var (
	mu      sync.Mutex
	nextSeq int64
)

// Event is one executed trade plus the portfolio totals after it.
type Event struct {
	Seq        int64           `json:"seq"`
	Time       string          `json:"time"`
	Month      string          `json:"month"`
	Symbol     string          `json:"symbol"`
	Side       string          `json:"side"`
	Qty        int             `json:"qty"`
	Price      decimal.Decimal `json:"price"`
	Cash       decimal.Decimal `json:"cash"`
	TotalValue decimal.Decimal `json:"total_value"`
	Reason     string          `json:"reason,omitempty"`
}

func logDir() string {
	if v := os.Getenv("ADVISOR_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func logPath() string {
	return filepath.Join(logDir(), "trades.jsonl")
}

// Append writes the event to the trade log, assigning it the next
// sequence number. Sequence numbers survive restarts.
func Append(e Event) error {
	mu.Lock()
	defer mu.Unlock()

	if nextSeq == 0 {
		if err := primeSeq(); err != nil {
			return err
		}
	}

	e.Seq = nextSeq
	e.Time = time.Now().UTC().Format("2006-01-02 15:04:05")

	p := logPath()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	b, _ := json.Marshal(e)
	if _, err := fmt.Fprintln(f, string(b)); err != nil {
		return err
	}
	nextSeq++
	return nil
}

// primeSeq scans the existing log so new events continue the sequence.
func primeSeq() error {
	nextSeq = 1
	f, err := os.Open(logPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Event
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			continue
		}
		if e.Seq >= nextSeq {
			nextSeq = e.Seq + 1
		}
	}
	return sc.Err()
}

// Events reads every event in the log, oldest first. Lines that do not
// parse are skipped.
func Events() ([]Event, error) {
	mu.Lock()
	defer mu.Unlock()

	f, err := os.Open(logPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var events []Event
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Event
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			continue
		}
		events = append(events, e)
	}
	return events, sc.Err()
}

// resetSeq forces a re-prime on the next Append. Test hook.
func resetSeq() {
	mu.Lock()
	defer mu.Unlock()
	nextSeq = 0
}
