package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	pebblestore "github.com/NEARFoundation/events-platform/internal/storage/pebble"
	"github.com/NEARFoundation/events-platform/pkg/id"
)

// Payer transfers an amount of service units to an account. Settlement
// schedules refunds through this interface; the service never debits.
type Payer interface {
	Pay(ctx context.Context, account string, amount uint64) error
}

// Payout is one journaled transfer.
type Payout struct {
	ID      string    `json:"id"`
	Account string    `json:"account"`
	Amount  uint64    `json:"amount"`
	PaidAt  time.Time `json:"paid_at"`
}

var payoutPrefix = []byte("pay/")

func payoutKey(id string) []byte {
	k := make([]byte, 0, len(payoutPrefix)+len(id))
	k = append(k, payoutPrefix...)
	k = append(k, id...)
	return k
}

// Journal is the default Payer: it records each transfer durably under its
// own keyspace for the hosting environment to settle. The keyspace is
// deliberately outside the entity prefixes so journal writes never show up
// in the metered footprint.
type Journal struct {
	db  *pebblestore.DB
	ids id.Generator
	now func() time.Time
}

// NewJournal returns a Journal writing to db.
func NewJournal(db *pebblestore.DB, ids id.Generator) *Journal {
	return &Journal{db: db, ids: ids, now: time.Now}
}

// Pay records the transfer. Zero amounts are rejected upstream; the journal
// records whatever it is handed.
func (j *Journal) Pay(_ context.Context, account string, amount uint64) error {
	p := Payout{ID: j.ids.NewID(), Account: account, Amount: amount, PaidAt: j.now()}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("payment: encode payout: %w", err)
	}
	if err := j.db.Set(payoutKey(p.ID), raw); err != nil {
		return fmt.Errorf("payment: journal payout: %w", err)
	}
	return nil
}

// Payouts returns every journaled transfer, for the settling host.
func (j *Journal) Payouts() ([]Payout, error) {
	var out []Payout
	err := j.db.ScanPrefix(payoutPrefix, func(_, v []byte) error {
		var p Payout
		if err := json.Unmarshal(v, &p); err != nil {
			return fmt.Errorf("payment: decode payout: %w", err)
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Capture is a Payer test double that records transfers in memory.
type Capture struct {
	mu       sync.Mutex
	Payments []Payout
}

// Pay records the transfer in memory.
func (c *Capture) Pay(_ context.Context, account string, amount uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Payments = append(c.Payments, Payout{Account: account, Amount: amount})
	return nil
}

// Total returns the sum paid to account.
func (c *Capture) Total(account string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total uint64
	for _, p := range c.Payments {
		if p.Account == account {
			total += p.Amount
		}
	}
	return total
}
