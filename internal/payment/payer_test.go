package payment

import (
	"context"
	"testing"

	pebblestore "github.com/NEARFoundation/events-platform/internal/storage/pebble"
	"github.com/NEARFoundation/events-platform/pkg/id"
)

func TestJournalRecordsPayouts(t *testing.T) {
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeNever})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	j := NewJournal(db, id.NewGenerator())
	if err := j.Pay(context.Background(), "alice.near", 500); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if err := j.Pay(context.Background(), "bob.near", 250); err != nil {
		t.Fatalf("pay: %v", err)
	}

	payouts, err := j.Payouts()
	if err != nil {
		t.Fatalf("payouts: %v", err)
	}
	if len(payouts) != 2 {
		t.Fatalf("payouts: got %d, want 2", len(payouts))
	}
	totals := map[string]uint64{}
	for _, p := range payouts {
		if p.ID == "" || p.PaidAt.IsZero() {
			t.Fatalf("payout missing id or timestamp: %+v", p)
		}
		totals[p.Account] += p.Amount
	}
	if totals["alice.near"] != 500 || totals["bob.near"] != 250 {
		t.Fatalf("unexpected totals: %v", totals)
	}
}

func TestCaptureTotals(t *testing.T) {
	c := &Capture{}
	_ = c.Pay(context.Background(), "alice.near", 10)
	_ = c.Pay(context.Background(), "alice.near", 5)
	_ = c.Pay(context.Background(), "bob.near", 1)
	if got := c.Total("alice.near"); got != 15 {
		t.Fatalf("total: got %d, want 15", got)
	}
	if got := c.Total("nobody.near"); got != 0 {
		t.Fatalf("total: got %d, want 0", got)
	}
}
