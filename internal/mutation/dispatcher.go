package mutation

import (
	"context"

	"github.com/NEARFoundation/events-platform/internal/fault"
	"github.com/NEARFoundation/events-platform/internal/payment"
	logpkg "github.com/NEARFoundation/events-platform/pkg/log"
)

// Refund is a scheduled payment back to the acting identity.
type Refund struct {
	To     string
	Amount uint64
}

// Pending is the result of a committed, settled-or-settleable mutation. The
// mutation itself is already durable; Settle performs the follow-up steps
// (refund, then read-back) that in this execution model run as separate
// scheduled executions, not inline with the mutating call.
type Pending struct {
	// Refund is the surplus to pay back, nil when attached == cost.
	Refund *Refund
	// BytesDelta and Cost record what the mutation was measured at.
	BytesDelta int64
	Cost       uint64

	value    interface{}
	readBack func() (interface{}, error)
}

// Dispatcher sequences settlement of Pending results: the refund first, then
// the read-back continuation. Framework code (HTTP handlers, CLI) owns the
// sequencing; services only produce Pendings.
type Dispatcher struct {
	payer  payment.Payer
	logger logpkg.Logger
}

// NewDispatcher returns a Dispatcher paying refunds through payer.
func NewDispatcher(payer payment.Payer, logger logpkg.Logger) *Dispatcher {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("settle"))
	}
	return &Dispatcher{payer: payer, logger: logger}
}

// Settle pays the pending refund, then runs the read-back continuation when
// one is scheduled. Between the original commit and this call other
// top-level calls may have mutated the same records, so the read-back is
// best-effort: its failure (including "record no longer exists") surfaces as
// an Internal error, never as a silent nil result.
func (d *Dispatcher) Settle(ctx context.Context, p *Pending) (interface{}, error) {
	if p == nil {
		return nil, nil
	}
	if p.Refund != nil {
		if err := d.payer.Pay(ctx, p.Refund.To, p.Refund.Amount); err != nil {
			return nil, fault.Internal(err, "refund of %d to %s failed", p.Refund.Amount, p.Refund.To)
		}
		d.logger.Debug("refund scheduled",
			logpkg.Str("to", p.Refund.To),
			logpkg.Uint64("amount", p.Refund.Amount),
		)
	}
	if p.readBack != nil {
		v, err := p.readBack()
		if err != nil {
			return nil, fault.Internal(err, "settlement read-back failed")
		}
		return v, nil
	}
	return p.value, nil
}
