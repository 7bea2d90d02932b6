package mutation

import (
	"github.com/NEARFoundation/events-platform/internal/fault"
	"github.com/NEARFoundation/events-platform/internal/ledger"
)

// Call carries the payable context of one mutating entry point: the acting
// identity and the payment it attached.
type Call struct {
	Caller   string
	Attached uint64
}

// Mutation is one transactional unit handed to the engine. Apply commits the
// change to the store and returns the value the caller should observe when
// no read-back is scheduled. Rollback restores the pre-mutation state; it is
// only invoked on payment shortfall, after Apply has committed. ReadBack,
// when set, is the settlement continuation that re-reads committed state.
type Mutation struct {
	Apply    func() (interface{}, error)
	Rollback func() error
	ReadBack func() (interface{}, error)
}

// Engine runs the metered mutation protocol: snapshot the storage footprint,
// apply the mutation, measure the marginal bytes, and either roll back on
// payment shortfall or produce a Pending settlement.
//
// The footprint reading is an injected function so tests can drive arbitrary
// before/after values.
type Engine struct {
	footprint    func() uint64
	pricePerByte uint64
}

// NewEngine returns an Engine pricing footprint deltas at pricePerByte.
func NewEngine(footprint func() uint64, pricePerByte uint64) *Engine {
	return &Engine{footprint: footprint, pricePerByte: pricePerByte}
}

// PricePerByte returns the configured storage price.
func (e *Engine) PricePerByte() uint64 { return e.pricePerByte }

// Execute runs one mutation under the protocol. Pre-mutation failures from
// Apply surface unchanged with no accounting. After a committed Apply, a
// cost above the attached payment triggers Rollback and returns
// InsufficientPayment carrying attached/required/shortfall; the mutation's
// effects must not be observable afterwards. Otherwise the returned Pending
// carries the surplus refund (if any) and the settlement continuation.
func (e *Engine) Execute(call Call, m Mutation) (*Pending, error) {
	before := e.footprint()
	value, err := m.Apply()
	if err != nil {
		return nil, err
	}
	after := e.footprint()

	delta := ledger.MeasureDelta(before, after)
	cost := ledger.CostOf(delta, e.pricePerByte)

	if call.Attached < cost {
		if m.Rollback != nil {
			if rbErr := m.Rollback(); rbErr != nil {
				return nil, fault.Internal(rbErr, "rollback after payment shortfall failed")
			}
		}
		return nil, fault.InsufficientPayment(call.Attached, cost)
	}

	p := &Pending{
		BytesDelta: delta,
		Cost:       cost,
		value:      value,
		readBack:   m.ReadBack,
	}
	if surplus := call.Attached - cost; surplus > 0 {
		p.Refund = &Refund{To: call.Caller, Amount: surplus}
	}
	return p, nil
}
