// Package mutation implements the metered mutation protocol shared by every
// payable entry point: snapshot the storage footprint, commit the change,
// measure the marginal bytes, then roll back (payment shortfall) or settle
// (refund surplus, optionally re-read the committed entity).
//
// Mutations commit immediately; settlement is an explicit second phase. A
// service call returns a *Pending and the surrounding dispatcher performs
// Settle, which mirrors an execution model where the refund and the
// read-back run as scheduled follow-up calls that can interleave with other
// top-level mutations.
package mutation
