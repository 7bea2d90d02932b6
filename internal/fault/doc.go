// Package fault defines the error taxonomy shared by the entity services:
// NotFound, Forbidden, Conflict, InvalidArgument, InsufficientPayment and
// Internal. InsufficientPayment errors carry the attached amount, the
// required cost, and the shortfall so callers can settle the difference.
package fault
