// Package payment defines the payment-transfer collaborator consumed by
// settlement. The default implementation journals transfers to the store for
// the hosting environment to execute; tests use the in-memory Capture.
package payment
