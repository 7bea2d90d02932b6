// Package id generates opaque entity identifiers.
//
// Identifiers are random UUID strings. They carry no ordering or embedded
// meaning; stores treat them as opaque keys. Tests substitute a deterministic
// Generator where stable ids matter.
package id
