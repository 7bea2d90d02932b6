// Package ordering implements insert-at-position and remove-by-id over a
// list's membership sequence while keeping positions contiguous. The shared
// gap-fill pass (Normalize) is the source of truth for final numbering; the
// insert-time bump only exists so "insert at position P" shifts later
// entries the way callers expect.
package ordering
