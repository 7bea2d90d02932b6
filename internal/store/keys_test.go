package store

import (
	"bytes"
	"testing"
)

func TestKeyLayout(t *testing.T) {
	if got := eventKey("e1"); !bytes.Equal(got, []byte("ev/e1")) {
		t.Fatalf("event key: %q", got)
	}
	if got := listKey("l1"); !bytes.Equal(got, []byte("evl/l1")) {
		t.Fatalf("list key: %q", got)
	}
	if got := entryKey("l1", "e1"); !bytes.Equal(got, []byte("evle/l1/e1")) {
		t.Fatalf("entry key: %q", got)
	}
	if got := entriesPrefix("l1"); !bytes.Equal(got, []byte("evle/l1/")) {
		t.Fatalf("entries prefix: %q", got)
	}
}

func TestPrefixesDisjoint(t *testing.T) {
	// "evl/..." keys must not be visible to an "ev/" scan, and "evle/..."
	// keys must not be visible to an "evl/" scan.
	if bytes.HasPrefix(listKey("x"), eventPrefix) {
		t.Fatalf("list keys shadow event prefix")
	}
	if bytes.HasPrefix(entryKey("x", "y"), listPrefix) {
		t.Fatalf("entry keys shadow list prefix")
	}
}
