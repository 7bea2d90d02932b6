package auth

import (
	"strings"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	h := NewHMAC("test-secret")
	tok, err := h.Issue("alice.near", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	sub, err := h.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "alice.near" {
		t.Fatalf("subject: %q", sub)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tok, err := NewHMAC("secret-a").Issue("alice.near", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewHMAC("secret-b").Verify(tok); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	h := NewHMAC("test-secret")
	h.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := h.Issue("alice.near", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	h.now = time.Now
	if _, err := h.Verify(tok); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	h := NewHMAC("test-secret")
	for _, tok := range []string{"", "nope", strings.Repeat("a.", 3)} {
		if _, err := h.Verify(tok); err == nil {
			t.Fatalf("garbage token %q accepted", tok)
		}
	}
}
