package id

import "testing"

func TestNewIDUnique(t *testing.T) {
	g := NewGenerator()
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		v := g.NewID()
		if v == "" {
			t.Fatalf("empty id")
		}
		if seen[v] {
			t.Fatalf("duplicate id: %s", v)
		}
		seen[v] = true
	}
}
