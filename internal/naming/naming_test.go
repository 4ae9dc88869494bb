package naming

import (
	"strings"
	"testing"
)

func TestNewTenantID(t *testing.T) {
	a := NewTenantID()
	b := NewTenantID()
	if a == b {
		t.Fatalf("tenant IDs must be unique per call, got %q twice", a)
	}
	if !IsTenantID(a) {
		t.Errorf("NewTenantID returned unparsable value %q", a)
	}
}

func TestNewRunID(t *testing.T) {
	id := NewRunID()
	if !strings.HasPrefix(id, "run-") {
		t.Errorf("run ID %q missing run- prefix", id)
	}
	if id == NewRunID() {
		t.Error("run IDs must be unique per call")
	}
}

func TestIsTenantID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0c9d1f6e-8f2a-4f3b-9c1d-2e5f6a7b8c9d", true},
		{"not-a-uuid", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsTenantID(tt.in); got != tt.want {
			t.Errorf("IsTenantID(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
