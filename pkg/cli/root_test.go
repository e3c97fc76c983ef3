package cli

import "testing"

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd(Backend{})
	if cmd == nil {
		t.Fatal("NewRootCmd() returned nil")
	}
	if cmd.Use != "macrokey" {
		t.Fatalf("Use = %q, want %q", cmd.Use, "macrokey")
	}
}
