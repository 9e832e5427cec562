package domain

import (
	"errors"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Message: "market is required"}
	if err.Error() != "market is required" {
		t.Errorf("Error() = %q, want %q", err.Error(), "market is required")
	}
}

func TestGatewayError_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &GatewayError{Op: "orderbook", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("GatewayError should unwrap to its cause")
	}
	want := "ledger orderbook: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestGatewayError_MatchableWithAs(t *testing.T) {
	var err error = &GatewayError{Op: "recentTrades", Err: errors.New("timeout")}

	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatal("errors.As should match *GatewayError")
	}
	if gwErr.Op != "recentTrades" {
		t.Errorf("Op = %q, want %q", gwErr.Op, "recentTrades")
	}
}
