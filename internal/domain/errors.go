package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrMarketNotFound = errors.New("market_not_found")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GatewayError wraps a failure from the ledger gateway. A single request's
// gateway failure is surfaced as a structured response; it must never
// terminate the serving process.
type GatewayError struct {
	Op  string // the contract method that failed
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("ledger %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
