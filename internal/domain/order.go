package domain

import "github.com/ethereum/go-ethereum/common"

// Side indicates whether an order or trade sits on the bid (buy) or ask
// (sell) side of the book. The numeric values are the ledger contract's
// wire encoding and must not be reordered.
type Side uint64

const (
	SideBid Side = 0
	SideAsk Side = 1
)

// String returns "bid" or "ask" for logging.
func (s Side) String() string {
	if s == SideBid {
		return "bid"
	}
	return "ask"
}

// Order is a resting limit order as returned by the ledger contract.
// It is a per-request snapshot: fetched, projected into a response, and
// discarded. Amount is the original order size; Filled tracks how much
// has already executed and is never subtracted when building book views.
type Order struct {
	Owner     common.Address
	Price     uint64
	Amount    uint64
	Seq       uint64
	Filled    uint64
	Side      Side
	Timestamp uint64
}
