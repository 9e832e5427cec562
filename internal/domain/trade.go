package domain

import "github.com/ethereum/go-ethereum/common"

// Trade represents an execution between a maker and a taker order, as
// recorded by the ledger contract. Same lifecycle as Order: a snapshot
// owned by the request that fetched it.
type Trade struct {
	Maker     common.Address
	Taker     common.Address
	Price     uint64
	Amount    uint64
	Side      Side
	Timestamp uint64
}
