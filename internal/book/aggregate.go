package book

import (
	"encoding/json"
	"math"

	"github.com/google/btree"
	"github.com/quanterra/bookview/internal/domain"
)

// PriceLevel is the aggregate outstanding amount at a single price point,
// summed across all orders at that price.
type PriceLevel struct {
	Price  uint64
	Amount uint64
}

// MarshalJSON encodes the level as a [price, amount] pair, the wire shape
// order book clients consume.
func (l PriceLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uint64{l.Price, l.Amount})
}

// View is a point-in-time order book snapshot. Bids are ordered best price
// first (descending), asks best price first (ascending). Each price appears
// at most once per side.
type View struct {
	Bids []PriceLevel `json:"bids"`
	Asks []PriceLevel `json:"asks"`
}

// bidLevelLess orders bid levels by price descending, so an in-order walk
// visits the best bid (highest price) first.
func bidLevelLess(a, b PriceLevel) bool {
	return a.Price > b.Price
}

// askLevelLess orders ask levels by price ascending: best ask (lowest
// price) first.
func askLevelLess(a, b PriceLevel) bool {
	return a.Price < b.Price
}

// Aggregate reduces a flat order list into one PriceLevel per distinct
// price. A level's Amount is the sum of the raw Amount of every order at
// that price; already-filled quantity is not subtracted. The caller passes
// one side's orders at a time (the function trusts the partition and does
// not filter by the orders' Side field); side selects the output ordering:
// bids descending, asks ascending.
//
// Amount sums saturate at MaxUint64 instead of wrapping. Empty input
// yields an empty, non-nil slice. Pure function: no ordering requirement
// on input, no side effects.
func Aggregate(orders []domain.Order, side domain.Side) []PriceLevel {
	totals := make(map[uint64]uint64, len(orders))
	for _, o := range orders {
		totals[o.Price] = satAdd(totals[o.Price], o.Amount)
	}

	less := askLevelLess
	if side == domain.SideBid {
		less = bidLevelLess
	}

	const degree = 32
	tree := btree.NewG[PriceLevel](degree, less)
	for price, amount := range totals {
		tree.ReplaceOrInsert(PriceLevel{Price: price, Amount: amount})
	}

	levels := make([]PriceLevel, 0, tree.Len())
	tree.Ascend(func(l PriceLevel) bool {
		levels = append(levels, l)
		return true
	})
	return levels
}

// NewView aggregates both sides of a fetched book into a snapshot.
func NewView(bids, asks []domain.Order) *View {
	return &View{
		Bids: Aggregate(bids, domain.SideBid),
		Asks: Aggregate(asks, domain.SideAsk),
	}
}

// satAdd adds two amounts, capping at MaxUint64 on overflow.
func satAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
