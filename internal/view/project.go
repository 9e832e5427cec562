// Package view reshapes raw ledger records into the client-facing wire
// format: identifiers stringified, fields renamed, nothing computed.
package view

import "github.com/quanterra/bookview/internal/domain"

// OpenOrderView is the client-facing shape of a resting order.
type OpenOrderView struct {
	Address   string `json:"address"`
	Price     uint64 `json:"price"`
	Amount    uint64 `json:"amount"`
	Seq       uint64 `json:"seq"`
	Filled    uint64 `json:"filled"`
	Side      uint64 `json:"side"`
	Timestamp uint64 `json:"timestamp"`
}

// TradeView is the client-facing shape of a trade record.
type TradeView struct {
	Maker     string `json:"maker"`
	Taker     string `json:"taker"`
	Price     uint64 `json:"price"`
	Amount    uint64 `json:"amount"`
	Side      uint64 `json:"side"`
	Timestamp uint64 `json:"timestamp"`
}

// ProjectOpenOrders filters both sides of the book down to orders owned by
// account and reshapes them for the wire. Matching bids come first, then
// matching asks, each side preserving the order the ledger returned; the
// cross-side ordering is a compatibility artifact, not a price sort. The
// account match is exact string equality on the stringified owner address.
// No matches is a valid, empty result.
func ProjectOpenOrders(bids, asks []domain.Order, account string) []OpenOrderView {
	views := make([]OpenOrderView, 0)
	for _, o := range bids {
		if o.Owner.Hex() == account {
			views = append(views, newOpenOrderView(o))
		}
	}
	for _, o := range asks {
		if o.Owner.Hex() == account {
			views = append(views, newOpenOrderView(o))
		}
	}
	return views
}

// ProjectTrades reshapes trade records one to one, preserving input order.
// No filtering: trade history is market-wide.
func ProjectTrades(trades []domain.Trade) []TradeView {
	views := make([]TradeView, 0, len(trades))
	for _, t := range trades {
		views = append(views, TradeView{
			Maker:     t.Maker.Hex(),
			Taker:     t.Taker.Hex(),
			Price:     t.Price,
			Amount:    t.Amount,
			Side:      uint64(t.Side),
			Timestamp: t.Timestamp,
		})
	}
	return views
}

func newOpenOrderView(o domain.Order) OpenOrderView {
	return OpenOrderView{
		Address:   o.Owner.Hex(),
		Price:     o.Price,
		Amount:    o.Amount,
		Seq:       o.Seq,
		Filled:    o.Filled,
		Side:      uint64(o.Side),
		Timestamp: o.Timestamp,
	}
}
