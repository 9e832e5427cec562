package domain

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// MarketRegistry maps trading-pair symbols (e.g. "ETH-USDC") to the ledger
// contract holding that market's order book. The mapping is built once at
// startup from configuration and is immutable afterwards, so lookups need
// no locking. Unknown symbols fail closed with ErrMarketNotFound, never an
// empty address.
type MarketRegistry struct {
	contracts map[string]common.Address
}

// NewMarketRegistry creates a registry over the given symbol → contract map.
func NewMarketRegistry(contracts map[string]common.Address) *MarketRegistry {
	m := make(map[string]common.Address, len(contracts))
	for sym, addr := range contracts {
		m[sym] = addr
	}
	return &MarketRegistry{contracts: m}
}

// Resolve returns the contract address for a market symbol.
func (r *MarketRegistry) Resolve(symbol string) (common.Address, error) {
	addr, ok := r.contracts[symbol]
	if !ok {
		return common.Address{}, ErrMarketNotFound
	}
	return addr, nil
}

// Symbols returns the configured market symbols in sorted order.
func (r *MarketRegistry) Symbols() []string {
	symbols := make([]string, 0, len(r.contracts))
	for sym := range r.contracts {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols
}
