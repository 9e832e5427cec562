// Package ledger fetches order book and trade state from the remote ledger
// via read-only (simulated) contract calls. It is the only fallible,
// blocking boundary in the request pipeline: every failure is returned as a
// *domain.GatewayError for the HTTP layer to turn into a structured
// response.
package ledger

import (
	"context"
	"log/slog"
	"math/big"
	"strings"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/quanterra/bookview/internal/domain"
	"github.com/quanterra/bookview/internal/metrics"
)

// Gateway fetches the current book and trade state for a market contract.
type Gateway interface {
	// FetchBook returns the raw bid and ask order lists.
	FetchBook(ctx context.Context, contract common.Address) (bids, asks []domain.Order, err error)
	// FetchTrades returns the market's recent trade records.
	FetchTrades(ctx context.Context, contract common.Address) ([]domain.Trade, error)
}

// orderbookABI covers the read-only surface of the order book contract.
const orderbookABI = `[
	{"type":"function","name":"orderbook","stateMutability":"view",
	 "inputs":[{"name":"side","type":"uint8"}],
	 "outputs":[{"name":"orders","type":"tuple[]","components":[
		{"name":"owner","type":"address"},
		{"name":"price","type":"uint64"},
		{"name":"amount","type":"uint64"},
		{"name":"seq","type":"uint64"},
		{"name":"filled","type":"uint64"},
		{"name":"side","type":"uint64"},
		{"name":"timestamp","type":"uint64"}]}]},
	{"type":"function","name":"recentTrades","stateMutability":"view",
	 "inputs":[{"name":"side","type":"uint8"}],
	 "outputs":[{"name":"trades","type":"tuple[]","components":[
		{"name":"maker","type":"address"},
		{"name":"taker","type":"address"},
		{"name":"price","type":"uint64"},
		{"name":"amount","type":"uint64"},
		{"name":"side","type":"uint64"},
		{"name":"timestamp","type":"uint64"}]}]}
]`

// rawOrder mirrors the contract's order tuple for ABI unpacking.
type rawOrder struct {
	Owner     common.Address
	Price     uint64
	Amount    uint64
	Seq       uint64
	Filled    uint64
	Side      uint64
	Timestamp uint64
}

// rawTrade mirrors the contract's trade tuple for ABI unpacking.
type rawTrade struct {
	Maker     common.Address
	Taker     common.Address
	Price     uint64
	Amount    uint64
	Side      uint64
	Timestamp uint64
}

// contractCaller is the subset of ethclient.Client the gateway needs,
// extracted so tests can substitute a fake.
type contractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

const retryBaseDelay = 100 * time.Millisecond

// ContractGateway executes simulated calls against an order book contract
// over an Ethereum-style JSON-RPC endpoint. Transient failures are retried
// with exponential backoff up to the configured attempt budget.
type ContractGateway struct {
	client  contractCaller
	eth     *ethclient.Client // set when constructed via Dial, for Close
	abi     abi.ABI
	timeout time.Duration
	retries int
	logger  *slog.Logger
}

// NewContractGateway creates a gateway over an existing caller. timeout
// bounds each attempt; retries is the number of additional attempts after
// the first.
func NewContractGateway(client contractCaller, timeout time.Duration, retries int, logger *slog.Logger) (*ContractGateway, error) {
	parsed, err := abi.JSON(strings.NewReader(orderbookABI))
	if err != nil {
		return nil, err
	}
	return &ContractGateway{
		client:  client,
		abi:     parsed,
		timeout: timeout,
		retries: retries,
		logger:  logger,
	}, nil
}

// Dial connects to the ledger RPC endpoint and returns a gateway over it.
func Dial(ctx context.Context, url string, timeout time.Duration, retries int, logger *slog.Logger) (*ContractGateway, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, &domain.GatewayError{Op: "dial", Err: err}
	}
	gw, err := NewContractGateway(client, timeout, retries, logger)
	if err != nil {
		client.Close()
		return nil, err
	}
	gw.eth = client
	return gw, nil
}

// Close releases the underlying RPC connection when the gateway owns one.
func (g *ContractGateway) Close() {
	if g.eth != nil {
		g.eth.Close()
	}
}

// FetchBook returns both sides of the book, bids then asks.
func (g *ContractGateway) FetchBook(ctx context.Context, contract common.Address) ([]domain.Order, []domain.Order, error) {
	bids, err := g.fetchSide(ctx, contract, domain.SideBid)
	if err != nil {
		return nil, nil, err
	}
	asks, err := g.fetchSide(ctx, contract, domain.SideAsk)
	if err != nil {
		return nil, nil, err
	}
	return bids, asks, nil
}

func (g *ContractGateway) fetchSide(ctx context.Context, contract common.Address, side domain.Side) ([]domain.Order, error) {
	vals, err := g.call(ctx, contract, "orderbook", uint8(side))
	if err != nil {
		return nil, err
	}
	raw := *abi.ConvertType(vals[0], new([]rawOrder)).(*[]rawOrder)

	orders := make([]domain.Order, len(raw))
	for i, r := range raw {
		orders[i] = domain.Order{
			Owner:     r.Owner,
			Price:     r.Price,
			Amount:    r.Amount,
			Seq:       r.Seq,
			Filled:    r.Filled,
			Side:      domain.Side(r.Side),
			Timestamp: r.Timestamp,
		}
	}

	g.logger.Debug("fetched book side",
		slog.String("contract", contract.Hex()),
		slog.String("side", side.String()),
		slog.Int("orders", len(orders)),
	)
	return orders, nil
}

// FetchTrades returns the market's recent trades.
func (g *ContractGateway) FetchTrades(ctx context.Context, contract common.Address) ([]domain.Trade, error) {
	vals, err := g.call(ctx, contract, "recentTrades", uint8(0))
	if err != nil {
		return nil, err
	}
	raw := *abi.ConvertType(vals[0], new([]rawTrade)).(*[]rawTrade)

	trades := make([]domain.Trade, len(raw))
	for i, r := range raw {
		trades[i] = domain.Trade{
			Maker:     r.Maker,
			Taker:     r.Taker,
			Price:     r.Price,
			Amount:    r.Amount,
			Side:      domain.Side(r.Side),
			Timestamp: r.Timestamp,
		}
	}
	return trades, nil
}

// call packs and executes one contract method with retry, returning the
// unpacked output values.
func (g *ContractGateway) call(ctx context.Context, contract common.Address, method string, args ...any) ([]any, error) {
	input, err := g.abi.Pack(method, args...)
	if err != nil {
		return nil, &domain.GatewayError{Op: method, Err: err}
	}
	msg := ethereum.CallMsg{To: &contract, Data: input}

	start := time.Now()
	var res []byte
	err = g.withRetry(ctx, method, func(ctx context.Context) error {
		var callErr error
		res, callErr = g.client.CallContract(ctx, msg, nil)
		return callErr
	})
	metrics.LedgerCallDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LedgerErrorsTotal.WithLabelValues(method).Inc()
		return nil, &domain.GatewayError{Op: method, Err: err}
	}

	vals, err := g.abi.Unpack(method, res)
	if err != nil {
		metrics.LedgerErrorsTotal.WithLabelValues(method).Inc()
		return nil, &domain.GatewayError{Op: method, Err: err}
	}
	return vals, nil
}

// withRetry runs fn with the per-attempt timeout, retrying failures with
// exponential backoff until the attempt budget is spent or the parent
// context is cancelled.
func (g *ContractGateway) withRetry(ctx context.Context, op string, fn func(context.Context) error) error {
	backoff := retryBaseDelay
	for attempt := 0; ; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
		err := fn(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}
		if attempt >= g.retries || ctx.Err() != nil {
			return err
		}

		g.logger.Warn("ledger call failed, retrying",
			slog.String("op", op),
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()),
		)
		metrics.LedgerRetriesTotal.Inc()

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
		backoff *= 2
	}
}
