package service

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/quanterra/bookview/internal/book"
	"github.com/quanterra/bookview/internal/domain"
	"github.com/quanterra/bookview/internal/ledger"
	"github.com/quanterra/bookview/internal/view"
)

// MarketService answers order book, open order, and trade queries for a
// market. Each call is an independent fetch-aggregate-respond pipeline: it
// resolves the market's contract, pulls a fresh snapshot through the
// gateway, and derives the requested view. Nothing is cached or shared
// between requests.
type MarketService struct {
	gateway ledger.Gateway
	markets *domain.MarketRegistry
	logger  *slog.Logger
}

// NewMarketService creates a MarketService with the given dependencies.
func NewMarketService(gateway ledger.Gateway, markets *domain.MarketRegistry, logger *slog.Logger) *MarketService {
	return &MarketService{
		gateway: gateway,
		markets: markets,
		logger:  logger,
	}
}

// Orderbook returns the aggregated price-level view of a market's book.
func (s *MarketService) Orderbook(ctx context.Context, market string) (*book.View, error) {
	contract, err := s.resolve(market)
	if err != nil {
		return nil, err
	}

	s.logger.Info("fetching orderbook",
		slog.String("market", market),
		slog.String("contract", contract.Hex()),
	)

	bids, asks, err := s.gateway.FetchBook(ctx, contract)
	if err != nil {
		return nil, err
	}
	return book.NewView(bids, asks), nil
}

// OpenOrders returns the account's resting orders on a market, bid side
// first.
func (s *MarketService) OpenOrders(ctx context.Context, market, account string) ([]view.OpenOrderView, error) {
	contract, err := s.resolve(market)
	if err != nil {
		return nil, err
	}
	if account == "" {
		return nil, &domain.ValidationError{Message: "account is required"}
	}

	s.logger.Info("fetching open orders",
		slog.String("market", market),
		slog.String("account", account),
	)

	bids, asks, err := s.gateway.FetchBook(ctx, contract)
	if err != nil {
		return nil, err
	}
	return view.ProjectOpenOrders(bids, asks, account), nil
}

// Trades returns the market's recent trades. The account parameter is
// accepted for wire compatibility but trade history is market-wide and is
// not filtered by it.
func (s *MarketService) Trades(ctx context.Context, market, account string) ([]view.TradeView, error) {
	contract, err := s.resolve(market)
	if err != nil {
		return nil, err
	}
	if account != "" {
		s.logger.Debug("account parameter ignored for trades", slog.String("account", account))
	}

	s.logger.Info("fetching trades",
		slog.String("market", market),
		slog.String("contract", contract.Hex()),
	)

	trades, err := s.gateway.FetchTrades(ctx, contract)
	if err != nil {
		return nil, err
	}
	return view.ProjectTrades(trades), nil
}

func (s *MarketService) resolve(market string) (common.Address, error) {
	if market == "" {
		return common.Address{}, &domain.ValidationError{Message: "market is required"}
	}
	return s.markets.Resolve(market)
}
