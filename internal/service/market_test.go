package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/quanterra/bookview/internal/domain"
)

var (
	ethContract = common.HexToAddress("0x1111111111111111111111111111111111111111")
	alice       = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	bob         = common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
)

// fakeGateway serves canned snapshots and records the contract it was
// asked for.
type fakeGateway struct {
	bids, asks []domain.Order
	trades     []domain.Trade
	err        error
	contract   common.Address
}

func (f *fakeGateway) FetchBook(_ context.Context, contract common.Address) ([]domain.Order, []domain.Order, error) {
	f.contract = contract
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.bids, f.asks, nil
}

func (f *fakeGateway) FetchTrades(_ context.Context, contract common.Address) ([]domain.Trade, error) {
	f.contract = contract
	if f.err != nil {
		return nil, f.err
	}
	return f.trades, nil
}

func newTestService(gw *fakeGateway) *MarketService {
	markets := domain.NewMarketRegistry(map[string]common.Address{
		"ETH-USDC": ethContract,
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMarketService(gw, markets, logger)
}

func TestOrderbook_AggregatesFetchedSnapshot(t *testing.T) {
	gw := &fakeGateway{
		bids: []domain.Order{
			{Owner: alice, Price: 100, Amount: 5, Side: domain.SideBid},
			{Owner: bob, Price: 100, Amount: 3, Side: domain.SideBid},
			{Owner: bob, Price: 90, Amount: 2, Side: domain.SideBid},
		},
		asks: []domain.Order{
			{Owner: alice, Price: 101, Amount: 4, Side: domain.SideAsk},
		},
	}
	svc := newTestService(gw)

	v, err := svc.Orderbook(context.Background(), "ETH-USDC")
	if err != nil {
		t.Fatalf("Orderbook: %v", err)
	}
	if gw.contract != ethContract {
		t.Errorf("gateway called with %s, want %s", gw.contract.Hex(), ethContract.Hex())
	}
	if len(v.Bids) != 2 || v.Bids[0].Price != 100 || v.Bids[0].Amount != 8 {
		t.Errorf("Bids = %v, want aggregated [{100 8} {90 2}]", v.Bids)
	}
	if len(v.Asks) != 1 || v.Asks[0].Price != 101 {
		t.Errorf("Asks = %v, want [{101 4}]", v.Asks)
	}
}

func TestOrderbook_UnknownMarket(t *testing.T) {
	svc := newTestService(&fakeGateway{})

	_, err := svc.Orderbook(context.Background(), "DOGE-USDC")
	if !errors.Is(err, domain.ErrMarketNotFound) {
		t.Errorf("error = %v, want ErrMarketNotFound", err)
	}
}

func TestOrderbook_EmptyMarketIsValidationError(t *testing.T) {
	svc := newTestService(&fakeGateway{})

	_, err := svc.Orderbook(context.Background(), "")
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("error = %v, want *domain.ValidationError", err)
	}
}

func TestOrderbook_GatewayErrorPropagates(t *testing.T) {
	gwErr := &domain.GatewayError{Op: "orderbook", Err: errors.New("unreachable")}
	svc := newTestService(&fakeGateway{err: gwErr})

	_, err := svc.Orderbook(context.Background(), "ETH-USDC")
	if !errors.Is(err, gwErr) {
		t.Errorf("error = %v, want gateway error passed through", err)
	}
}

func TestOpenOrders_FiltersByAccount(t *testing.T) {
	gw := &fakeGateway{
		bids: []domain.Order{
			{Owner: alice, Price: 100, Amount: 5, Seq: 1, Side: domain.SideBid},
			{Owner: bob, Price: 99, Amount: 2, Seq: 2, Side: domain.SideBid},
		},
		asks: []domain.Order{
			{Owner: alice, Price: 105, Amount: 1, Seq: 3, Side: domain.SideAsk},
		},
	}
	svc := newTestService(gw)

	views, err := svc.OpenOrders(context.Background(), "ETH-USDC", alice.Hex())
	if err != nil {
		t.Fatalf("OpenOrders: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2", len(views))
	}
	if views[0].Seq != 1 || views[1].Seq != 3 {
		t.Errorf("views = %+v, want bid (seq 1) then ask (seq 3)", views)
	}
}

func TestOpenOrders_MissingAccount(t *testing.T) {
	svc := newTestService(&fakeGateway{})

	_, err := svc.OpenOrders(context.Background(), "ETH-USDC", "")
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want *domain.ValidationError", err)
	}
}

func TestTrades_IgnoresAccountParameter(t *testing.T) {
	gw := &fakeGateway{
		trades: []domain.Trade{
			{Maker: alice, Taker: bob, Price: 100, Amount: 5, Side: domain.SideBid, Timestamp: 1},
			{Maker: bob, Taker: bob, Price: 101, Amount: 1, Side: domain.SideAsk, Timestamp: 2},
		},
	}
	svc := newTestService(gw)

	// Trade history is market-wide: the account must not shrink the result.
	views, err := svc.Trades(context.Background(), "ETH-USDC", alice.Hex())
	if err != nil {
		t.Fatalf("Trades: %v", err)
	}
	if len(views) != 2 {
		t.Errorf("got %d trades, want all 2 regardless of account", len(views))
	}
}

func TestTrades_UnknownMarket(t *testing.T) {
	svc := newTestService(&fakeGateway{})

	_, err := svc.Trades(context.Background(), "SOL-USDC", "")
	if !errors.Is(err, domain.ErrMarketNotFound) {
		t.Errorf("error = %v, want ErrMarketNotFound", err)
	}
}
