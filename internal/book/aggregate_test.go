package book

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/quanterra/bookview/internal/domain"
)

// helper to create an Order with just the fields aggregation reads.
func makeOrder(price, amount uint64) domain.Order {
	return domain.Order{Price: price, Amount: amount}
}

func TestAggregate_BidsDescendingWithDuplicateCollapse(t *testing.T) {
	bids := []domain.Order{
		makeOrder(100, 5),
		makeOrder(100, 3),
		makeOrder(90, 2),
	}

	levels := Aggregate(bids, domain.SideBid)

	want := []PriceLevel{{100, 8}, {90, 2}}
	if len(levels) != len(want) {
		t.Fatalf("got %d levels, want %d: %v", len(levels), len(want), levels)
	}
	for i := range want {
		if levels[i] != want[i] {
			t.Errorf("levels[%d] = %v, want %v", i, levels[i], want[i])
		}
	}
}

func TestAggregate_AsksAscending(t *testing.T) {
	asks := []domain.Order{
		makeOrder(101, 4),
		makeOrder(105, 1),
	}

	levels := Aggregate(asks, domain.SideAsk)

	want := []PriceLevel{{101, 4}, {105, 1}}
	if len(levels) != len(want) {
		t.Fatalf("got %d levels, want %d: %v", len(levels), len(want), levels)
	}
	for i := range want {
		if levels[i] != want[i] {
			t.Errorf("levels[%d] = %v, want %v", i, levels[i], want[i])
		}
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	levels := Aggregate(nil, domain.SideBid)
	if levels == nil {
		t.Fatal("Aggregate(nil) should return an empty slice, not nil")
	}
	if len(levels) != 0 {
		t.Errorf("Aggregate(nil) = %v, want empty", levels)
	}
}

func TestAggregate_FilledNotSubtracted(t *testing.T) {
	// A partially-filled order still contributes its full raw amount.
	bids := []domain.Order{
		{Price: 100, Amount: 10, Filled: 7},
	}

	levels := Aggregate(bids, domain.SideBid)
	if len(levels) != 1 || levels[0].Amount != 10 {
		t.Errorf("levels = %v, want [{100 10}]", levels)
	}
}

func TestAggregate_AmountSaturatesOnOverflow(t *testing.T) {
	bids := []domain.Order{
		makeOrder(100, math.MaxUint64),
		makeOrder(100, 1),
	}

	levels := Aggregate(bids, domain.SideBid)
	if len(levels) != 1 || levels[0].Amount != math.MaxUint64 {
		t.Errorf("levels = %v, want amount capped at MaxUint64", levels)
	}
}

func TestNewView_AggregatesBothSides(t *testing.T) {
	bids := []domain.Order{makeOrder(90, 2), makeOrder(100, 5)}
	asks := []domain.Order{makeOrder(105, 1), makeOrder(101, 4)}

	v := NewView(bids, asks)

	if len(v.Bids) != 2 || v.Bids[0].Price != 100 {
		t.Errorf("Bids = %v, want best bid 100 first", v.Bids)
	}
	if len(v.Asks) != 2 || v.Asks[0].Price != 101 {
		t.Errorf("Asks = %v, want best ask 101 first", v.Asks)
	}
}

func TestView_MarshalsLevelsAsPairs(t *testing.T) {
	v := NewView(
		[]domain.Order{makeOrder(100, 8)},
		nil,
	)

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"bids":[[100,8]],"asks":[]}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}
