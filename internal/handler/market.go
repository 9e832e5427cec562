package handler

import (
	"errors"
	"net/http"

	"github.com/quanterra/bookview/internal/domain"
	"github.com/quanterra/bookview/internal/service"
)

// MarketHandler handles the order book view endpoints.
type MarketHandler struct {
	marketSvc *service.MarketService
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketSvc *service.MarketService) *MarketHandler {
	return &MarketHandler{marketSvc: marketSvc}
}

// orderbookRequest is the JSON body for POST /orderbook.
type orderbookRequest struct {
	Market string `json:"market"`
}

// accountRequest is the JSON body for POST /trades and POST /open_order.
type accountRequest struct {
	Market  string `json:"market"`
	Account string `json:"account"`
}

// Orderbook handles POST /orderbook.
func (h *MarketHandler) Orderbook(w http.ResponseWriter, r *http.Request) {
	var req orderbookRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, codeValidation, "validation_error", "request body must be valid JSON")
		return
	}

	v, err := h.marketSvc.Orderbook(r.Context(), req.Market)
	if err != nil {
		mapMarketError(w, err)
		return
	}
	WriteData(w, v)
}

// Trades handles POST /trades.
func (h *MarketHandler) Trades(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, codeValidation, "validation_error", "request body must be valid JSON")
		return
	}

	trades, err := h.marketSvc.Trades(r.Context(), req.Market, req.Account)
	if err != nil {
		mapMarketError(w, err)
		return
	}
	WriteData(w, trades)
}

// OpenOrders handles POST /open_order.
func (h *MarketHandler) OpenOrders(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, codeValidation, "validation_error", "request body must be valid JSON")
		return
	}

	orders, err := h.marketSvc.OpenOrders(r.Context(), req.Market, req.Account)
	if err != nil {
		mapMarketError(w, err)
		return
	}
	WriteData(w, orders)
}

// mapMarketError maps domain errors to HTTP responses. Gateway failures
// become a 502 with a non-zero envelope code; they never escalate past the
// request that hit them.
func mapMarketError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, codeValidation, "validation_error", validationErr.Message)
		return
	}

	var gatewayErr *domain.GatewayError
	if errors.As(err, &gatewayErr) {
		WriteError(w, http.StatusBadGateway, codeGateway, "ledger_unavailable", "the ledger could not be reached, try again shortly")
		return
	}

	switch {
	case errors.Is(err, domain.ErrMarketNotFound):
		WriteError(w, http.StatusNotFound, codeMarketNotFound, "market_not_found", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, codeInternal, "internal_error", "An unexpected error occurred")
	}
}
