package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/patentmarket/admin-gateway/internal/core/trade"
)

// TradeServiceInterface defines the trade operations needed by TradeHandler
type TradeServiceInterface interface {
	List(ctx context.Context) ([]trade.EnrichedTrade, error)
	Detail(ctx context.Context, tradeID int64) (trade.TradeDetail, error)
}

// TradeHandler handles admin trade table HTTP requests
type TradeHandler struct {
	trades TradeServiceInterface
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(trades TradeServiceInterface) *TradeHandler {
	return &TradeHandler{trades: trades}
}

// TradeRow is one row of the admin trade table
type TradeRow struct {
	ID           int64  `json:"id"`
	PostTitle    string `json:"postTitle"`
	PostCategory string `json:"postCategory"`
	Price        int64  `json:"price"`
	Status       string `json:"status"`
	StatusLabel  string `json:"statusLabel"`
	CreatedAt    string `json:"createdAt"`
}

// TradeListResponse represents the trade table response
type TradeListResponse struct {
	Trades []TradeRow `json:"trades"`
	Total  int        `json:"total"`
}

// TradeDetailResponse represents the full trade detail
type TradeDetailResponse struct {
	ID           int64  `json:"id"`
	PostTitle    string `json:"postTitle"`
	PostCategory string `json:"postCategory"`
	Price        int64  `json:"price"`
	Status       string `json:"status"`
	StatusLabel  string `json:"statusLabel"`
	SellerEmail  string `json:"sellerEmail"`
	BuyerEmail   string `json:"buyerEmail"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// ListTrades handles GET /admin/trades. Filter and sort parameters come from
// the query string; the full collection is refetched and the view derived
// from scratch on every call.
func (h *TradeHandler) ListTrades(w http.ResponseWriter, r *http.Request) {
	vs := viewStateFromQuery(r)

	records, err := h.trades.List(r.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}

	view := trade.DeriveView(records, vs)

	rows := make([]TradeRow, 0, len(view))
	for _, t := range view {
		rows = append(rows, TradeRow{
			ID:           t.ID,
			PostTitle:    t.PostTitle,
			PostCategory: t.PostCategory,
			Price:        t.Price,
			Status:       t.Status,
			StatusLabel:  trade.StatusLabel(t.Status),
			CreatedAt:    t.CreatedAt,
		})
	}

	respondJSON(w, TradeListResponse{Trades: rows, Total: len(rows)}, http.StatusOK)
}

// GetTrade handles GET /admin/trades/{id}
func (h *TradeHandler) GetTrade(w http.ResponseWriter, r *http.Request) {
	tradeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "invalid trade id", http.StatusBadRequest)
		return
	}

	detail, err := h.trades.Detail(r.Context(), tradeID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, detailResponse(detail), http.StatusOK)
}

// viewStateFromQuery parses the table's view state from query parameters.
// Unknown sort keys and directions fall back to the defaults rather than
// erroring; the table must always render.
func viewStateFromQuery(r *http.Request) trade.ViewState {
	vs := trade.DefaultViewState()
	q := r.URL.Query()

	vs.Search = q.Get("search")

	if status := q.Get("status"); status != "" {
		vs.Status = status
	}

	switch key := trade.SortKey(q.Get("sort")); key {
	case trade.SortByID, trade.SortByPrice, trade.SortByCreatedAt,
		trade.SortByPostTitle, trade.SortByPostCategory:
		vs.SortKey = key
	}

	switch dir := trade.SortDir(q.Get("dir")); dir {
	case trade.SortAsc, trade.SortDesc:
		vs.SortDir = dir
	}

	return vs
}

func detailResponse(d trade.TradeDetail) TradeDetailResponse {
	return TradeDetailResponse{
		ID:           d.ID,
		PostTitle:    d.PostTitle,
		PostCategory: d.PostCategory,
		Price:        d.Price,
		Status:       d.Status,
		StatusLabel:  trade.StatusLabel(d.Status),
		SellerEmail:  d.SellerEmail,
		BuyerEmail:   d.BuyerEmail,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
