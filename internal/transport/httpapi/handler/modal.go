package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/patentmarket/admin-gateway/internal/core/trade"
	"github.com/patentmarket/admin-gateway/internal/transport/httpapi/middleware"
)

// ModalHandler exposes the per-session trade-detail modal state. The client
// opens, closes and retries; the server owns the state machine and the
// client polls the snapshot.
type ModalHandler struct {
	registry *trade.ModalRegistry
}

// NewModalHandler creates a new modal handler
func NewModalHandler(registry *trade.ModalRegistry) *ModalHandler {
	return &ModalHandler{registry: registry}
}

// OpenModalRequest represents the open request body
type OpenModalRequest struct {
	TradeID int64 `json:"tradeId"`
}

// ModalResponse represents the modal snapshot
type ModalResponse struct {
	State   string               `json:"state"`
	TradeID int64                `json:"tradeId,omitempty"`
	Detail  *TradeDetailResponse `json:"detail,omitempty"`
	Message string               `json:"message,omitempty"`
}

// GetState handles GET /admin/trade-modal
func (h *ModalHandler) GetState(w http.ResponseWriter, r *http.Request) {
	view, ok := h.sessionView(w, r)
	if !ok {
		return
	}
	respondJSON(w, snapshotResponse(view.Snapshot()), http.StatusOK)
}

// Open handles POST /admin/trade-modal/open. The detail fetch is detached
// from the request context so it outlives this call; the client observes
// its outcome through subsequent snapshots.
func (h *ModalHandler) Open(w http.ResponseWriter, r *http.Request) {
	view, ok := h.sessionView(w, r)
	if !ok {
		return
	}

	var req OpenModalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.TradeID <= 0 {
		respondError(w, "tradeId is required", http.StatusBadRequest)
		return
	}

	view.Open(context.WithoutCancel(r.Context()), req.TradeID)
	respondJSON(w, snapshotResponse(view.Snapshot()), http.StatusAccepted)
}

// Close handles POST /admin/trade-modal/close
func (h *ModalHandler) Close(w http.ResponseWriter, r *http.Request) {
	view, ok := h.sessionView(w, r)
	if !ok {
		return
	}

	view.Close()
	respondJSON(w, snapshotResponse(view.Snapshot()), http.StatusOK)
}

// Retry handles POST /admin/trade-modal/retry
func (h *ModalHandler) Retry(w http.ResponseWriter, r *http.Request) {
	view, ok := h.sessionView(w, r)
	if !ok {
		return
	}

	view.Retry(context.WithoutCancel(r.Context()))
	respondJSON(w, snapshotResponse(view.Snapshot()), http.StatusAccepted)
}

func (h *ModalHandler) sessionView(w http.ResponseWriter, r *http.Request) (*trade.DetailView, bool) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return h.registry.View(session.ID), true
}

func snapshotResponse(snap trade.DetailSnapshot) ModalResponse {
	resp := ModalResponse{
		State:   string(snap.State),
		TradeID: snap.TradeID,
		Message: snap.Message,
	}
	if snap.Detail != nil {
		d := detailResponse(*snap.Detail)
		resp.Detail = &d
	}
	return resp
}
