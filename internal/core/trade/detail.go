package trade

import (
	"context"
	"sync"

	"github.com/patentmarket/admin-gateway/internal/infra/gateway/marketapi"
	"github.com/patentmarket/admin-gateway/pkg/logger"
)

// ModalState is the trade-detail modal's state
type ModalState string

const (
	ModalClosed  ModalState = "CLOSED"
	ModalLoading ModalState = "LOADING"
	ModalLoaded  ModalState = "LOADED"
	ModalFailed  ModalState = "FAILED"
)

// detailMessageFallback is shown when a failed detail fetch carries no
// backend-provided message.
const detailMessageFallback = "거래 정보를 불러오지 못했습니다."

// DetailFetcher loads the full detail of one trade
type DetailFetcher func(ctx context.Context, tradeID int64) (TradeDetail, error)

// DetailView holds the trade-detail modal state for one admin session:
// Closed → Loading → {Loaded, Failed}. Opening starts an asynchronous
// detail fetch; the completion is matched against the generation current
// when the fetch started, so a result that arrives after the view moved on
// (closed, or reopened for another trade) is silently dropped. Closing
// always discards loaded data; nothing is cached across opens.
type DetailView struct {
	fetch  DetailFetcher
	logger *logger.Logger

	mu      sync.Mutex
	state   ModalState
	tradeID int64
	gen     uint64
	detail  *TradeDetail
	message string
}

// DetailSnapshot is a point-in-time copy of the modal state
type DetailSnapshot struct {
	State   ModalState
	TradeID int64
	Detail  *TradeDetail
	Message string
}

// NewDetailView creates a closed detail view
func NewDetailView(fetch DetailFetcher, log *logger.Logger) *DetailView {
	return &DetailView{
		fetch:  fetch,
		logger: log.WithField("component", "detail_view"),
		state:  ModalClosed,
	}
}

// Open transitions to Loading for the given trade and starts the fetch
func (v *DetailView) Open(ctx context.Context, tradeID int64) {
	v.mu.Lock()
	v.state = ModalLoading
	v.tradeID = tradeID
	v.detail = nil
	v.message = ""
	v.gen++
	gen := v.gen
	v.mu.Unlock()

	go v.load(ctx, tradeID, gen)
}

// Close returns to Closed and discards any loaded or failed data. An
// in-flight fetch keeps running but its result will be stale on arrival.
func (v *DetailView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state = ModalClosed
	v.tradeID = 0
	v.detail = nil
	v.message = ""
	v.gen++
}

// Retry re-enters Loading for the same trade. Only valid from Failed;
// anywhere else it is a no-op.
func (v *DetailView) Retry(ctx context.Context) {
	v.mu.Lock()
	if v.state != ModalFailed {
		v.mu.Unlock()
		return
	}
	tradeID := v.tradeID
	v.mu.Unlock()

	v.Open(ctx, tradeID)
}

// Snapshot returns a copy of the current modal state
func (v *DetailView) Snapshot() DetailSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := DetailSnapshot{
		State:   v.state,
		TradeID: v.tradeID,
		Message: v.message,
	}
	if v.detail != nil {
		d := *v.detail
		snap.Detail = &d
	}
	return snap
}

func (v *DetailView) load(ctx context.Context, tradeID int64, gen uint64) {
	detail, err := v.fetch(ctx, tradeID)
	v.apply(tradeID, gen, detail, err)
}

// apply installs a fetch result unless the view has moved on since the
// fetch started.
func (v *DetailView) apply(tradeID int64, gen uint64, detail TradeDetail, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.gen || v.state != ModalLoading || v.tradeID != tradeID {
		v.logger.Debug("stale detail result dropped", "trade_id", tradeID)
		return
	}

	if err != nil {
		v.state = ModalFailed
		v.message = detailMessage(err)
		return
	}

	v.state = ModalLoaded
	v.detail = &detail
}

// detailMessage derives the user-facing failure message: the backend's own
// message verbatim when one exists, a generic fallback otherwise.
func detailMessage(err error) string {
	if apiErr, ok := marketapi.AsAPIError(err); ok && apiErr.Kind == marketapi.KindMessage {
		return apiErr.Message
	}
	return detailMessageFallback
}

// ModalRegistry owns one DetailView per admin session
type ModalRegistry struct {
	fetch  DetailFetcher
	logger *logger.Logger

	mu    sync.Mutex
	views map[string]*DetailView
}

// NewModalRegistry creates an empty registry
func NewModalRegistry(fetch DetailFetcher, log *logger.Logger) *ModalRegistry {
	return &ModalRegistry{
		fetch:  fetch,
		logger: log,
		views:  make(map[string]*DetailView),
	}
}

// View returns the session's detail view, creating a closed one on first use
func (r *ModalRegistry) View(sessionID string) *DetailView {
	r.mu.Lock()
	defer r.mu.Unlock()

	view, ok := r.views[sessionID]
	if !ok {
		view = NewDetailView(r.fetch, r.logger)
		r.views[sessionID] = view
	}
	return view
}

// Drop removes a session's detail view, e.g. at logout
func (r *ModalRegistry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, sessionID)
}
