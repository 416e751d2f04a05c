package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patentmarket/admin-gateway/internal/core/auth"
	"github.com/patentmarket/admin-gateway/internal/core/trade"
	"github.com/patentmarket/admin-gateway/internal/transport/httpapi/handler"
	"github.com/patentmarket/admin-gateway/internal/transport/httpapi/middleware"
	"github.com/patentmarket/admin-gateway/pkg/logger"
)

func modalTestLogger() *logger.Logger {
	return logger.New("development", io.Discard)
}

func sessionRequest(method, path, body, sessionID string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	session := auth.Session{ID: sessionID, Role: auth.RoleAdmin}
	return req.WithContext(context.WithValue(req.Context(), middleware.SessionKey, session))
}

func modalState(t *testing.T, h *handler.ModalHandler, sessionID string) handler.ModalResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	h.GetState(rec, sessionRequest(http.MethodGet, "/admin/trade-modal", "", sessionID))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.ModalResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestModal_OpenLoadsDetail(t *testing.T) {
	fetch := func(ctx context.Context, tradeID int64) (trade.TradeDetail, error) {
		return trade.TradeDetail{ID: tradeID, PostTitle: "특허 A"}, nil
	}
	registry := trade.NewModalRegistry(fetch, modalTestLogger())
	h := handler.NewModalHandler(registry)

	assert.Equal(t, "CLOSED", modalState(t, h, "sess-1").State)

	rec := httptest.NewRecorder()
	h.Open(rec, sessionRequest(http.MethodPost, "/admin/trade-modal/open", `{"tradeId":7}`, "sess-1"))
	require.Equal(t, http.StatusAccepted, rec.Code)

	require.Eventually(t, func() bool {
		return modalState(t, h, "sess-1").State == "LOADED"
	}, time.Second, 10*time.Millisecond)

	state := modalState(t, h, "sess-1")
	require.NotNil(t, state.Detail)
	assert.Equal(t, int64(7), state.Detail.ID)
	assert.Equal(t, "특허 A", state.Detail.PostTitle)
}

func TestModal_FailedThenRetry(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	fetch := func(ctx context.Context, tradeID int64) (trade.TradeDetail, error) {
		if failing.Load() {
			return trade.TradeDetail{}, errors.New("boom")
		}
		return trade.TradeDetail{ID: tradeID}, nil
	}
	registry := trade.NewModalRegistry(fetch, modalTestLogger())
	h := handler.NewModalHandler(registry)

	rec := httptest.NewRecorder()
	h.Open(rec, sessionRequest(http.MethodPost, "/admin/trade-modal/open", `{"tradeId":7}`, "sess-1"))
	require.Equal(t, http.StatusAccepted, rec.Code)

	require.Eventually(t, func() bool {
		return modalState(t, h, "sess-1").State == "FAILED"
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "거래 정보를 불러오지 못했습니다.", modalState(t, h, "sess-1").Message)

	failing.Store(false)
	rec = httptest.NewRecorder()
	h.Retry(rec, sessionRequest(http.MethodPost, "/admin/trade-modal/retry", "", "sess-1"))
	require.Equal(t, http.StatusAccepted, rec.Code)

	require.Eventually(t, func() bool {
		return modalState(t, h, "sess-1").State == "LOADED"
	}, time.Second, 10*time.Millisecond)
}

func TestModal_Close(t *testing.T) {
	fetch := func(ctx context.Context, tradeID int64) (trade.TradeDetail, error) {
		return trade.TradeDetail{ID: tradeID}, nil
	}
	registry := trade.NewModalRegistry(fetch, modalTestLogger())
	h := handler.NewModalHandler(registry)

	rec := httptest.NewRecorder()
	h.Open(rec, sessionRequest(http.MethodPost, "/admin/trade-modal/open", `{"tradeId":7}`, "sess-1"))
	require.Eventually(t, func() bool {
		return modalState(t, h, "sess-1").State == "LOADED"
	}, time.Second, 10*time.Millisecond)

	rec = httptest.NewRecorder()
	h.Close(rec, sessionRequest(http.MethodPost, "/admin/trade-modal/close", "", "sess-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	state := modalState(t, h, "sess-1")
	assert.Equal(t, "CLOSED", state.State)
	assert.Nil(t, state.Detail)
}

func TestModal_SessionsAreIsolated(t *testing.T) {
	fetch := func(ctx context.Context, tradeID int64) (trade.TradeDetail, error) {
		return trade.TradeDetail{ID: tradeID}, nil
	}
	registry := trade.NewModalRegistry(fetch, modalTestLogger())
	h := handler.NewModalHandler(registry)

	rec := httptest.NewRecorder()
	h.Open(rec, sessionRequest(http.MethodPost, "/admin/trade-modal/open", `{"tradeId":7}`, "sess-a"))
	require.Eventually(t, func() bool {
		return modalState(t, h, "sess-a").State == "LOADED"
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, "CLOSED", modalState(t, h, "sess-b").State)
}

func TestModal_RequiresSession(t *testing.T) {
	registry := trade.NewModalRegistry(nil, modalTestLogger())
	h := handler.NewModalHandler(registry)

	req := httptest.NewRequest(http.MethodGet, "/admin/trade-modal", nil)
	rec := httptest.NewRecorder()
	h.GetState(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestModal_OpenValidatesBody(t *testing.T) {
	registry := trade.NewModalRegistry(nil, modalTestLogger())
	h := handler.NewModalHandler(registry)

	rec := httptest.NewRecorder()
	h.Open(rec, sessionRequest(http.MethodPost, "/admin/trade-modal/open", `{"tradeId":0}`, "sess-1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
