package marketapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patentmarket/admin-gateway/internal/infra/gateway/marketapi"
	"github.com/patentmarket/admin-gateway/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New("development", io.Discard)
}

func envelopeJSON(data any) map[string]any {
	return map[string]any{
		"resultCode": "SUCCESS",
		"message":    "ok",
		"data":       data,
	}
}

// =============================================================================
// Envelope Tests
// =============================================================================

func TestClient_ListTrades_UnwrapsEnvelope(t *testing.T) {
	var receivedURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedURL = r.URL.String()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(envelopeJSON(map[string]any{
			"content": []map[string]any{
				{"tradeId": 1, "postId": 10, "sellerId": 100, "buyerId": 200, "price": 5000, "status": "REQUEST", "createdAt": "2026-01-02T03:04:05Z"},
				{"tradeId": 2, "postId": 11, "sellerId": 101, "buyerId": 201, "price": 7000, "status": "COMPLETED", "createdAt": "2026-01-03T03:04:05Z"},
			},
			"pageNumber":    0,
			"totalPages":    3,
			"totalElements": 42,
		}))
	}))
	defer server.Close()

	client := marketapi.NewClient(server.URL, testLogger())
	page, err := client.ListTrades(context.Background(), 0, 50)
	require.NoError(t, err)

	assert.Contains(t, receivedURL, "/api/trades")
	assert.Contains(t, receivedURL, "page=0")
	assert.Contains(t, receivedURL, "size=50")

	require.Len(t, page.Trades, 2)
	assert.Equal(t, int64(1), page.Trades[0].ID)
	assert.Equal(t, "REQUEST", page.Trades[0].Status)
	assert.Equal(t, int64(7000), page.Trades[1].Price)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(42), page.TotalElements)
}

func TestClient_ListTrades_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(envelopeJSON(map[string]any{
			"content":       []any{},
			"pageNumber":    5,
			"totalPages":    5,
			"totalElements": 0,
		}))
	}))
	defer server.Close()

	client := marketapi.NewClient(server.URL, testLogger())
	page, err := client.ListTrades(context.Background(), 5, 50)
	require.NoError(t, err)
	assert.Empty(t, page.Trades)
}

func TestClient_GetPost(t *testing.T) {
	var receivedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(envelopeJSON(map[string]any{
			"title":    "특허 매물",
			"category": "PRODUCT",
		}))
	}))
	defer server.Close()

	client := marketapi.NewClient(server.URL, testLogger())
	post, err := client.GetPost(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, "/api/posts/42", receivedPath)
	assert.Equal(t, "특허 매물", post.Title)
	assert.Equal(t, "PRODUCT", post.Category)
}

func TestClient_GetTradeDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/trades/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(envelopeJSON(map[string]any{
			"tradeId":      7,
			"postTitle":    "엔진 설계",
			"postCategory": "METHOD",
			"price":        90000,
			"status":       "ACCEPT",
			"sellerEmail":  "seller@example.com",
			"buyerEmail":   "buyer@example.com",
			"createdAt":    "2026-02-01T00:00:00Z",
			"updatedAt":    "2026-02-02T00:00:00Z",
		}))
	}))
	defer server.Close()

	client := marketapi.NewClient(server.URL, testLogger())
	detail, err := client.GetTradeDetail(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), detail.ID)
	assert.Equal(t, "엔진 설계", detail.PostTitle)
	assert.Equal(t, "seller@example.com", detail.SellerEmail)
}

// =============================================================================
// Error Classification Tests
// =============================================================================

func TestClient_NoResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := marketapi.NewClient(server.URL, testLogger())
	_, err := client.ListTrades(context.Background(), 0, 50)
	require.Error(t, err)

	apiErr, ok := marketapi.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, marketapi.KindNoResponse, apiErr.Kind)
	assert.Zero(t, apiErr.StatusCode)
}

func TestClient_StatusOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := marketapi.NewClient(server.URL, testLogger())
	_, err := client.GetPost(context.Background(), 1)
	require.Error(t, err)

	apiErr, ok := marketapi.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, marketapi.KindStatusOnly, apiErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
}

func TestClient_MessageBearing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"resultCode": "MEMBER_SUSPENDED",
			"message":    "정지된 회원입니다.",
		})
	}))
	defer server.Close()

	client := marketapi.NewClient(server.URL, testLogger())
	_, err := client.Login(context.Background(), "a@b.com", "pw")
	require.Error(t, err)

	apiErr, ok := marketapi.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, marketapi.KindMessage, apiErr.Kind)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "정지된 회원입니다.", apiErr.Message)
	assert.Equal(t, marketapi.ResultMemberSuspended, apiErr.ResultCode)
}

func TestClient_ErrorPayloadWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"resultCode":"FAIL"}`))
	}))
	defer server.Close()

	client := marketapi.NewClient(server.URL, testLogger())
	_, err := client.Login(context.Background(), "a@b.com", "pw")
	require.Error(t, err)

	apiErr, ok := marketapi.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, marketapi.KindStatusOnly, apiErr.Kind)
}

// =============================================================================
// Auth Endpoint Tests
// =============================================================================

func TestClient_Login_SendsCredentials(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(envelopeJSON(map[string]any{
			"memberId": 9,
			"email":    "admin@example.com",
			"name":     "관리자",
			"role":     "ADMIN",
		}))
	}))
	defer server.Close()

	client := marketapi.NewClient(server.URL, testLogger())
	member, err := client.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "admin@example.com", received["email"])
	assert.Equal(t, "secret", received["password"])
	assert.Equal(t, int64(9), member.ID)
	assert.Equal(t, "ADMIN", member.Role)
}

func TestClient_VerifyMember(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/members/verify", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "홍길동", body["name"])
		assert.Equal(t, "hong@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(envelopeJSON(map[string]any{"memberId": 31}))
	}))
	defer server.Close()

	client := marketapi.NewClient(server.URL, testLogger())
	memberID, err := client.VerifyMember(context.Background(), "홍길동", "hong@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(31), memberID)
}

func TestClient_UpdatePassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/members/31/password", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "newpass123", body["newPassword"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(envelopeJSON(nil))
	}))
	defer server.Close()

	client := marketapi.NewClient(server.URL, testLogger())
	require.NoError(t, client.UpdatePassword(context.Background(), 31, "newpass123"))
}
