package marketapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Trade is a trade record as returned by the marketplace backend. Status
// carries the backend's wire value untouched so unrecognized statuses
// round-trip exactly.
type Trade struct {
	ID        int64  `json:"tradeId"`
	PostID    int64  `json:"postId"`
	SellerID  int64  `json:"sellerId"`
	BuyerID   int64  `json:"buyerId"`
	Price     int64  `json:"price"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"` // ISO-8601
}

// TradePage is one page of the trade listing
type TradePage struct {
	Trades        []Trade
	PageNumber    int
	TotalPages    int
	TotalElements int64
}

// Post is the subset of post metadata the trade table needs
type Post struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

// TradeDetail is the full per-trade view backing the detail modal
type TradeDetail struct {
	ID           int64  `json:"tradeId"`
	PostTitle    string `json:"postTitle"`
	PostCategory string `json:"postCategory"`
	Price        int64  `json:"price"`
	Status       string `json:"status"`
	SellerEmail  string `json:"sellerEmail"`
	BuyerEmail   string `json:"buyerEmail"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// ListTrades fetches one page of the trade listing
func (c *Client) ListTrades(ctx context.Context, page, size int) (TradePage, error) {
	query := map[string]string{
		"page": strconv.Itoa(page),
		"size": strconv.Itoa(size),
	}

	var pd pageData
	if err := c.do(ctx, http.MethodGet, "/api/trades", query, nil, &pd); err != nil {
		return TradePage{}, fmt.Errorf("ListTrades failed: %w", err)
	}

	result := TradePage{
		PageNumber:    pd.PageNumber,
		TotalPages:    pd.TotalPages,
		TotalElements: pd.TotalElements,
	}
	if len(pd.Content) > 0 {
		if err := json.Unmarshal(pd.Content, &result.Trades); err != nil {
			return TradePage{}, fmt.Errorf("ListTrades failed: decode content: %w", err)
		}
	}

	return result, nil
}

// GetPost fetches the metadata of a single marketplace post
func (c *Client) GetPost(ctx context.Context, postID int64) (Post, error) {
	var post Post
	path := fmt.Sprintf("/api/posts/%d", postID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &post); err != nil {
		return Post{}, fmt.Errorf("GetPost %d failed: %w", postID, err)
	}
	return post, nil
}

// GetTradeDetail fetches the full detail of a single trade
func (c *Client) GetTradeDetail(ctx context.Context, tradeID int64) (TradeDetail, error) {
	var detail TradeDetail
	path := fmt.Sprintf("/api/trades/%d", tradeID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &detail); err != nil {
		return TradeDetail{}, fmt.Errorf("GetTradeDetail %d failed: %w", tradeID, err)
	}
	return detail, nil
}
