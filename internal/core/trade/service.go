package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/patentmarket/admin-gateway/internal/infra/gateway/marketapi"
	"github.com/patentmarket/admin-gateway/pkg/logger"
)

// listPageSize is the page size used when draining the backend's trade
// listing. The admin table shows the whole collection, so the service
// follows the backend's pages until they run out.
const listPageSize = 50

// Gateway is the slice of the marketplace API the trade service consumes
type Gateway interface {
	ListTrades(ctx context.Context, page, size int) (marketapi.TradePage, error)
	GetPost(ctx context.Context, postID int64) (marketapi.Post, error)
	GetTradeDetail(ctx context.Context, tradeID int64) (marketapi.TradeDetail, error)
}

// Service fetches and enriches the admin trade collection
type Service struct {
	gateway  Gateway
	enricher *Enricher
	logger   *logger.Logger
}

// NewService creates a new trade service
func NewService(gateway Gateway, log *logger.Logger) *Service {
	return &Service{
		gateway:  gateway,
		enricher: NewEnricher(gateway, log),
		logger:   log.WithField("component", "trade_service"),
	}
}

// List fetches every page of the trade listing and enriches each record
// with its post metadata. The returned order is the backend's order.
func (s *Service) List(ctx context.Context) ([]EnrichedTrade, error) {
	started := time.Now()

	var trades []Trade
	for page := 0; ; page++ {
		tp, err := s.gateway.ListTrades(ctx, page, listPageSize)
		if err != nil {
			return nil, fmt.Errorf("list trades page %d: %w", page, err)
		}

		for _, t := range tp.Trades {
			trades = append(trades, fromAPI(t))
		}

		if len(tp.Trades) == 0 || page+1 >= tp.TotalPages {
			break
		}
	}

	enriched := s.enricher.Enrich(ctx, trades)

	s.logger.Info("trade list fetched",
		"count", len(enriched),
		"duration_ms", time.Since(started).Milliseconds())
	return enriched, nil
}

// Detail fetches the full detail of one trade
func (s *Service) Detail(ctx context.Context, tradeID int64) (TradeDetail, error) {
	detail, err := s.gateway.GetTradeDetail(ctx, tradeID)
	if err != nil {
		return TradeDetail{}, err
	}
	return detailFromAPI(detail), nil
}
