package trade

import (
	"context"
	"sync"

	"github.com/patentmarket/admin-gateway/internal/infra/gateway/marketapi"
	"github.com/patentmarket/admin-gateway/pkg/logger"
)

// PostReader fetches post metadata for enrichment
type PostReader interface {
	GetPost(ctx context.Context, postID int64) (marketapi.Post, error)
}

// Enricher resolves post metadata for trade batches
type Enricher struct {
	posts  PostReader
	logger *logger.Logger
}

// NewEnricher creates a new enricher
func NewEnricher(posts PostReader, log *logger.Logger) *Enricher {
	return &Enricher{
		posts:  posts,
		logger: log.WithField("component", "enricher"),
	}
}

// Enrich fetches post metadata for every trade in the batch. All lookups
// start at once and the call returns only after every one has settled. A
// failed lookup degrades that single row to the fallback labels; it never
// fails the batch and is never retried. Output order matches input order.
func (e *Enricher) Enrich(ctx context.Context, trades []Trade) []EnrichedTrade {
	out := make([]EnrichedTrade, len(trades))

	var wg sync.WaitGroup
	for i, t := range trades {
		out[i].Trade = t

		wg.Add(1)
		go func(i int, t Trade) {
			defer wg.Done()

			post, err := e.posts.GetPost(ctx, t.PostID)
			if err != nil {
				e.logger.Warn("post lookup failed, using fallback labels",
					"trade_id", t.ID,
					"post_id", t.PostID,
					"error", err)
				out[i].PostTitle = FallbackTitle
				out[i].PostCategory = FallbackCategory
				return
			}

			out[i].PostTitle = post.Title
			out[i].PostCategory = CategoryLabel(post.Category)
		}(i, t)
	}
	wg.Wait()

	return out
}
