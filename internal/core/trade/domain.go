package trade

import "github.com/patentmarket/admin-gateway/internal/infra/gateway/marketapi"

// Trade status wire values. Values outside this set are kept untouched and
// displayed as-is.
const (
	StatusRequest   = "REQUEST"
	StatusAccept    = "ACCEPT"
	StatusCanceled  = "CANCELED"
	StatusCompleted = "COMPLETED"
)

// StatusAll is the ViewState filter value that matches every status.
const StatusAll = "ALL"

// Fallback labels applied when a per-trade post lookup fails.
const (
	FallbackTitle    = "제목 없음"
	FallbackCategory = "카테고리 없음"
)

// CategoryOther is the display label for an empty or unknown category.
const CategoryOther = "기타"

// Trade is an immutable trade record fetched from the backend. It is never
// mutated locally; the admin table only ever derives projections from it.
type Trade struct {
	ID        int64
	PostID    int64
	SellerID  int64
	BuyerID   int64
	Price     int64
	Status    string
	CreatedAt string // ISO-8601, as the backend returned it
}

// EnrichedTrade is a Trade augmented with the post metadata the table
// displays. Recomputed whenever the trade list is fetched; never persisted.
type EnrichedTrade struct {
	Trade
	PostTitle    string
	PostCategory string
}

// TradeDetail is the full per-trade view shown in the detail modal
type TradeDetail struct {
	ID           int64
	PostTitle    string
	PostCategory string
	Price        int64
	Status       string
	SellerEmail  string
	BuyerEmail   string
	CreatedAt    string
	UpdatedAt    string
}

// categoryLabels maps backend category codes to display labels
var categoryLabels = map[string]string{
	"PRODUCT":   "물건",
	"METHOD":    "방법",
	"USAGE":     "용도",
	"DESIGN":    "디자인",
	"TRADEMARK": "상표",
	"COPYRIGHT": "저작권",
}

// localizedCategories is the set of labels CategoryLabel can produce,
// used to keep the mapping idempotent.
var localizedCategories = func() map[string]bool {
	set := map[string]bool{CategoryOther: true, FallbackCategory: true}
	for _, label := range categoryLabels {
		set[label] = true
	}
	return set
}()

// CategoryLabel maps a backend category code to its display label. Values
// that are already display labels pass through unchanged, so applying the
// mapping twice equals applying it once. Empty or unknown values map to
// CategoryOther.
func CategoryLabel(raw string) string {
	if raw == "" {
		return CategoryOther
	}
	if label, ok := categoryLabels[raw]; ok {
		return label
	}
	if localizedCategories[raw] {
		return raw
	}
	return CategoryOther
}

// statusLabels maps status wire values to display labels
var statusLabels = map[string]string{
	StatusRequest:   "요청",
	StatusAccept:    "수락",
	StatusCanceled:  "취소",
	StatusCompleted: "완료",
}

// StatusLabel maps a status wire value to its display label. Unrecognized
// values are displayed as-is rather than treated as an error.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// fromAPI converts a backend trade record into the domain type
func fromAPI(t marketapi.Trade) Trade {
	return Trade{
		ID:        t.ID,
		PostID:    t.PostID,
		SellerID:  t.SellerID,
		BuyerID:   t.BuyerID,
		Price:     t.Price,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
	}
}

// detailFromAPI converts a backend trade detail into the domain type,
// normalizing the category to its display label.
func detailFromAPI(d marketapi.TradeDetail) TradeDetail {
	return TradeDetail{
		ID:           d.ID,
		PostTitle:    d.PostTitle,
		PostCategory: CategoryLabel(d.PostCategory),
		Price:        d.Price,
		Status:       d.Status,
		SellerEmail:  d.SellerEmail,
		BuyerEmail:   d.BuyerEmail,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
