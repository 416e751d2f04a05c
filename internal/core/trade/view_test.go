package trade_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patentmarket/admin-gateway/internal/core/trade"
)

func sampleTrades() []trade.EnrichedTrade {
	return []trade.EnrichedTrade{
		{
			Trade:        trade.Trade{ID: 1, Price: 300, Status: trade.StatusRequest, CreatedAt: "2026-01-01T00:00:00Z"},
			PostTitle:    "냉장고 특허",
			PostCategory: "물건",
		},
		{
			Trade:        trade.Trade{ID: 2, Price: 100, Status: trade.StatusAccept, CreatedAt: "2026-01-03T00:00:00Z"},
			PostTitle:    "제조 방법",
			PostCategory: "방법",
		},
		{
			Trade:        trade.Trade{ID: 3, Price: 200, Status: trade.StatusAccept, CreatedAt: "2026-01-02T00:00:00Z"},
			PostTitle:    "상표 디자인",
			PostCategory: "상표",
		},
	}
}

func ids(view []trade.EnrichedTrade) []int64 {
	out := make([]int64, len(view))
	for i, v := range view {
		out[i] = v.ID
	}
	return out
}

func TestDeriveView_DefaultState(t *testing.T) {
	// Default: all statuses, newest first
	view := trade.DeriveView(sampleTrades(), trade.DefaultViewState())
	assert.Equal(t, []int64{2, 3, 1}, ids(view))
}

func TestDeriveView_DoesNotMutateInput(t *testing.T) {
	records := sampleTrades()
	vs := trade.ViewState{Status: trade.StatusAll, SortKey: trade.SortByPrice, SortDir: trade.SortAsc}

	_ = trade.DeriveView(records, vs)
	assert.Equal(t, []int64{1, 2, 3}, ids(records))
}

func TestDeriveView_StatusFilter(t *testing.T) {
	vs := trade.DefaultViewState()
	vs.Status = trade.StatusAccept

	view := trade.DeriveView(sampleTrades(), vs)
	require.Len(t, view, 2)
	for _, v := range view {
		assert.Equal(t, trade.StatusAccept, v.Status)
	}
}

func TestDeriveView_SearchMatchesAnyField(t *testing.T) {
	records := sampleTrades()

	tests := []struct {
		name   string
		search string
		want   []int64
	}{
		{"matches title", "냉장고", []int64{1}},
		{"matches category", "방법", []int64{2}},
		{"matches price substring", "30", []int64{1}},
		{"matches id", "3", []int64{1, 3}}, // price 300 and id 3
		{"no match", "존재하지않음", nil},
		{"empty matches everything", "", []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := trade.ViewState{Status: trade.StatusAll, Search: tt.search, SortKey: trade.SortByID, SortDir: trade.SortAsc}
			view := trade.DeriveView(records, vs)
			if tt.want == nil {
				assert.Empty(t, view)
				return
			}
			assert.Equal(t, tt.want, ids(view))
		})
	}
}

func TestDeriveView_SearchIsCaseSensitive(t *testing.T) {
	records := []trade.EnrichedTrade{
		{Trade: trade.Trade{ID: 1}, PostTitle: "Patent One"},
	}

	vs := trade.ViewState{Status: trade.StatusAll, Search: "patent", SortKey: trade.SortByID, SortDir: trade.SortAsc}
	assert.Empty(t, trade.DeriveView(records, vs))

	vs.Search = "Patent"
	assert.Len(t, trade.DeriveView(records, vs), 1)
}

func TestDeriveView_PriceSort(t *testing.T) {
	records := sampleTrades() // prices 300, 100, 200

	vs := trade.ViewState{Status: trade.StatusAll, SortKey: trade.SortByPrice, SortDir: trade.SortAsc}
	assert.Equal(t, []int64{2, 3, 1}, ids(trade.DeriveView(records, vs)))

	vs.SortDir = trade.SortDesc
	assert.Equal(t, []int64{1, 3, 2}, ids(trade.DeriveView(records, vs)))
}

func TestDeriveView_FilterThenSort(t *testing.T) {
	vs := trade.ViewState{
		Status:  trade.StatusAccept,
		SortKey: trade.SortByPrice,
		SortDir: trade.SortAsc,
	}

	view := trade.DeriveView(sampleTrades(), vs)
	assert.Equal(t, []int64{2, 3}, ids(view))
}

func TestDeriveView_FilterIsPure(t *testing.T) {
	records := sampleTrades()
	vs := trade.ViewState{Status: trade.StatusAccept, Search: "방법", SortKey: trade.SortByID, SortDir: trade.SortAsc}

	first := trade.DeriveView(records, vs)
	second := trade.DeriveView(records, vs)
	assert.Equal(t, first, second)
}
