package trade

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// SortKey selects the field the trade table is ordered by
type SortKey string

const (
	SortByID           SortKey = "id"
	SortByPrice        SortKey = "price"
	SortByCreatedAt    SortKey = "createdAt"
	SortByPostTitle    SortKey = "postTitle"
	SortByPostCategory SortKey = "postCategory"
)

// SortDir is the sort direction
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// ViewState is the ephemeral filter/sort configuration of the admin trade
// table. It lives only in the client's query parameters and has no
// server-side counterpart.
type ViewState struct {
	Search  string
	Status  string // StatusAll or a status wire value
	SortKey SortKey
	SortDir SortDir
}

// DefaultViewState returns the table's initial configuration
func DefaultViewState() ViewState {
	return ViewState{
		Status:  StatusAll,
		SortKey: SortByCreatedAt,
		SortDir: SortDesc,
	}
}

// DeriveView computes the displayed sequence from the enriched collection
// and the view state. It is a pure function: no side effects, no network
// calls, full recomputation on every call. The input slice is never
// modified. Equal sort keys keep no particular order; callers must not
// depend on tie order.
func DeriveView(records []EnrichedTrade, vs ViewState) []EnrichedTrade {
	filtered := make([]EnrichedTrade, 0, len(records))
	for _, r := range records {
		if matchesFilter(r, vs) {
			filtered = append(filtered, r)
		}
	}

	sortTrades(filtered, vs.SortKey, vs.SortDir)
	return filtered
}

// matchesFilter applies the table's combined predicate: the status filter
// must match AND the search term must appear, case-sensitively, in at least
// one of {id, post title, post category, price}. An empty term always
// passes.
func matchesFilter(r EnrichedTrade, vs ViewState) bool {
	if vs.Status != "" && vs.Status != StatusAll && r.Status != vs.Status {
		return false
	}

	if vs.Search == "" {
		return true
	}

	fields := []string{
		strconv.FormatInt(r.ID, 10),
		r.PostTitle,
		r.PostCategory,
		strconv.FormatInt(r.Price, 10),
	}
	for _, f := range fields {
		if strings.Contains(f, vs.Search) {
			return true
		}
	}
	return false
}

func sortTrades(items []EnrichedTrade, key SortKey, dir SortDir) {
	if len(items) < 2 {
		return
	}

	less := lessFunc(key)
	sort.Slice(items, func(i, j int) bool {
		if dir == SortDesc {
			i, j = j, i
		}
		return less(items[i], items[j])
	})
}

func lessFunc(key SortKey) func(a, b EnrichedTrade) bool {
	switch key {
	case SortByPrice:
		return func(a, b EnrichedTrade) bool { return a.Price < b.Price }
	case SortByCreatedAt:
		return createdAtBefore
	case SortByPostTitle:
		return func(a, b EnrichedTrade) bool { return a.PostTitle < b.PostTitle }
	case SortByPostCategory:
		return func(a, b EnrichedTrade) bool { return a.PostCategory < b.PostCategory }
	default:
		return func(a, b EnrichedTrade) bool { return a.ID < b.ID }
	}
}

// createdAtBefore compares creation timestamps. Unparseable values fall
// back to lexicographic comparison, which matches chronological order for
// the backend's uniform ISO-8601 strings anyway.
func createdAtBefore(a, b EnrichedTrade) bool {
	ta, errA := time.Parse(time.RFC3339, a.CreatedAt)
	tb, errB := time.Parse(time.RFC3339, b.CreatedAt)
	if errA != nil || errB != nil {
		return a.CreatedAt < b.CreatedAt
	}
	return ta.Before(tb)
}
