package trade_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patentmarket/admin-gateway/internal/core/trade"
)

func TestCategoryLabel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"product code", "PRODUCT", "물건"},
		{"method code", "METHOD", "방법"},
		{"usage code", "USAGE", "용도"},
		{"design code", "DESIGN", "디자인"},
		{"trademark code", "TRADEMARK", "상표"},
		{"copyright code", "COPYRIGHT", "저작권"},
		{"empty maps to other", "", "기타"},
		{"unknown maps to other", "SOMETHING_NEW", "기타"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trade.CategoryLabel(tt.in))
		})
	}
}

func TestCategoryLabel_Idempotent(t *testing.T) {
	// Applying the mapping twice must equal applying it once, including for
	// values that are already display labels.
	inputs := []string{"PRODUCT", "METHOD", "물건", "기타", "", "카테고리 없음", "garbage"}
	for _, in := range inputs {
		once := trade.CategoryLabel(in)
		assert.Equal(t, once, trade.CategoryLabel(once), "input %q", in)
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "요청", trade.StatusLabel(trade.StatusRequest))
	assert.Equal(t, "수락", trade.StatusLabel(trade.StatusAccept))
	assert.Equal(t, "취소", trade.StatusLabel(trade.StatusCanceled))
	assert.Equal(t, "완료", trade.StatusLabel(trade.StatusCompleted))
}

func TestStatusLabel_UnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "ESCROW", trade.StatusLabel("ESCROW"))
	assert.Equal(t, "", trade.StatusLabel(""))
}
