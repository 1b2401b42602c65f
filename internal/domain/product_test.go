package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryCodePrefix(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{CategoryBreads, "B"},
		{CategoryPastries, "P"},
		{CategoryCakes, "C"},
		{CategoryCookies, "K"},
		{CategoryBeverages, "D"},
		{CategorySandwiches, "S"},
		{CategorySeasonal, "Z"},
		{CategoryOther, "O"},
		{Category("Specials"), "X"},
		{Category(""), "X"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.category.CodePrefix(), "category %q", tt.category)
	}
}
