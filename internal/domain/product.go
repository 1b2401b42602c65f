package domain

import "time"

// Category is the fixed set of bakery product categories.
type Category string

const (
	CategoryBreads     Category = "Breads"
	CategoryPastries   Category = "Pastries"
	CategoryCakes      Category = "Cakes"
	CategoryCookies    Category = "Cookies"
	CategoryBeverages  Category = "Beverages"
	CategorySandwiches Category = "Sandwiches"
	CategorySeasonal   Category = "Seasonal"
	CategoryOther      Category = "Other"
)

var categoryPrefixes = map[Category]string{
	CategoryBreads:     "B",
	CategoryPastries:   "P",
	CategoryCakes:      "C",
	CategoryCookies:    "K",
	CategoryBeverages:  "D", // D for drinks
	CategorySandwiches: "S",
	CategorySeasonal:   "Z",
	CategoryOther:      "O",
}

// CodePrefix returns the single-letter SKU prefix for the category.
// Unknown categories map to "X".
func (c Category) CodePrefix() string {
	if p, ok := categoryPrefixes[c]; ok {
		return p
	}
	return "X"
}

// Product is a catalog entry. Stock is mutated by stock adjustments and by
// checkout; products are normally retired by flipping IsActive rather than
// deleted.
type Product struct {
	ID          int64
	ProductCode string
	Name        string
	Price       float64
	Category    Category
	StockQty    int
	ImageURL    *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
