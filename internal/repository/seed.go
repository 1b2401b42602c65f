package repository

import (
	"context"
	"fmt"

	"github.com/YuktaSaindane/bakery-pos-fullstack/internal/domain"
)

type seedProduct struct {
	name     string
	price    float64
	category domain.Category
	stockQty int
	imageURL string
}

var seedCatalog = []seedProduct{
	{"Artisan Sourdough Bread", 6.50, domain.CategoryBreads, 12, "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=400&h=300&fit=crop&auto=format"},
	{"Fresh Baguette", 3.25, domain.CategoryBreads, 20, "https://images.unsplash.com/photo-1549931319-a545dcf3bc73?w=400&h=300&fit=crop&auto=format"},
	{"Chocolate Croissant", 4.25, domain.CategoryPastries, 15, "https://images.unsplash.com/photo-1530610476181-d83430b64dcd?w=400&h=300&fit=crop&auto=format"},
	{"Apple Turnover", 3.75, domain.CategoryPastries, 10, "https://images.unsplash.com/photo-1571115177098-24ec42ed204d?w=400&h=300&fit=crop&auto=format"},
	{"Red Velvet Cake Slice", 5.50, domain.CategoryCakes, 8, "https://images.unsplash.com/photo-1621303837174-89787a7d4729?w=400&h=300&fit=crop&auto=format"},
	{"Chocolate Cake Slice", 5.25, domain.CategoryCakes, 6, "https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=400&h=300&fit=crop&auto=format"},
	{"Double Chocolate Brownies", 3.50, domain.CategoryCookies, 18, "https://images.unsplash.com/photo-1558961363-fa8fdf82db35?w=400&h=300&fit=crop&auto=format"},
	{"Oatmeal Raisin Cookies", 2.75, domain.CategoryCookies, 25, "https://images.unsplash.com/photo-1499636136210-6f4ee915583e?w=400&h=300&fit=crop&auto=format"},
	{"Cappuccino", 4.50, domain.CategoryBeverages, 30, "https://images.unsplash.com/photo-1572442388796-11668a67e53d?w=400&h=300&fit=crop&auto=format"},
	{"Latte", 4.75, domain.CategoryBeverages, 30, "https://images.unsplash.com/photo-1541167760496-1628856ab772?w=400&h=300&fit=crop&auto=format"},
	{"Hot Chocolate", 3.50, domain.CategoryBeverages, 20, "https://images.unsplash.com/photo-1517701550927-30cf4ba1dba5?w=400&h=300&fit=crop&auto=format"},
	{"Club Sandwich", 8.50, domain.CategorySandwiches, 12, "https://images.unsplash.com/photo-1567234669003-dce7a7a88821?w=400&h=300&fit=crop&auto=format"},
	{"Grilled Panini", 7.25, domain.CategorySandwiches, 10, "https://images.unsplash.com/photo-1539252554453-80ab65ce3586?w=400&h=300&fit=crop&auto=format"},
	{"Cinnamon Roll", 3.50, domain.CategorySeasonal, 14, "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=400&h=300&fit=crop&auto=format"},
	{"Gingerbread Cookie", 2.50, domain.CategorySeasonal, 20, "https://images.unsplash.com/photo-1481391319762-47dff72954d9?w=400&h=300&fit=crop&auto=format"},
}

// SeedProducts inserts the starter bakery catalog, but only when the
// products table is empty. Returns the number of products inserted.
func (r *Repository) SeedProducts(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for _, sp := range seedCatalog {
		url := sp.imageURL
		_, err := r.CreateProduct(ctx, NewProduct{
			Name:     sp.name,
			Price:    sp.price,
			Category: sp.category,
			StockQty: sp.stockQty,
			ImageURL: &url,
			IsActive: true,
		})
		if err != nil {
			return 0, fmt.Errorf("seed product %q: %w", sp.name, err)
		}
	}
	return len(seedCatalog), nil
}
