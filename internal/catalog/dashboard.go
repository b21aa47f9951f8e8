package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/shopspring/decimal"
)

type CategoryCount struct {
	Category models.Category `json:"category"`
	Count    int             `json:"count"`
}

// Dashboard summarizes the remote catalog for the admin view.
type Dashboard struct {
	TotalProducts    int             `json:"totalProducts"`
	OutOfStockCount  int             `json:"outOfStockCount"`
	UnavailableCount int             `json:"unavailableCount"`
	StockValue       decimal.Decimal `json:"stockValue"`
	Categories       []CategoryCount `json:"categories"`
}

func (c *Catalog) Dashboard(ctx context.Context) (Dashboard, error) {
	products, err := c.remote.List(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return Summarize(products), nil
}

// Summarize computes the dashboard of products. Categories are ordered by
// count, then name.
func Summarize(products []models.Product) Dashboard {
	d := Dashboard{TotalProducts: len(products), StockValue: decimal.Zero, Categories: []CategoryCount{}}
	counts := map[models.Category]int{}
	for _, p := range products {
		if p.StockQuantity <= 0 {
			d.OutOfStockCount++
		}
		if !models.Available(p) {
			d.UnavailableCount++
		}
		if p.StockQuantity > 0 {
			d.StockValue = d.StockValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.StockQuantity))))
		}
		counts[p.Category]++
	}
	for category, n := range counts {
		d.Categories = append(d.Categories, CategoryCount{Category: category, Count: n})
	}
	sort.Slice(d.Categories, func(i, j int) bool {
		if d.Categories[i].Count != d.Categories[j].Count {
			return d.Categories[i].Count > d.Categories[j].Count
		}
		return d.Categories[i].Category < d.Categories[j].Category
	})
	return d
}
