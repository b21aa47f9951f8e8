package mockapi

import (
	"time"

	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// pixelPNG is a 1x1 transparent PNG.
var pixelPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// Seed fills repo with a small demo catalog.
func Seed(repo *InMemoryProductRepository) {
	products := []models.Product{
		{Name: "ZenBook 14", Brand: "Asus", Description: "Thin and light laptop", Price: decimal.RequireFromString("1099.99"), Category: models.CategoryLaptop, StockQuantity: 5, ReleaseDate: models.NewDate(2024, time.March, 1), ProductAvailable: true, ImageName: "zenbook.png"},
		{Name: "WH-1000XM5", Brand: "Sony", Description: "Noise cancelling headphones", Price: decimal.RequireFromString("349.00"), Category: models.CategoryHeadphone, StockQuantity: 12, ReleaseDate: models.NewDate(2023, time.May, 12), ProductAvailable: true, ImageName: "xm5.png"},
		{Name: "Pixel 9", Brand: "Google", Description: "Android phone", Price: decimal.RequireFromString("799.00"), Category: models.CategoryMobile, StockQuantity: 0, ReleaseDate: models.NewDate(2024, time.August, 22), ProductAvailable: true, ImageName: "pixel9.png"},
		{Name: "Building Blocks", Brand: "Lego", Description: "Classic brick box", Price: decimal.RequireFromString("49.90"), Category: models.CategoryToys, StockQuantity: 30, ReleaseDate: models.NewDate(2022, time.November, 3), ProductAvailable: false, ImageName: "blocks.png"},
	}
	for _, p := range products {
		repo.Create(p, "image/png", pixelPNG)
	}
}
