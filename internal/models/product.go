package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The remote product service reads prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a product record owned by the remote product service.
type Product struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	Brand            string          `json:"brand"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Category         Category        `json:"category"`
	StockQuantity    int             `json:"stockQuantity"`
	ReleaseDate      Date            `json:"releaseDate"`
	ProductAvailable bool            `json:"productAvailable"`
	ImageName        string          `json:"imageName,omitempty"`
	ImageType        string          `json:"imageType,omitempty"`
}

// Available reports whether p can be purchased. Neither the availability
// flag nor the stock count is authoritative alone.
func Available(p Product) bool {
	return p.ProductAvailable && p.StockQuantity > 0
}

const dateLayout = "2006-01-02"

// Date is a calendar date encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate returns the date for the given year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD. Longer timestamps are truncated to their date part.
func ParseDate(s string) (Date, error) {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
