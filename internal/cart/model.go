package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is a pending-purchase quantity for one product, joined with the
// product fields the storefront needs for display.
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Cart is the server's view of a user's cart: all lines plus the derived
// item count.
type Cart struct {
	Items     []Line `json:"items"`
	ItemCount int    `json:"itemCount"`
}

func NewCart(lines []Line) Cart {
	if lines == nil {
		lines = []Line{}
	}
	c := Cart{Items: lines}
	for _, l := range lines {
		c.ItemCount += l.Quantity
	}
	return c
}
