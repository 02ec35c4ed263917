package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShippingAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Item is a purchase-time snapshot. Price is copied from the request when the
// order is placed and never follows later product price changes.
type Item struct {
	ProductID    string          `json:"productId"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	ProductName  string          `json:"productName,omitempty"`
	CategoryName string          `json:"categoryName,omitempty"`
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Status          Status          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Notes           string          `json:"notes,omitempty"`
	Items           []Item          `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
}
