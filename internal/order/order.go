// Package order computes checkout totals and keeps the append-only
// per-user order ledger.
package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/ojha-sweta/ShopVault/internal/cart"
)

const (
	// TaxRate is applied to every subtotal.
	TaxRate = 0.08
	// FreeShippingThreshold is the subtotal above which shipping is free.
	FreeShippingThreshold = 50.0
	// ShippingFee applies below the threshold.
	ShippingFee = 5.99
)

var (
	ErrEmptyCart        = errors.New("cart is empty, nothing to check out")
	ErrNotAuthenticated = errors.New("checkout requires a signed-in user")
	ErrStockChanged     = errors.New("cart was corrected against stock, re-confirm before checkout")
	ErrInvalidForm      = errors.New("shipping and payment details are incomplete")
)

type Status string

const StatusProcessing Status = "Processing"

// LedgerKey derives the order-history storage key for a user.
func LedgerKey(uid string) string {
	return fmt.Sprintf("orders_%s", uid)
}

type ShippingInfo struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	ZipCode  string `json:"zipCode"`
}

type PaymentInfo struct {
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv,omitempty"`
}

// Order is an immutable record of a completed purchase. Items are a value
// snapshot of the cart lines at purchase time: later cart or product
// mutation never reaches into it.
type Order struct {
	ID             string       `json:"id"`
	UserID         string       `json:"userId"`
	Items          []cart.Line  `json:"items"`
	Subtotal       float64      `json:"subtotal"`
	Tax            float64      `json:"tax"`
	Shipping       float64      `json:"shipping"`
	Total          float64      `json:"total"`
	ShippingInfo   ShippingInfo `json:"shippingInfo"`
	PaymentInfo    PaymentInfo  `json:"paymentInfo"`
	Status         Status       `json:"status"`
	Date           time.Time    `json:"date"`
	IdempotencyKey string       `json:"idempotencyKey,omitempty"`
}

// Totals breaks a subtotal into the tax/shipping/total the receipt shows.
type Totals struct {
	Subtotal float64
	Tax      float64
	Shipping float64
	Total    float64
}

func ComputeTotals(subtotal float64) Totals {
	shipping := ShippingFee
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * TaxRate
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal + tax + shipping,
	}
}

// maskCard keeps only the last four digits, the way receipts store cards.
func maskCard(number string) string {
	if len(number) <= 4 {
		return "**** **** **** " + number
	}
	return "**** **** **** " + number[len(number)-4:]
}
