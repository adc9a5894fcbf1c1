package domain

import "time"

// Delivery fee policy, in minor currency units. Orders with a discounted
// subtotal at or above FreeDeliveryThreshold ship free.
const (
	FreeDeliveryThreshold int64 = 1000
	StandardDeliveryFee   int64 = 50
)

// Order status constants.
const (
	OrderStatusConfirmed = "confirmed"
)

// DeliveryFeeFor returns the delivery fee for the given undiscounted cart
// total. Discounts never change whether an order qualifies for free delivery.
func DeliveryFeeFor(subtotal int64) int64 {
	if subtotal >= FreeDeliveryThreshold {
		return 0
	}
	return StandardDeliveryFee
}

// QuoteItem is a priced cart line with any campaign discount applied.
type QuoteItem struct {
	ProductID       string `json:"product_id"`
	Title           string `json:"title"`
	Quantity        int    `json:"quantity"`
	UnitPrice       int64  `json:"unit_price"`
	DiscountedPrice int64  `json:"discounted_price"`
	LineTotal       int64  `json:"line_total"`
	CampaignID      string `json:"campaign_id,omitempty"`
	SpecialNote     string `json:"special_note,omitempty"`
}

// Quote is the fully priced view of a cart: per-line discounted prices, the
// discounted subtotal, the delivery fee, and the grand total.
type Quote struct {
	Items       []QuoteItem `json:"items"`
	Subtotal    int64       `json:"subtotal"`
	DeliveryFee int64       `json:"delivery_fee"`
	Total       int64       `json:"total"`
}

// Order is a confirmed checkout. Pricing fields are frozen copies of the
// quote at the moment of checkout.
type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Items       []QuoteItem `json:"items"`
	Subtotal    int64       `json:"subtotal"`
	DeliveryFee int64       `json:"delivery_fee"`
	Total       int64       `json:"total"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}
