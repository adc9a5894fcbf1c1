package domain

import "time"

// Cart item quantity bounds.
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// Cart represents a shopper's cart. Version increments on every save and is
// used for optimistic concurrency control.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem represents a single line in the cart. Price is the unit price in
// minor currency units captured at the time the item was added.
type CartItem struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	Title       string `json:"title"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	SpecialNote string `json:"special_note,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// TotalAmount calculates the total price of all items in the cart in minor
// currency units, before discounts and delivery fee.
func (c *Cart) TotalAmount() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// ItemCount returns the total quantity across all cart lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItemIndex returns the index of the cart line for the given product, or
// -1 if the product is not in the cart.
func (c *Cart) FindItemIndex(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// FindItemByID returns the index of the cart line with the given item ID, or
// -1 if no such line exists.
func (c *Cart) FindItemByID(itemID string) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}
