package cart

import "time"

// Customization links a configured ring's halves to a cart line.
type Customization struct {
	SettingID     string `json:"settingId"`
	Metal         string `json:"metal"`
	Size          string `json:"size"`
	StoneID       string `json:"stoneId"`
	StoneCategory string `json:"stoneCategory"`
}

// Item is one cart line. UnitPrice is already resolved: the sale price wins
// over the list price when one is set.
type Item struct {
	LineID        string         `json:"lineId"`
	ProductID     string         `json:"productId"`
	Title         string         `json:"title"`
	SKU           string         `json:"sku,omitempty"`
	UnitPrice     int            `json:"unitPrice"`
	Quantity      int            `json:"quantity"`
	ImageURL      string         `json:"imageUrl,omitempty"`
	ProductType   string         `json:"productType"`
	Customization *Customization `json:"customization,omitempty"`
}

// Cart is the full redis-backed session cart.
type Cart struct {
	ID        string    `json:"id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Subtotal returns the sum of line totals in cents.
func (c *Cart) Subtotal() int {
	total := 0
	for _, item := range c.Items {
		total += item.UnitPrice * item.Quantity
	}
	return total
}

func (c *Cart) findLine(lineID string) (int, bool) {
	for i := range c.Items {
		if c.Items[i].LineID == lineID {
			return i, true
		}
	}
	return 0, false
}
