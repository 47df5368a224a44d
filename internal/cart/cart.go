// Package cart holds the shopping cart state machine. Every mutation is a
// pure function from one Cart value to the next; totals are derived on read.
package cart

import (
	"strings"

	"github.com/01moynul/suburbia-storefront/internal/models"
)

// Cart is an ordered list of line items. The zero value is an empty cart.
type Cart struct {
	Items []models.CartItem `json:"items"`
}

// ItemID derives the line id for a board configuration. Identical
// configurations always map to the same id.
func ItemID(sel models.Selection) string {
	return strings.Join([]string{sel.Wheel.UID, sel.Deck.UID, sel.Truck.UID, sel.Bolt.UID}, "-")
}

// Add puts one unit of the selected configuration into the cart, bumping the
// quantity of an existing line instead of adding a duplicate row.
func (c Cart) Add(sel models.Selection) Cart {
	id := ItemID(sel)
	items := c.clone()
	for i := range items {
		if items[i].ID == id {
			items[i].Quantity++
			return Cart{Items: items}
		}
	}
	items = append(items, models.CartItem{
		ID:       id,
		Wheel:    sel.Wheel,
		Deck:     sel.Deck,
		Truck:    sel.Truck,
		Bolt:     sel.Bolt,
		Quantity: 1,
		Price:    sel.Price,
	})
	return Cart{Items: items}
}

// Remove drops the line with the given id. Unknown ids are a no-op.
func (c Cart) Remove(id string) Cart {
	items := make([]models.CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	return Cart{Items: items}
}

// UpdateQuantity sets the quantity of a line; n <= 0 removes it.
func (c Cart) UpdateQuantity(id string, n int) Cart {
	if n <= 0 {
		return c.Remove(id)
	}
	items := c.clone()
	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = n
		}
	}
	return Cart{Items: items}
}

// Clear empties the cart.
func (c Cart) Clear() Cart {
	return Cart{Items: []models.CartItem{}}
}

func (c Cart) TotalItems() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

func (c Cart) TotalPrice() float64 {
	total := 0.0
	for _, it := range c.Items {
		total += it.LineTotal()
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Find returns the line with the given id.
func (c Cart) Find(id string) (models.CartItem, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return models.CartItem{}, false
}

func (c Cart) clone() []models.CartItem {
	items := make([]models.CartItem, len(c.Items), len(c.Items)+1)
	copy(items, c.Items)
	return items
}
