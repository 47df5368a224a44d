package models

// Component is one customizer choice (a wheel, deck, truck or bolt option).
// Only UID takes part in cart identity; the rest is display data.
type Component struct {
	UID     string `json:"uid" bson:"uid" binding:"required"`
	Name    string `json:"name,omitempty" bson:"name,omitempty"`
	Texture string `json:"texture,omitempty" bson:"texture,omitempty"`
	Color   string `json:"color,omitempty" bson:"color,omitempty"`
}

// Selection is what the board builder hands to "add to cart".
type Selection struct {
	Wheel Component `json:"wheel" binding:"required"`
	Deck  Component `json:"deck" binding:"required"`
	Truck Component `json:"truck" binding:"required"`
	Bolt  Component `json:"bolt" binding:"required"`
	Price float64   `json:"price" binding:"gt=0"`
}

// CartItem is one line of the cart. ID is derived from the four component UIDs.
type CartItem struct {
	ID       string    `json:"id" bson:"id"`
	Wheel    Component `json:"wheel" bson:"wheel"`
	Deck     Component `json:"deck" bson:"deck"`
	Truck    Component `json:"truck" bson:"truck"`
	Bolt     Component `json:"bolt" bson:"bolt"`
	Quantity int       `json:"quantity" bson:"quantity"`
	Price    float64   `json:"price" bson:"price"`
}

// LineTotal is price x quantity for this line.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}
