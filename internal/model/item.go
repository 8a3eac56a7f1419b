package model

// MenuItem represents one entry in the static menu catalogue.
// Items are immutable; the catalogue assigns ids once and never changes them.
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"` // formatted "$D.DD"
	Icon        string   `json:"icon"`
	Description string   `json:"description,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Calories    string   `json:"calories,omitempty"`
}

// CartLine is one (item, quantity) pairing in the cart. The cart never holds
// two lines with the same item id.
type CartLine struct {
	MenuItem
	Quantity int `json:"quantity"`
}

// FavoriteEntry is a snapshot of a menu item marked as favourite.
type FavoriteEntry struct {
	MenuItem
}
