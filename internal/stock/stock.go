package stock

import "fmt"

// Item is one tracked product in the stock registry. Untracked products are
// treated as unlimited and in stock by the lookup path.
type Item struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	InStock  bool   `json:"inStock"`
	Quantity int    `json:"quantity"`
}

// NewItem validates invariants at construction so malformed admin input or
// corrupted storage content fails fast instead of leaking into the cart.
func NewItem(id int, title string, inStock bool, quantity int) (Item, error) {
	if id <= 0 {
		return Item{}, fmt.Errorf("stock item: invalid id %d", id)
	}
	if quantity < 0 {
		return Item{}, fmt.Errorf("stock item %d: negative quantity %d", id, quantity)
	}
	return Item{ID: id, Title: title, InStock: inStock, Quantity: quantity}, nil
}

func (i Item) validate() error {
	_, err := NewItem(i.ID, i.Title, i.InStock, i.Quantity)
	return err
}

// Availability is the read-only fact the checkout flow consumes.
type Availability struct {
	InStock  bool `json:"inStock"`
	Quantity int  `json:"quantity"`
}
