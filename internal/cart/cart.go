package cart

import (
	"errors"
	"fmt"
)

var (
	// ErrMaxAvailable is raised when adding one more of a tracked product
	// would take the cart line past the on-hand quantity.
	ErrMaxAvailable = errors.New("maximum available quantity reached")

	// ErrInsufficientStock is raised when an explicit quantity update asks
	// for more than the registry has on hand.
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrItemNotFound = errors.New("item not found in cart")
)

// Item is one cart line. ID is unique within the collection and Quantity is
// always at least 1; a line whose quantity drops to zero is removed.
type Item struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	InStock  bool    `json:"inStock"`
}

func NewItem(id int, name, image string, price float64, quantity int, inStock bool) (Item, error) {
	if id <= 0 {
		return Item{}, fmt.Errorf("cart item: invalid id %d", id)
	}
	if price < 0 {
		return Item{}, fmt.Errorf("cart item %d: negative price %.2f", id, price)
	}
	if quantity < 1 {
		return Item{}, fmt.Errorf("cart item %d: quantity %d below 1", id, quantity)
	}
	return Item{ID: id, Name: name, Image: image, Price: price, Quantity: quantity, InStock: inStock}, nil
}

func (i Item) validate() error {
	_, err := NewItem(i.ID, i.Name, i.Image, i.Price, i.Quantity, i.InStock)
	return err
}

// Product is the catalog-side input to AddItem.
type Product struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Image string  `json:"image"`
	Price float64 `json:"price"`
}
