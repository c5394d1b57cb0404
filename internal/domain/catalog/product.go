// Package catalog models the drink catalog: base products, composable addon
// decorators and the recipe parser that assembles them.
package catalog

import (
	"github.com/xenking/cafepos/internal/domain/money"
)

// Product is a priced item with identity. ID and BasePrice always refer to
// the innermost base product regardless of decoration; Price and Name reflect
// the full decoration.
type Product interface {
	ID() string
	Name() string
	BasePrice() money.Money
	Price() money.Money
}

type baseProduct struct {
	id    string
	name  string
	price money.Money
}

// NewBase creates an undecorated base product.
func NewBase(id, name string, price money.Money) Product {
	return baseProduct{id: id, name: name, price: price}
}

func (p baseProduct) ID() string             { return p.id }
func (p baseProduct) Name() string           { return p.name }
func (p baseProduct) BasePrice() money.Money { return p.price }
func (p baseProduct) Price() money.Money     { return p.price }
