package domain

import (
	"fmt"

	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

// Product is the ledger's view of a catalog product: the part of the row
// that reservations read and write.
type Product struct {
	id      string
	name    string
	price   *money.Money
	stock   int64
	visible bool
	version int64

	stockChanged bool
}

// ReconstructProduct rebuilds a Product from storage. price is nil when unpriced.
func ReconstructProduct(id, name string, price *money.Money, stock int64, visible bool, version int64) *Product {
	return &Product{
		id:      id,
		name:    name,
		price:   price,
		stock:   stock,
		visible: visible,
		version: version,
	}
}

func (p *Product) ID() string          { return p.id }
func (p *Product) Name() string        { return p.name }
func (p *Product) Stock() int64        { return p.stock }
func (p *Product) Version() int64      { return p.version }
func (p *Product) StockChanged() bool  { return p.stockChanged }
func (p *Product) Price() *money.Money { return p.price.Copy() }

// Purchasable reports whether customers can put the product in a cart.
func (p *Product) Purchasable() bool {
	return p.visible && p.price != nil
}

// Reserve takes qty units out of stock.
func (p *Product) Reserve(qty int64) error {
	if qty > p.stock {
		return fmt.Errorf("%w: %s has %d available, %d requested", ErrInsufficientStock, p.name, p.stock, qty)
	}
	p.stock -= qty
	p.touch()
	return nil
}

// Release returns qty units to stock.
func (p *Product) Release(qty int64) {
	p.stock += qty
	p.touch()
}

// touch bumps the version once per loaded instance so concurrent catalog
// edits holding the old version are rejected.
func (p *Product) touch() {
	if !p.stockChanged {
		p.version++
		p.stockChanged = true
	}
}
