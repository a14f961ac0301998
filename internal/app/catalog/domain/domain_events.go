package domain

import (
	"time"

	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

// ProductCreatedEvent is emitted when a clerk registers a product.
type ProductCreatedEvent struct {
	ProductID  string    `json:"product_id"`
	Name       string    `json:"name"`
	Stock      int64     `json:"stock"`
	CategoryID string    `json:"category_id,omitempty"`
	CreatedBy  string    `json:"created_by"`
	At         time.Time `json:"at"`
}

func (e *ProductCreatedEvent) EventType() string   { return "product.created" }
func (e *ProductCreatedEvent) AggregateID() string { return e.ProductID }

// ProductUpdatedEvent is emitted when product details change.
type ProductUpdatedEvent struct {
	ProductID string    `json:"product_id"`
	Fields    []string  `json:"fields"`
	ActorID   string    `json:"actor_id"`
	At        time.Time `json:"at"`
}

func (e *ProductUpdatedEvent) EventType() string   { return "product.updated" }
func (e *ProductUpdatedEvent) AggregateID() string { return e.ProductID }

// StockAdjustedEvent is a stocking event: a clerk set the stock level.
type StockAdjustedEvent struct {
	ProductID string    `json:"product_id"`
	OldStock  int64     `json:"old_stock"`
	NewStock  int64     `json:"new_stock"`
	ActorID   string    `json:"actor_id"`
	At        time.Time `json:"at"`
}

func (e *StockAdjustedEvent) EventType() string   { return "product.stock_adjusted" }
func (e *StockAdjustedEvent) AggregateID() string { return e.ProductID }

// PriceAssignedEvent is emitted when an admin sets or clears a price.
type PriceAssignedEvent struct {
	ProductID string       `json:"product_id"`
	OldPrice  *money.Money `json:"old_price"`
	NewPrice  *money.Money `json:"new_price"`
	Visible   bool         `json:"visible"`
	ActorID   string       `json:"actor_id"`
	At        time.Time    `json:"at"`
}

func (e *PriceAssignedEvent) EventType() string   { return "product.price_assigned" }
func (e *PriceAssignedEvent) AggregateID() string { return e.ProductID }
