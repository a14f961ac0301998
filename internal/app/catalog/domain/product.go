package domain

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/light-bringer/backoffice-service/internal/pkg/changes"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
)

// Field names for change tracking
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldStock       = "stock"
	FieldCategory    = "category"
	FieldExpiresOn   = "expires_on"
	FieldPrice       = "price"
)

const maxNameLength = 100

var maxPrice = money.MustNew(9999999999, 100)

// Product is the aggregate root for catalog management. Warehouse clerks
// own its description and stock; admins own its price. A product is
// visible to customers exactly when it has a price.
type Product struct {
	id          string
	name        string
	description string
	price       *money.Money
	stock       int64
	categoryID  string
	expiresOn   *civil.Date
	version     int64
	createdBy   string
	updatedBy   string
	createdAt   time.Time
	updatedAt   time.Time

	changes *changes.Tracker
	events  []outbox.Event
}

// NewProduct creates an unpriced, invisible product. categoryID may be
// empty; otherwise the caller has checked that it names a leaf category.
func NewProduct(id, name, description string, stock int64, categoryID string, expiresOn *civil.Date, actorID string, now time.Time) (*Product, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	if stock < 1 {
		return nil, ErrInitialStock
	}

	p := &Product{
		id:          id,
		name:        name,
		description: strings.TrimSpace(description),
		stock:       stock,
		categoryID:  categoryID,
		expiresOn:   copyDate(expiresOn),
		createdBy:   actorID,
		updatedBy:   actorID,
		createdAt:   now,
		updatedAt:   now,
		changes:     changes.NewTracker(),
	}

	p.events = append(p.events, &ProductCreatedEvent{
		ProductID:  id,
		Name:       p.name,
		Stock:      stock,
		CategoryID: categoryID,
		CreatedBy:  actorID,
		At:         now,
	})
	return p, nil
}

// ReconstructProduct rebuilds a stored product.
func ReconstructProduct(
	id, name, description string,
	price *money.Money,
	stock int64,
	categoryID string,
	expiresOn *civil.Date,
	version int64,
	createdBy, updatedBy string,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:          id,
		name:        name,
		description: description,
		price:       price,
		stock:       stock,
		categoryID:  categoryID,
		expiresOn:   expiresOn,
		version:     version,
		createdBy:   createdBy,
		updatedBy:   updatedBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		changes:     changes.NewTracker(),
	}
}

func (p *Product) ID() string                   { return p.id }
func (p *Product) Name() string                 { return p.name }
func (p *Product) Description() string          { return p.description }
func (p *Product) Price() *money.Money          { return p.price.Copy() }
func (p *Product) Stock() int64                 { return p.stock }
func (p *Product) CategoryID() string           { return p.categoryID }
func (p *Product) ExpiresOn() *civil.Date       { return copyDate(p.expiresOn) }
func (p *Product) Visible() bool                { return p.price != nil }
func (p *Product) Version() int64               { return p.version }
func (p *Product) CreatedBy() string            { return p.createdBy }
func (p *Product) UpdatedBy() string            { return p.updatedBy }
func (p *Product) CreatedAt() time.Time         { return p.createdAt }
func (p *Product) UpdatedAt() time.Time         { return p.updatedAt }
func (p *Product) Changes() *changes.Tracker    { return p.changes }
func (p *Product) DomainEvents() []outbox.Event { return p.events }

// Details is a partial edit by a warehouse clerk. Nil fields are unchanged.
type Details struct {
	Name        *string
	Description *string
	Stock       *int64
	CategoryID  *string
	ExpiresOn   *civil.Date
	ClearExpiry bool
}

// Edit applies d. A stock change is recorded as a stocking event.
func (p *Product) Edit(d Details, actorID string, now time.Time) error {
	if d.Name != nil {
		name, err := validateName(*d.Name)
		if err != nil {
			return err
		}
		if name != p.name {
			p.name = name
			p.changes.MarkDirty(FieldName)
		}
	}

	if d.Description != nil {
		if desc := strings.TrimSpace(*d.Description); desc != p.description {
			p.description = desc
			p.changes.MarkDirty(FieldDescription)
		}
	}

	if d.Stock != nil {
		if *d.Stock < 0 {
			return ErrInvalidStock
		}
		if *d.Stock != p.stock {
			p.events = append(p.events, &StockAdjustedEvent{
				ProductID: p.id,
				OldStock:  p.stock,
				NewStock:  *d.Stock,
				ActorID:   actorID,
				At:        now,
			})
			p.stock = *d.Stock
			p.changes.MarkDirty(FieldStock)
		}
	}

	if d.CategoryID != nil && *d.CategoryID != p.categoryID {
		p.categoryID = *d.CategoryID
		p.changes.MarkDirty(FieldCategory)
	}

	switch {
	case d.ClearExpiry && p.expiresOn != nil:
		p.expiresOn = nil
		p.changes.MarkDirty(FieldExpiresOn)
	case d.ExpiresOn != nil && (p.expiresOn == nil || *p.expiresOn != *d.ExpiresOn):
		p.expiresOn = copyDate(d.ExpiresOn)
		p.changes.MarkDirty(FieldExpiresOn)
	}

	if p.changes.HasChanges() {
		p.touch(actorID, now)
		p.events = append(p.events, &ProductUpdatedEvent{
			ProductID: p.id,
			Fields:    p.changes.DirtyFields(),
			ActorID:   actorID,
			At:        now,
		})
	}
	return nil
}

// PriceChange records one price assignment.
type PriceChange struct {
	ProductID string
	OldPrice  *money.Money
	NewPrice  *money.Money
	ChangedBy string
	ChangedAt time.Time
}

// AssignPrice sets the price, or clears it when price is nil. Setting a
// price makes the product visible; clearing it hides the product. It
// returns nil when the price is unchanged.
func (p *Product) AssignPrice(price *money.Money, actorID string, now time.Time) (*PriceChange, error) {
	if price != nil {
		if !price.IsPositive() || !price.HasCents() {
			return nil, ErrInvalidPrice
		}
		if price.Cmp(maxPrice) > 0 {
			return nil, ErrPriceTooLarge
		}
	}
	if p.price.Equals(price) {
		return nil, nil
	}

	change := &PriceChange{
		ProductID: p.id,
		OldPrice:  p.price.Copy(),
		NewPrice:  price.Copy(),
		ChangedBy: actorID,
		ChangedAt: now,
	}

	p.price = price.Copy()
	p.changes.MarkDirty(FieldPrice)
	p.touch(actorID, now)
	p.events = append(p.events, &PriceAssignedEvent{
		ProductID: p.id,
		OldPrice:  change.OldPrice,
		NewPrice:  change.NewPrice,
		Visible:   p.Visible(),
		ActorID:   actorID,
		At:        now,
	})
	return change, nil
}

func (p *Product) touch(actorID string, now time.Time) {
	p.updatedBy = actorID
	p.updatedAt = now
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if len([]rune(name)) > maxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

func copyDate(d *civil.Date) *civil.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
