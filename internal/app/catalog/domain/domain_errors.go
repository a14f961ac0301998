package domain

import "github.com/light-bringer/backoffice-service/internal/pkg/apperr"

// Domain errors as sentinel values
var (
	ErrEmptyName        = apperr.New(apperr.ErrInvalidArgument, "product name cannot be empty")
	ErrNameTooLong      = apperr.New(apperr.ErrInvalidArgument, "product name is longer than 100 characters")
	ErrInvalidStock     = apperr.New(apperr.ErrInvalidArgument, "stock cannot be negative")
	ErrInitialStock     = apperr.New(apperr.ErrInvalidArgument, "a new product needs at least 1 unit in stock")
	ErrInvalidPrice     = apperr.New(apperr.ErrInvalidArgument, "price must be positive with at most two decimals")
	ErrPriceTooLarge    = apperr.New(apperr.ErrInvalidArgument, "price exceeds 99999999.99")
	ErrCategoryNotLeaf  = apperr.New(apperr.ErrInvalidArgument, "products can only be filed under a subcategory")
	ErrProductNotFound  = apperr.New(apperr.ErrNotFound, "product not found")
	ErrCategoryNotFound = apperr.New(apperr.ErrNotFound, "category not found")
	ErrProductModified  = apperr.New(apperr.ErrConflict, "product was modified by someone else, reload and retry")
)
