package domain

import "github.com/light-bringer/backoffice-service/internal/pkg/apperr"

// Domain errors as sentinel values
var (
	ErrInvalidRequest    = apperr.New(apperr.ErrInvalidArgument, "invalid request")
	ErrInvalidQuantity   = apperr.New(apperr.ErrInvalidArgument, "quantity must be at least 1")
	ErrInsufficientStock = apperr.New(apperr.ErrFailedPrecondition, "insufficient stock")
	ErrEmptyCart         = apperr.New(apperr.ErrFailedPrecondition, "cart is empty")
	ErrProductUnpriced   = apperr.New(apperr.ErrFailedPrecondition, "product has no price")

	ErrProductNotFound  = apperr.New(apperr.ErrNotFound, "product not found")
	ErrCartNotFound     = apperr.New(apperr.ErrNotFound, "cart not found")
	ErrCartItemNotFound = apperr.New(apperr.ErrNotFound, "cart item not found")
)
