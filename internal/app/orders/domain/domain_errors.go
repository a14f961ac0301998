package domain

import "github.com/light-bringer/backoffice-service/internal/pkg/apperr"

// Domain errors as sentinel values
var (
	ErrInvalidRequest    = apperr.New(apperr.ErrInvalidArgument, "invalid request")
	ErrUnsupportedFormat = apperr.New(apperr.ErrInvalidArgument, "export format must be csv or xlsx")
	ErrOrderNotFound     = apperr.New(apperr.ErrNotFound, "order not found")
)
