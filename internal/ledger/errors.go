package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when input does not satisfy the product or sale rules.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound is returned when a product with the given ID does not exist.
	ErrNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned when a sale asks for more than is in stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
