package warehouse

import (
	"fmt"

	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// InsufficientMaterialsError reports a consume call that cannot be satisfied
// from the combined material and product stock
type InsufficientMaterialsError struct {
	*shared.DomainError
	Missing map[shared.ItemKey]int
}

func NewInsufficientMaterialsError(missing map[shared.ItemKey]int) *InsufficientMaterialsError {
	return &InsufficientMaterialsError{
		DomainError: shared.NewDomainError("insufficient materials for requirements"),
		Missing:     missing,
	}
}

// InsufficientStockError reports a transfer of more units than are stored
type InsufficientStockError struct {
	*shared.DomainError
	Key       shared.ItemKey
	Requested int
	Available int
}

func NewInsufficientStockError(key shared.ItemKey, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		DomainError: shared.NewDomainError(
			fmt.Sprintf("not enough %s in product storage: have %d, need %d", key, available, requested)),
		Key:       key,
		Requested: requested,
		Available: available,
	}
}

// NoSpaceError reports an operation that found zero free space on a side
type NoSpaceError struct {
	*shared.DomainError
	Side shared.Side
}

func NewNoSpaceError(side shared.Side) *NoSpaceError {
	return &NoSpaceError{
		DomainError: shared.NewDomainError(fmt.Sprintf("no free space on %s side", side)),
		Side:        side,
	}
}
