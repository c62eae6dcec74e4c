package production

import (
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// Inventory is the warehouse surface the scheduler needs: combined-stock
// checks, atomic input consumption, and output deposits. The scheduler never
// touches storage maps directly.
type Inventory interface {
	HasEnough(requirements map[shared.ItemKey]int) bool
	Consume(requirements map[shared.ItemKey]int) error
	AvailableSpace(side shared.Side) int
	AddProduct(key shared.ItemKey, qty int) int
}
