package production

import (
	"fmt"

	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// HallFullError reports a machine purchase with no free slot
type HallFullError struct {
	*shared.DomainError
	Capacity int
}

func NewHallFullError(capacity int) *HallFullError {
	return &HallFullError{
		DomainError: shared.NewDomainError(fmt.Sprintf("production hall is at maximum capacity (%d)", capacity)),
		Capacity:    capacity,
	}
}

// MachineBusyError reports an operation that requires an Idle machine
type MachineBusyError struct {
	*shared.DomainError
	MachineID int
}

func NewMachineBusyError(machineID int) *MachineBusyError {
	return &MachineBusyError{
		DomainError: shared.NewDomainError(fmt.Sprintf("machine #%d is working", machineID)),
		MachineID:   machineID,
	}
}

// NoOutputSpaceError reports a production start or completion blocked by a
// full product side
type NoOutputSpaceError struct {
	*shared.DomainError
	Required  int
	Available int
}

func NewNoOutputSpaceError(required, available int) *NoOutputSpaceError {
	return &NoOutputSpaceError{
		DomainError: shared.NewDomainError(
			fmt.Sprintf("not enough output space: need %d, have %d", required, available)),
		Required:  required,
		Available: available,
	}
}
