package shared

import (
	"fmt"
	"strings"
)

// Side identifies one of the two warehouse storage sides
type Side string

const (
	// SideMaterial is the inbound side holding purchasable raw materials
	SideMaterial Side = "MATERIAL"

	// SideProduct is the outbound side holding manufactured products
	SideProduct Side = "PRODUCT"
)

// ParseSide parses a string into a Side, case-insensitively
func ParseSide(s string) (Side, error) {
	side := Side(strings.ToUpper(s))
	if !side.IsValid() {
		return "", fmt.Errorf("invalid warehouse side: %s", s)
	}
	return side, nil
}

func (s Side) String() string {
	return string(s)
}

// IsValid checks if the side is one of the two known sides
func (s Side) IsValid() bool {
	return s == SideMaterial || s == SideProduct
}
