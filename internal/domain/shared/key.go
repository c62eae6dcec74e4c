package shared

import "fmt"

// ItemKey is the stable identifier of a tradeable item (material or product).
// Display names are presentation data and are never used to key live logic.
type ItemKey string

// NewItemKey validates and returns an ItemKey
func NewItemKey(value string) (ItemKey, error) {
	if value == "" {
		return "", fmt.Errorf("item key cannot be empty")
	}
	return ItemKey(value), nil
}

func (k ItemKey) String() string {
	return string(k)
}

// IsZero checks if the key is the zero value (uninitialized)
func (k ItemKey) IsZero() bool {
	return k == ""
}

// MachineTypeKey is the stable identifier of a machine type in the catalog
type MachineTypeKey string

func (k MachineTypeKey) String() string {
	return string(k)
}

func (k MachineTypeKey) IsZero() bool {
	return k == ""
}

// RecipeKey is the stable identifier of a recipe within a machine type
type RecipeKey string

func (k RecipeKey) String() string {
	return string(k)
}

func (k RecipeKey) IsZero() bool {
	return k == ""
}
