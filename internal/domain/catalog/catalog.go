package catalog

import (
	"fmt"

	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// Catalog is the read-only mapping from machine type to the recipes it can
// run. It is built once from configuration at startup and never mutated.
type Catalog struct {
	types []MachineType
	byKey map[shared.MachineTypeKey]MachineType
	items map[shared.ItemKey]bool
}

// NewCatalog creates a catalog with validation. The known item keys are used
// to reject recipes referencing items that do not exist; a bad catalog aborts
// initialization.
func NewCatalog(types []MachineType, knownItems []shared.ItemKey) (*Catalog, error) {
	items := make(map[shared.ItemKey]bool, len(knownItems))
	for _, key := range knownItems {
		items[key] = true
	}

	byKey := make(map[shared.MachineTypeKey]MachineType, len(types))
	for _, machineType := range types {
		if _, exists := byKey[machineType.Key()]; exists {
			return nil, shared.NewValidationError("machine_types", fmt.Sprintf("duplicate machine type %s", machineType.Key()))
		}
		for _, recipe := range machineType.Recipes() {
			for item := range recipe.Inputs() {
				if !items[item] {
					return nil, shared.NewValidationError("recipes",
						fmt.Sprintf("recipe %s on %s requires unknown item %s", recipe.Key(), machineType.Key(), item))
				}
			}
			if !items[recipe.Output()] {
				return nil, shared.NewValidationError("recipes",
					fmt.Sprintf("recipe %s on %s outputs unknown item %s", recipe.Key(), machineType.Key(), recipe.Output()))
			}
		}
		byKey[machineType.Key()] = machineType
	}

	typesCopy := make([]MachineType, len(types))
	copy(typesCopy, types)

	return &Catalog{types: typesCopy, byKey: byKey, items: items}, nil
}

// MachineTypes returns all machine types in catalog order
func (c *Catalog) MachineTypes() []MachineType {
	types := make([]MachineType, len(c.types))
	copy(types, c.types)
	return types
}

// MachineType returns the machine type with the given key
func (c *Catalog) MachineType(key shared.MachineTypeKey) (MachineType, error) {
	machineType, ok := c.byKey[key]
	if !ok {
		return MachineType{}, shared.NewNotFoundError("machine type", key.String())
	}
	return machineType, nil
}

// HasMachineType checks if the catalog contains the given machine type
func (c *Catalog) HasMachineType(key shared.MachineTypeKey) bool {
	_, ok := c.byKey[key]
	return ok
}

// Recipes returns the ordered recipe list of a machine type
func (c *Catalog) Recipes(typeKey shared.MachineTypeKey) ([]Recipe, error) {
	machineType, err := c.MachineType(typeKey)
	if err != nil {
		return nil, err
	}
	return machineType.Recipes(), nil
}

// Recipe returns one recipe of a machine type by key
func (c *Catalog) Recipe(typeKey shared.MachineTypeKey, recipeKey shared.RecipeKey) (Recipe, error) {
	machineType, err := c.MachineType(typeKey)
	if err != nil {
		return Recipe{}, err
	}
	return machineType.FindRecipe(recipeKey)
}
