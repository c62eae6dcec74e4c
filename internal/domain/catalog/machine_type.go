package catalog

import (
	"fmt"

	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// MachineType is an immutable catalog entry: a purchase cost and the ordered
// set of recipes the machine can run.
type MachineType struct {
	key         shared.MachineTypeKey
	displayName string
	cost        int
	recipes     []Recipe
}

// NewMachineType creates a machine type with validation
func NewMachineType(key shared.MachineTypeKey, displayName string, cost int, recipes []Recipe) (MachineType, error) {
	if key.IsZero() {
		return MachineType{}, shared.NewValidationError("key", "machine type key cannot be empty")
	}
	if cost <= 0 {
		return MachineType{}, shared.NewValidationError("cost", fmt.Sprintf("machine type %s cost must be positive", key))
	}
	if len(recipes) == 0 {
		return MachineType{}, shared.NewValidationError("recipes", fmt.Sprintf("machine type %s has no recipes", key))
	}

	seen := make(map[shared.RecipeKey]bool, len(recipes))
	for _, recipe := range recipes {
		if seen[recipe.Key()] {
			return MachineType{}, shared.NewValidationError("recipes", fmt.Sprintf("machine type %s has duplicate recipe %s", key, recipe.Key()))
		}
		seen[recipe.Key()] = true
	}

	recipesCopy := make([]Recipe, len(recipes))
	copy(recipesCopy, recipes)

	if displayName == "" {
		displayName = key.String()
	}

	return MachineType{
		key:         key,
		displayName: displayName,
		cost:        cost,
		recipes:     recipesCopy,
	}, nil
}

func (t MachineType) Key() shared.MachineTypeKey {
	return t.key
}

func (t MachineType) DisplayName() string {
	return t.displayName
}

func (t MachineType) Cost() int {
	return t.cost
}

// Recipes returns the machine type's recipes in catalog order
func (t MachineType) Recipes() []Recipe {
	recipes := make([]Recipe, len(t.recipes))
	copy(recipes, t.recipes)
	return recipes
}

// FindRecipe returns the recipe with the given key, or an error when the
// machine type cannot run it
func (t MachineType) FindRecipe(key shared.RecipeKey) (Recipe, error) {
	for _, recipe := range t.recipes {
		if recipe.Key() == key {
			return recipe, nil
		}
	}
	return Recipe{}, shared.NewNotFoundError("recipe", fmt.Sprintf("%s on machine type %s", key, t.key))
}

// IsZero checks if this is the zero-value machine type
func (t MachineType) IsZero() bool {
	return t.key.IsZero()
}
