package catalog

import (
	"fmt"

	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// Recipe is an immutable conversion: input quantities consumed, one output
// batch produced after a fixed number of ticks. A recipe belongs to exactly
// one machine type.
type Recipe struct {
	key         shared.RecipeKey
	displayName string
	inputs      map[shared.ItemKey]int
	output      shared.ItemKey
	outputQty   int
	duration    int
}

// NewRecipe creates a recipe with validation
func NewRecipe(key shared.RecipeKey, displayName string, inputs map[shared.ItemKey]int, output shared.ItemKey, outputQty, duration int) (Recipe, error) {
	if key.IsZero() {
		return Recipe{}, shared.NewValidationError("key", "recipe key cannot be empty")
	}
	if len(inputs) == 0 {
		return Recipe{}, shared.NewValidationError("inputs", fmt.Sprintf("recipe %s has no inputs", key))
	}
	for item, qty := range inputs {
		if item.IsZero() {
			return Recipe{}, shared.NewValidationError("inputs", fmt.Sprintf("recipe %s has an empty input key", key))
		}
		if qty <= 0 {
			return Recipe{}, shared.NewValidationError("inputs", fmt.Sprintf("recipe %s input %s must be positive", key, item))
		}
	}
	if output.IsZero() {
		return Recipe{}, shared.NewValidationError("output", fmt.Sprintf("recipe %s has no output", key))
	}
	if outputQty <= 0 {
		return Recipe{}, shared.NewValidationError("output_quantity", fmt.Sprintf("recipe %s output quantity must be positive", key))
	}
	if duration <= 0 {
		return Recipe{}, shared.NewValidationError("duration", fmt.Sprintf("recipe %s duration must be positive", key))
	}

	inputsCopy := make(map[shared.ItemKey]int, len(inputs))
	for item, qty := range inputs {
		inputsCopy[item] = qty
	}

	if displayName == "" {
		displayName = key.String()
	}

	return Recipe{
		key:         key,
		displayName: displayName,
		inputs:      inputsCopy,
		output:      output,
		outputQty:   outputQty,
		duration:    duration,
	}, nil
}

func (r Recipe) Key() shared.RecipeKey {
	return r.key
}

func (r Recipe) DisplayName() string {
	return r.displayName
}

// Inputs returns a copy of the input requirements
func (r Recipe) Inputs() map[shared.ItemKey]int {
	inputs := make(map[shared.ItemKey]int, len(r.inputs))
	for item, qty := range r.inputs {
		inputs[item] = qty
	}
	return inputs
}

func (r Recipe) Output() shared.ItemKey {
	return r.output
}

func (r Recipe) OutputQuantity() int {
	return r.outputQty
}

// Duration returns the production time in ticks
func (r Recipe) Duration() int {
	return r.duration
}

// IsZero checks if this is the zero-value recipe
func (r Recipe) IsZero() bool {
	return r.key.IsZero()
}

func (r Recipe) String() string {
	return fmt.Sprintf("Recipe[%s -> %dx %s in %d ticks]", r.key, r.outputQty, r.output, r.duration)
}
