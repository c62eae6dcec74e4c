package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is a wrapper around go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				e.Field(),
				e.Tag(),
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// ValidateConfig validates the entire configuration, including the
// cross-references the struct tags cannot express: recipes may only use
// declared items and output declared products.
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	if err := v.Validate(cfg); err != nil {
		return err
	}
	return validateCatalogReferences(&cfg.Catalog)
}

func validateCatalogReferences(catalog *CatalogConfig) error {
	items := make(map[string]bool, len(catalog.Materials)+len(catalog.Products))
	for _, item := range catalog.Materials {
		if items[item.Key] {
			return fmt.Errorf("duplicate item key %q", item.Key)
		}
		items[item.Key] = true
	}
	products := make(map[string]bool, len(catalog.Products))
	for _, item := range catalog.Products {
		if items[item.Key] {
			return fmt.Errorf("duplicate item key %q", item.Key)
		}
		items[item.Key] = true
		products[item.Key] = true
	}

	for _, machineType := range catalog.MachineTypes {
		for _, recipe := range machineType.Recipes {
			for input := range recipe.Inputs {
				if !items[input] {
					return fmt.Errorf("recipe %q on %q uses undeclared item %q",
						recipe.Key, machineType.Key, input)
				}
			}
			if !products[recipe.Output] {
				return fmt.Errorf("recipe %q on %q outputs undeclared product %q",
					recipe.Key, machineType.Key, recipe.Output)
			}
		}
	}
	return nil
}
