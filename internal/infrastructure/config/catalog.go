package config

// CatalogConfig declares the traded items and the machine types with their
// recipes. The whole catalog is data: new items, machines and recipes are a
// config change, not a code change.
type CatalogConfig struct {
	Materials    []ItemConfig        `mapstructure:"materials" validate:"dive"`
	Products     []ItemConfig        `mapstructure:"products" validate:"dive"`
	MachineTypes []MachineTypeConfig `mapstructure:"machine_types" validate:"dive"`
}

// ItemConfig declares one traded item and its base market price
type ItemConfig struct {
	Key       string `mapstructure:"key" validate:"required"`
	Name      string `mapstructure:"name" validate:"required"`
	BasePrice int    `mapstructure:"base_price" validate:"min=1"`
}

// MachineTypeConfig declares one purchasable machine type
type MachineTypeConfig struct {
	Key     string         `mapstructure:"key" validate:"required"`
	Name    string         `mapstructure:"name" validate:"required"`
	Cost    int            `mapstructure:"cost" validate:"min=1"`
	Recipes []RecipeConfig `mapstructure:"recipes" validate:"required,dive"`
}

// RecipeConfig declares one recipe a machine type can run. Inputs map item
// keys to required quantities; the recipe key doubles as its identifier
// within the machine type.
type RecipeConfig struct {
	Key       string         `mapstructure:"key" validate:"required"`
	Name      string         `mapstructure:"name" validate:"required"`
	Inputs    map[string]int `mapstructure:"inputs" validate:"required"`
	Output    string         `mapstructure:"output" validate:"required"`
	OutputQty int            `mapstructure:"output_qty" validate:"min=1"`
	Duration  int            `mapstructure:"duration" validate:"min=1"`
}
