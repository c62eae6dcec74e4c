package ledger

import "fmt"

// Category represents the cash flow category for financial reporting
type Category string

const (
	// CategoryMaterialCosts represents expenses from buying raw materials
	CategoryMaterialCosts Category = "MATERIAL_COSTS"

	// CategoryProductRevenue represents income from selling products
	CategoryProductRevenue Category = "PRODUCT_REVENUE"

	// CategoryEquipmentInvestments represents machine purchases and expansions
	CategoryEquipmentInvestments Category = "EQUIPMENT_INVESTMENTS"

	// CategoryEquipmentResale represents income from selling machines back
	CategoryEquipmentResale Category = "EQUIPMENT_RESALE"

	// CategoryFacilityCosts represents recurring maintenance charges
	CategoryFacilityCosts Category = "FACILITY_COSTS"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryMaterialCosts,
		CategoryProductRevenue,
		CategoryEquipmentInvestments,
		CategoryEquipmentResale,
		CategoryFacilityCosts,
	}
}

var typeToCategory = map[TransactionType]Category{
	TransactionTypePurchaseMaterial: CategoryMaterialCosts,
	TransactionTypeSellProduct:      CategoryProductRevenue,
	TransactionTypePurchaseMachine:  CategoryEquipmentInvestments,
	TransactionTypeExpandWarehouse:  CategoryEquipmentInvestments,
	TransactionTypeExpandHall:       CategoryEquipmentInvestments,
	TransactionTypeSellMachine:      CategoryEquipmentResale,
	TransactionTypeMaintenance:      CategoryFacilityCosts,
}

func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryMaterialCosts,
		CategoryProductRevenue,
		CategoryEquipmentInvestments,
		CategoryEquipmentResale,
		CategoryFacilityCosts:
		return true
	default:
		return false
	}
}

// IsIncome returns true if the category represents income
func (c Category) IsIncome() bool {
	switch c {
	case CategoryProductRevenue, CategoryEquipmentResale:
		return true
	default:
		return false
	}
}

// IsExpense returns true if the category represents an expense or investment
func (c Category) IsExpense() bool {
	return !c.IsIncome()
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
