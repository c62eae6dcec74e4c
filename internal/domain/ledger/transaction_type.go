package ledger

import "fmt"

// TransactionType represents the type of financial transaction
type TransactionType string

const (
	// TransactionTypePurchaseMaterial represents buying raw materials on the market
	TransactionTypePurchaseMaterial TransactionType = "PURCHASE_MATERIAL"

	// TransactionTypeSellProduct represents selling finished products on the market
	TransactionTypeSellProduct TransactionType = "SELL_PRODUCT"

	// TransactionTypePurchaseMachine represents buying a machine for the hall
	TransactionTypePurchaseMachine TransactionType = "PURCHASE_MACHINE"

	// TransactionTypeSellMachine represents selling a machine back at the sellback rate
	TransactionTypeSellMachine TransactionType = "SELL_MACHINE"

	// TransactionTypeExpandWarehouse represents paying for warehouse capacity
	TransactionTypeExpandWarehouse TransactionType = "EXPAND_WAREHOUSE"

	// TransactionTypeExpandHall represents paying for production hall slots
	TransactionTypeExpandHall TransactionType = "EXPAND_HALL"

	// TransactionTypeMaintenance represents the daily per-slot maintenance charge
	TransactionTypeMaintenance TransactionType = "MAINTENANCE"
)

// AllTransactionTypes returns all valid transaction types
func AllTransactionTypes() []TransactionType {
	return []TransactionType{
		TransactionTypePurchaseMaterial,
		TransactionTypeSellProduct,
		TransactionTypePurchaseMachine,
		TransactionTypeSellMachine,
		TransactionTypeExpandWarehouse,
		TransactionTypeExpandHall,
		TransactionTypeMaintenance,
	}
}

func (t TransactionType) String() string {
	return string(t)
}

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypePurchaseMaterial,
		TransactionTypeSellProduct,
		TransactionTypePurchaseMachine,
		TransactionTypeSellMachine,
		TransactionTypeExpandWarehouse,
		TransactionTypeExpandHall,
		TransactionTypeMaintenance:
		return true
	default:
		return false
	}
}

// ToCategory maps the transaction type to its reporting category
func (t TransactionType) ToCategory() (Category, error) {
	category, ok := typeToCategory[t]
	if !ok {
		return "", fmt.Errorf("no category mapping for transaction type: %s", t)
	}
	return category, nil
}

// ParseTransactionType parses a string into a TransactionType
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %s", s)
	}
	return t, nil
}
