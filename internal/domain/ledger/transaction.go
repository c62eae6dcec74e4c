package ledger

import (
	"fmt"
)

// Transaction is an immutable record of one purse mutation. Every money
// movement in the simulation (trades, machine deals, expansions, maintenance)
// produces exactly one transaction.
type Transaction struct {
	id              TransactionID
	tick            int
	day             int
	transactionType TransactionType
	category        Category
	amount          int // Positive for income, negative for expenses
	balanceBefore   int
	balanceAfter    int
	description     string
	relatedKey      string // item, machine type, or side the money moved for
	quantity        int    // units involved, 0 when not applicable
}

// NewTransaction creates a new transaction with validation
func NewTransaction(
	tick int,
	day int,
	transactionType TransactionType,
	amount int,
	balanceBefore int,
	balanceAfter int,
	description string,
	relatedKey string,
	quantity int,
) (*Transaction, error) {
	if !transactionType.IsValid() {
		return nil, &ErrInvalidTransaction{
			Field:  "transaction_type",
			Reason: fmt.Sprintf("invalid transaction type: %s", transactionType),
		}
	}

	category, err := transactionType.ToCategory()
	if err != nil {
		return nil, &ErrInvalidTransaction{Field: "category", Reason: err.Error()}
	}

	t := &Transaction{
		id:              NewTransactionID(),
		tick:            tick,
		day:             day,
		transactionType: transactionType,
		category:        category,
		amount:          amount,
		balanceBefore:   balanceBefore,
		balanceAfter:    balanceAfter,
		description:     description,
		relatedKey:      relatedKey,
		quantity:        quantity,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ReconstructTransaction restores a transaction from persistence, bypassing
// ID generation
func ReconstructTransaction(
	id TransactionID,
	tick int,
	day int,
	transactionType TransactionType,
	category Category,
	amount int,
	balanceBefore int,
	balanceAfter int,
	description string,
	relatedKey string,
	quantity int,
) *Transaction {
	return &Transaction{
		id:              id,
		tick:            tick,
		day:             day,
		transactionType: transactionType,
		category:        category,
		amount:          amount,
		balanceBefore:   balanceBefore,
		balanceAfter:    balanceAfter,
		description:     description,
		relatedKey:      relatedKey,
		quantity:        quantity,
	}
}

// Validate checks that the transaction satisfies all invariants
func (t *Transaction) Validate() error {
	if t.amount == 0 {
		return &ErrInvalidTransaction{Field: "amount", Reason: "amount cannot be zero"}
	}

	// balance_after must equal balance_before + amount
	expected := t.balanceBefore + t.amount
	if t.balanceAfter != expected {
		return &ErrBalanceInvariantViolation{
			BalanceBefore: t.balanceBefore,
			Amount:        t.amount,
			BalanceAfter:  t.balanceAfter,
			Expected:      expected,
		}
	}

	if t.tick < 0 {
		return &ErrInvalidTransaction{Field: "tick", Reason: "tick cannot be negative"}
	}
	if t.day < 1 {
		return &ErrInvalidTransaction{Field: "day", Reason: "day starts at 1"}
	}
	return nil
}

// Getters (all fields are immutable)

func (t *Transaction) ID() TransactionID {
	return t.id
}

func (t *Transaction) Tick() int {
	return t.tick
}

func (t *Transaction) Day() int {
	return t.day
}

func (t *Transaction) TransactionType() TransactionType {
	return t.transactionType
}

func (t *Transaction) Category() Category {
	return t.category
}

func (t *Transaction) Amount() int {
	return t.amount
}

func (t *Transaction) BalanceBefore() int {
	return t.balanceBefore
}

func (t *Transaction) BalanceAfter() int {
	return t.balanceAfter
}

func (t *Transaction) Description() string {
	return t.description
}

func (t *Transaction) RelatedKey() string {
	return t.relatedKey
}

func (t *Transaction) Quantity() int {
	return t.quantity
}

// IsIncome returns true if the transaction represents income
func (t *Transaction) IsIncome() bool {
	return t.amount > 0
}

// IsExpense returns true if the transaction represents an expense
func (t *Transaction) IsExpense() bool {
	return t.amount < 0
}

func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction[%s, type=%s, amount=%d, balance=%d->%d]",
		t.id.String(), t.transactionType, t.amount, t.balanceBefore, t.balanceAfter)
}
