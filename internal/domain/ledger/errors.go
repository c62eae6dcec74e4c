package ledger

import "fmt"

// ErrInvalidTransaction reports a transaction that violates a field-level rule
type ErrInvalidTransaction struct {
	Field  string
	Reason string
}

func (e *ErrInvalidTransaction) Error() string {
	return fmt.Sprintf("invalid transaction: %s: %s", e.Field, e.Reason)
}

// ErrBalanceInvariantViolation reports a transaction whose balances do not
// reconcile with its amount
type ErrBalanceInvariantViolation struct {
	BalanceBefore int
	Amount        int
	BalanceAfter  int
	Expected      int
}

func (e *ErrBalanceInvariantViolation) Error() string {
	return fmt.Sprintf("balance invariant violation: %d + %d = %d, got %d",
		e.BalanceBefore, e.Amount, e.Expected, e.BalanceAfter)
}
