package player

import (
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// Purse is the player's single money balance. Debits fail when the balance
// cannot cover them, except charges (maintenance), which apply
// unconditionally: debt is a permitted state, not an error.
type Purse struct {
	balance int
}

// NewPurse creates a purse with the given starting balance
func NewPurse(balance int) *Purse {
	return &Purse{balance: balance}
}

// Balance returns the current balance (may be negative)
func (p *Purse) Balance() int {
	return p.balance
}

// CanAfford checks if the balance covers an amount
func (p *Purse) CanAfford(amount int) bool {
	return p.balance >= amount
}

// Debit removes amount from the balance, failing without mutation when the
// balance cannot cover it
func (p *Purse) Debit(amount int) error {
	if amount < 0 {
		return shared.NewValidationError("amount", "debit amount cannot be negative")
	}
	if p.balance < amount {
		return shared.NewInsufficientFundsError(amount, p.balance)
	}
	p.balance -= amount
	return nil
}

// Credit adds amount to the balance
func (p *Purse) Credit(amount int) error {
	if amount < 0 {
		return shared.NewValidationError("amount", "credit amount cannot be negative")
	}
	p.balance += amount
	return nil
}

// Charge removes amount unconditionally; the balance may go negative
func (p *Purse) Charge(amount int) error {
	if amount < 0 {
		return shared.NewValidationError("amount", "charge amount cannot be negative")
	}
	p.balance -= amount
	return nil
}
