package ledger

// ProfitLoss summarizes income versus expenses over a set of transactions
type ProfitLoss struct {
	Income   int
	Expenses int // negative
	Net      int
}

// Book is the in-memory, append-only transaction log
type Book struct {
	transactions []*Transaction
}

// NewBook creates an empty book
func NewBook() *Book {
	return &Book{}
}

// ReconstructBook restores a book from persisted transactions
func ReconstructBook(transactions []*Transaction) *Book {
	book := NewBook()
	book.transactions = make([]*Transaction, len(transactions))
	copy(book.transactions, transactions)
	return book
}

// Append records a transaction
func (b *Book) Append(t *Transaction) {
	b.transactions = append(b.transactions, t)
}

// All returns every transaction in recording order
func (b *Book) All() []*Transaction {
	transactions := make([]*Transaction, len(b.transactions))
	copy(transactions, b.transactions)
	return transactions
}

// Len returns the number of recorded transactions
func (b *Book) Len() int {
	return len(b.transactions)
}

// ByCategory returns transactions matching the given category, in order
func (b *Book) ByCategory(category Category) []*Transaction {
	var matched []*Transaction
	for _, t := range b.transactions {
		if t.Category() == category {
			matched = append(matched, t)
		}
	}
	return matched
}

// ProfitLoss aggregates income and expenses across the whole book
func (b *Book) ProfitLoss() ProfitLoss {
	var report ProfitLoss
	for _, t := range b.transactions {
		if t.IsIncome() {
			report.Income += t.Amount()
		} else {
			report.Expenses += t.Amount()
		}
	}
	report.Net = report.Income + report.Expenses
	return report
}

// CashFlowByCategory aggregates signed amounts per category
func (b *Book) CashFlowByCategory() map[Category]int {
	flow := make(map[Category]int)
	for _, t := range b.transactions {
		flow[t.Category()] += t.Amount()
	}
	return flow
}
