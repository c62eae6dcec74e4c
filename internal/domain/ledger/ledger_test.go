package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factorysim-go/internal/domain/ledger"
)

func mustTransaction(t *testing.T, txType ledger.TransactionType, amount, before int) *ledger.Transaction {
	t.Helper()
	tx, err := ledger.NewTransaction(10, 1, txType, amount, before, before+amount, "test", "", 0)
	require.NoError(t, err)
	return tx
}

func TestNewTransaction_MapsTypeToCategory(t *testing.T) {
	tx := mustTransaction(t, ledger.TransactionTypeSellProduct, 45, 100)

	assert.Equal(t, ledger.CategoryProductRevenue, tx.Category())
	assert.True(t, tx.IsIncome())
	assert.Equal(t, 145, tx.BalanceAfter())
}

func TestNewTransaction_BalanceInvariant(t *testing.T) {
	_, err := ledger.NewTransaction(10, 1, ledger.TransactionTypeSellProduct,
		45, 100, 999, "test", "", 0)

	var invariantErr *ledger.ErrBalanceInvariantViolation
	assert.ErrorAs(t, err, &invariantErr)
}

func TestNewTransaction_Validation(t *testing.T) {
	_, err := ledger.NewTransaction(10, 1, "BRIBE", 45, 100, 145, "test", "", 0)
	assert.Error(t, err, "unknown type is rejected")

	_, err = ledger.NewTransaction(10, 1, ledger.TransactionTypeSellProduct, 0, 100, 100, "test", "", 0)
	assert.Error(t, err, "zero amounts are rejected")

	_, err = ledger.NewTransaction(-1, 1, ledger.TransactionTypeSellProduct, 45, 100, 145, "test", "", 0)
	assert.Error(t, err, "negative tick is rejected")

	_, err = ledger.NewTransaction(10, 0, ledger.TransactionTypeSellProduct, 45, 100, 145, "test", "", 0)
	assert.Error(t, err, "day starts at 1")
}

func TestTransactionType_Categories(t *testing.T) {
	// Expansions count as equipment investments alongside machine purchases
	for _, txType := range []ledger.TransactionType{
		ledger.TransactionTypePurchaseMachine,
		ledger.TransactionTypeExpandWarehouse,
		ledger.TransactionTypeExpandHall,
	} {
		category, err := txType.ToCategory()
		require.NoError(t, err)
		assert.Equal(t, ledger.CategoryEquipmentInvestments, category)
	}

	category, err := ledger.TransactionTypeMaintenance.ToCategory()
	require.NoError(t, err)
	assert.Equal(t, ledger.CategoryFacilityCosts, category)
	assert.True(t, category.IsExpense())
}

func TestBook_ProfitLoss(t *testing.T) {
	book := ledger.NewBook()
	book.Append(mustTransaction(t, ledger.TransactionTypePurchaseMaterial, -50, 1000))
	book.Append(mustTransaction(t, ledger.TransactionTypeSellProduct, 120, 950))
	book.Append(mustTransaction(t, ledger.TransactionTypeMaintenance, -25, 1070))

	pl := book.ProfitLoss()

	assert.Equal(t, 120, pl.Income)
	assert.Equal(t, -75, pl.Expenses)
	assert.Equal(t, 45, pl.Net)
}

func TestBook_ByCategoryAndCashFlow(t *testing.T) {
	book := ledger.NewBook()
	book.Append(mustTransaction(t, ledger.TransactionTypePurchaseMaterial, -50, 1000))
	book.Append(mustTransaction(t, ledger.TransactionTypePurchaseMaterial, -30, 950))
	book.Append(mustTransaction(t, ledger.TransactionTypeSellProduct, 120, 920))

	materials := book.ByCategory(ledger.CategoryMaterialCosts)
	assert.Len(t, materials, 2)

	flow := book.CashFlowByCategory()
	assert.Equal(t, -80, flow[ledger.CategoryMaterialCosts])
	assert.Equal(t, 120, flow[ledger.CategoryProductRevenue])
}

func TestBook_AllPreservesOrder(t *testing.T) {
	book := ledger.NewBook()
	first := mustTransaction(t, ledger.TransactionTypePurchaseMaterial, -50, 1000)
	second := mustTransaction(t, ledger.TransactionTypeSellProduct, 120, 950)
	book.Append(first)
	book.Append(second)

	all := book.All()

	require.Len(t, all, 2)
	assert.True(t, all[0].ID().Equals(first.ID()))
	assert.True(t, all[1].ID().Equals(second.ID()))
}

func TestTransactionID_Parse(t *testing.T) {
	id := ledger.NewTransactionID()

	parsed, err := ledger.NewTransactionIDFromString(id.Value())
	require.NoError(t, err)
	assert.True(t, id.Equals(parsed))

	_, err = ledger.NewTransactionIDFromString("not-a-uuid")
	assert.Error(t, err)

	_, err = ledger.NewTransactionIDFromString("")
	assert.Error(t, err)
}
