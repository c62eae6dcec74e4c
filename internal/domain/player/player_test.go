package player_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factorysim-go/internal/domain/player"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

func TestPurse_DebitFailsWithoutMutation(t *testing.T) {
	purse := player.NewPurse(100)

	err := purse.Debit(150)

	var fundsErr *shared.InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.Equal(t, 150, fundsErr.Required)
	assert.Equal(t, 100, fundsErr.Available)
	assert.Equal(t, 100, purse.Balance())
}

func TestPurse_DebitAndCredit(t *testing.T) {
	purse := player.NewPurse(100)

	require.NoError(t, purse.Debit(40))
	require.NoError(t, purse.Credit(15))

	assert.Equal(t, 75, purse.Balance())
}

func TestPurse_ChargeAllowsDebt(t *testing.T) {
	purse := player.NewPurse(10)

	err := purse.Charge(25)

	require.NoError(t, err)
	assert.Equal(t, -15, purse.Balance())
	assert.False(t, purse.CanAfford(1))
}

func TestPurse_NegativeAmountsRejected(t *testing.T) {
	purse := player.NewPurse(100)

	assert.Error(t, purse.Debit(-1))
	assert.Error(t, purse.Credit(-1))
	assert.Error(t, purse.Charge(-1))
	assert.Equal(t, 100, purse.Balance())
}

func TestMoneyHistory_EvictsOldestBeyondCap(t *testing.T) {
	history, err := player.NewMoneyHistory(3)
	require.NoError(t, err)

	for day := 1; day <= 5; day++ {
		history.Append(day, day*100)
	}

	points := history.Points()
	require.Len(t, points, 3)
	assert.Equal(t, 3, points[0].Day)
	assert.Equal(t, 5, points[2].Day)
	assert.Equal(t, 500, points[2].Balance)
}

func TestReconstructMoneyHistory_TrimsToCap(t *testing.T) {
	points := []player.MoneyPoint{
		{Day: 1, Balance: 100},
		{Day: 2, Balance: 200},
		{Day: 3, Balance: 300},
	}

	history, err := player.ReconstructMoneyHistory(2, points)

	require.NoError(t, err)
	restored := history.Points()
	require.Len(t, restored, 2)
	assert.Equal(t, 2, restored[0].Day)
}

func TestNewMoneyHistory_RequiresPositiveCap(t *testing.T) {
	_, err := player.NewMoneyHistory(0)

	assert.Error(t, err)
}
