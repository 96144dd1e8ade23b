package atm

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_DepositWithdraw(t *testing.T) {
	a := NewAccount("1001", "1234", decimal.NewFromInt(100))

	require.NoError(t, a.Deposit(decimal.RequireFromString("25.50")))
	assert.True(t, a.Balance().Equal(decimal.RequireFromString("125.50")))

	require.NoError(t, a.Withdraw(decimal.NewFromInt(25)))
	assert.True(t, a.Balance().Equal(decimal.RequireFromString("100.50")))

	assert.ErrorIs(t, a.Withdraw(decimal.NewFromInt(101)), ErrInsufficientFunds)
	assert.True(t, a.Balance().Equal(decimal.RequireFromString("100.50")), "expected balance unchanged after rejected withdrawal")

	assert.ErrorIs(t, a.Deposit(decimal.Zero), ErrInvalidAmount)
	assert.ErrorIs(t, a.Withdraw(decimal.NewFromInt(-1)), ErrInvalidAmount)

	require.NoError(t, a.Withdraw(decimal.RequireFromString("100.50")), "expected withdrawing the full balance to succeed")
	assert.True(t, a.Balance().IsZero())
}

func TestAccount_ChangePIN(t *testing.T) {
	a := NewAccount("1001", "1234", decimal.Zero)

	assert.ErrorIs(t, a.ChangePIN("0000", "9999"), ErrIncorrectPIN)
	assert.True(t, a.CheckPIN("1234"))

	require.NoError(t, a.ChangePIN("1234", "9999"))
	assert.False(t, a.CheckPIN("1234"))
	assert.True(t, a.CheckPIN("9999"))
}

func TestBank_Login(t *testing.T) {
	bank := NewBank(NewAccount("1001", "1234", decimal.Zero))

	a, err := bank.Login("1001", "1234")
	require.NoError(t, err)
	assert.Equal(t, "1001", a.Number())

	_, err = bank.Login("1001", "0000")
	assert.ErrorIs(t, err, ErrIncorrectPIN)

	_, err = bank.Login("2002", "1234")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestParseAccounts(t *testing.T) {
	accounts, err := ParseAccounts("1001:1234:500, 1002:0000:12.75,")
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "1002", accounts[1].Number())
	assert.True(t, accounts[1].Balance().Equal(decimal.RequireFromString("12.75")))

	for _, bad := range []string{"1001:1234", "1001:1234:abc", ":1234:1", "1001:1234:-5"} {
		_, err := ParseAccounts(bad)
		assert.Error(t, err, bad)
	}
}
