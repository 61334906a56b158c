package testutil

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

// BankKeeperMock keeps account balances in memory. Module accounts are regular accounts at their
// module address.
type BankKeeperMock struct {
	Balances map[string]sdk.Coins
}

func NewBankKeeperMock() *BankKeeperMock {
	return &BankKeeperMock{Balances: make(map[string]sdk.Coins)}
}

// Fund adds coins to an account. Denoms must be unique.
func (m *BankKeeperMock) Fund(addr sdk.AccAddress, coins ...sdk.Coin) {
	m.Balances[addr.String()] = m.Balances[addr.String()].Add(sdk.NewCoins(coins...)...)
}

// FundModule adds coins to a module account
func (m *BankKeeperMock) FundModule(module string, coins ...sdk.Coin) {
	m.Fund(authtypes.NewModuleAddress(module), coins...)
}

// ModuleBalance returns the balance of a module account
func (m *BankKeeperMock) ModuleBalance(module string) sdk.Coins {
	return m.Balances[authtypes.NewModuleAddress(module).String()]
}

func (m *BankKeeperMock) GetBalance(_ sdk.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, m.Balances[addr.String()].AmountOf(denom))
}

func (m *BankKeeperMock) SendCoins(_ sdk.Context, fromAddr sdk.AccAddress, toAddr sdk.AccAddress, amt sdk.Coins) error {
	newBalance, negative := m.Balances[fromAddr.String()].SafeSub(amt)
	if negative {
		return sdkerrors.Wrapf(sdkerrors.ErrInsufficientFunds, "%s", fromAddr)
	}
	m.Balances[fromAddr.String()] = newBalance
	m.Balances[toAddr.String()] = m.Balances[toAddr.String()].Add(amt...)
	return nil
}

func (m *BankKeeperMock) SendCoinsFromAccountToModule(ctx sdk.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return m.SendCoins(ctx, senderAddr, authtypes.NewModuleAddress(recipientModule), amt)
}

func (m *BankKeeperMock) SendCoinsFromModuleToAccount(ctx sdk.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return m.SendCoins(ctx, authtypes.NewModuleAddress(senderModule), recipientAddr, amt)
}

func (m *BankKeeperMock) BurnCoins(_ sdk.Context, moduleName string, amt sdk.Coins) error {
	addr := authtypes.NewModuleAddress(moduleName).String()
	newBalance, negative := m.Balances[addr].SafeSub(amt)
	if negative {
		return sdkerrors.Wrapf(sdkerrors.ErrInsufficientFunds, "burn from %s", moduleName)
	}
	m.Balances[addr] = newBalance
	return nil
}
