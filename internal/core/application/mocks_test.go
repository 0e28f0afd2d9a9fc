package application_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tokenparty/tparty-client/internal/core/ports"
)

// **** WalletCapability ****

type mockWallet struct {
	mock.Mock
}

func (m *mockWallet) IsMine(ctx context.Context, address string) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

func (m *mockWallet) SignTransaction(
	ctx context.Context, unsignedHex string,
) (string, error) {
	args := m.Called(ctx, unsignedHex)
	return args.String(0), args.Error(1)
}

func (m *mockWallet) Balances(ctx context.Context) ([]ports.CoinBalance, error) {
	args := m.Called(ctx)

	var res []ports.CoinBalance
	if a := args.Get(0); a != nil {
		res = a.([]ports.CoinBalance)
	}
	return res, args.Error(1)
}

// **** NetworkSubmission ****

type mockBroadcaster struct {
	mock.Mock
}

func (m *mockBroadcaster) BroadcastTransaction(
	ctx context.Context, signedHex string,
) (string, error) {
	args := m.Called(ctx, signedHex)
	return args.String(0), args.Error(1)
}

// **** SigningTool ****

type mockSigningTool struct {
	mock.Mock
}

func (m *mockSigningTool) SignInput(
	ctx context.Context, txHex string, index int, privateKeyWIF string,
) (string, error) {
	args := m.Called(ctx, txHex, index, privateKeyWIF)
	return args.String(0), args.Error(1)
}

// **** Prompter ****

type mockPrompter struct {
	mock.Mock
}

func (m *mockPrompter) ConfirmSignAndBroadcast(unsignedHex string) (bool, error) {
	args := m.Called(unsignedHex)
	return args.Bool(0), args.Error(1)
}

func (m *mockPrompter) PrivateKey(source string) (string, error) {
	args := m.Called(source)
	return args.String(0), args.Error(1)
}
