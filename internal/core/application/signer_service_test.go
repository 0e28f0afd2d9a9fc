package application_test

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tokenparty/tparty-client/internal/core/application"
	"github.com/tokenparty/tparty-client/internal/core/domain"
)

const (
	singlesigSource = "1Alice1111111111111111111111111111"
	multisigSource  = "2_1Alice1111111111111111111111111111_1Bob11111111111111111111111111111_2"
	validWIF        = "5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ"
)

func unsignedTxHex(t *testing.T, numInputs int) string {
	tx := wire.NewMsgTx(wire.TxVersion)
	for i := 0; i < numInputs; i++ {
		tx.AddTxIn(wire.NewTxIn(&wire.OutPoint{Index: uint32(i)}, nil, nil))
	}
	tx.AddTxOut(wire.NewTxOut(1000, []byte{0x6a}))

	var buf bytes.Buffer
	require.NoError(t, tx.Serialize(&buf))
	return hex.EncodeToString(buf.Bytes())
}

func TestSignAndBroadcastDefersMultisig(t *testing.T) {
	t.Parallel()

	wallet := &mockWallet{}
	broadcaster := &mockBroadcaster{}
	tool := &mockSigningTool{}
	prompter := &mockPrompter{}
	svc := application.NewSignerService(wallet, broadcaster, tool, prompter)

	outcome := svc.SignAndBroadcast(context.Background(), application.SigningRequest{
		UnsignedTxHex: unsignedTxHex(t, 1),
		Source:        multisigSource,
	})

	require.Equal(t, application.StatusDeferredMultisig, outcome.Status)
	require.NoError(t, outcome.Err)
	wallet.AssertNotCalled(t, "IsMine", mock.Anything, mock.Anything)
	wallet.AssertNotCalled(t, "SignTransaction", mock.Anything, mock.Anything)
	broadcaster.AssertNotCalled(t, "BroadcastTransaction", mock.Anything, mock.Anything)
	prompter.AssertNotCalled(t, "ConfirmSignAndBroadcast", mock.Anything)
}

func TestSignAndBroadcastDeclined(t *testing.T) {
	t.Parallel()

	wallet := &mockWallet{}
	broadcaster := &mockBroadcaster{}
	tool := &mockSigningTool{}
	prompter := &mockPrompter{}
	txHex := unsignedTxHex(t, 1)
	prompter.On("ConfirmSignAndBroadcast", txHex).Return(false, nil)

	svc := application.NewSignerService(wallet, broadcaster, tool, prompter)
	outcome := svc.SignAndBroadcast(context.Background(), application.SigningRequest{
		UnsignedTxHex: txHex,
		Source:        singlesigSource,
	})

	require.Equal(t, application.StatusDeclined, outcome.Status)
	wallet.AssertNotCalled(t, "IsMine", mock.Anything, mock.Anything)
	broadcaster.AssertNotCalled(t, "BroadcastTransaction", mock.Anything, mock.Anything)
}

func TestSignAndBroadcastWalletOwned(t *testing.T) {
	t.Parallel()

	wallet := &mockWallet{}
	broadcaster := &mockBroadcaster{}
	tool := &mockSigningTool{}
	prompter := &mockPrompter{}
	txHex := unsignedTxHex(t, 1)
	prompter.On("ConfirmSignAndBroadcast", txHex).Return(true, nil)
	wallet.On("IsMine", mock.Anything, singlesigSource).Return(true, nil)
	wallet.On("SignTransaction", mock.Anything, txHex).Return("cafebabe", nil)
	broadcaster.On("BroadcastTransaction", mock.Anything, "cafebabe").Return("abc123", nil)

	svc := application.NewSignerService(wallet, broadcaster, tool, prompter)
	outcome := svc.SignAndBroadcast(context.Background(), application.SigningRequest{
		UnsignedTxHex: txHex,
		Source:        singlesigSource,
	})

	require.Equal(t, application.StatusBroadcast, outcome.Status)
	require.Equal(t, "abc123", outcome.TxID)
	require.NoError(t, outcome.Err)
	prompter.AssertNotCalled(t, "PrivateKey", mock.Anything)
	wallet.AssertExpectations(t)
	broadcaster.AssertExpectations(t)
}

func TestSignAndBroadcastWalletErrorNeverFallsThrough(t *testing.T) {
	t.Parallel()

	wallet := &mockWallet{}
	broadcaster := &mockBroadcaster{}
	tool := &mockSigningTool{}
	prompter := &mockPrompter{}
	txHex := unsignedTxHex(t, 1)
	prompter.On("ConfirmSignAndBroadcast", txHex).Return(true, nil)
	wallet.On("IsMine", mock.Anything, singlesigSource).Return(true, nil)
	wallet.On("SignTransaction", mock.Anything, txHex).
		Return("", errors.New("address unknown to wallet"))

	svc := application.NewSignerService(wallet, broadcaster, tool, prompter)
	outcome := svc.SignAndBroadcast(context.Background(), application.SigningRequest{
		UnsignedTxHex: txHex,
		Source:        singlesigSource,
	})

	require.Equal(t, application.StatusFailed, outcome.Status)
	require.ErrorContains(t, outcome.Err, "address unknown to wallet")
	prompter.AssertNotCalled(t, "PrivateKey", mock.Anything)
	tool.AssertNotCalled(t, "SignInput", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	broadcaster.AssertNotCalled(t, "BroadcastTransaction", mock.Anything, mock.Anything)
}

func TestSignAndBroadcastRejectsInvalidPrivateKey(t *testing.T) {
	t.Parallel()

	wallet := &mockWallet{}
	broadcaster := &mockBroadcaster{}
	tool := &mockSigningTool{}
	prompter := &mockPrompter{}
	txHex := unsignedTxHex(t, 1)
	prompter.On("ConfirmSignAndBroadcast", txHex).Return(true, nil)
	wallet.On("IsMine", mock.Anything, singlesigSource).Return(false, nil)
	prompter.On("PrivateKey", singlesigSource).Return("not a key!", nil)

	svc := application.NewSignerService(wallet, broadcaster, tool, prompter)
	outcome := svc.SignAndBroadcast(context.Background(), application.SigningRequest{
		UnsignedTxHex: txHex,
		Source:        singlesigSource,
	})

	require.Equal(t, application.StatusFailed, outcome.Status)
	require.ErrorIs(t, outcome.Err, domain.ErrInvalidPrivateKey)
	wallet.AssertNotCalled(t, "SignTransaction", mock.Anything, mock.Anything)
	tool.AssertNotCalled(t, "SignInput", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	broadcaster.AssertNotCalled(t, "BroadcastTransaction", mock.Anything, mock.Anything)
}

func TestSignAndBroadcastExternalKey(t *testing.T) {
	t.Parallel()

	wallet := &mockWallet{}
	broadcaster := &mockBroadcaster{}
	tool := &mockSigningTool{}
	prompter := &mockPrompter{}
	txHex := unsignedTxHex(t, 2)
	prompter.On("ConfirmSignAndBroadcast", txHex).Return(true, nil)
	wallet.On("IsMine", mock.Anything, singlesigSource).Return(false, nil)
	prompter.On("PrivateKey", singlesigSource).Return(validWIF, nil)
	// one call per input, each fed the previous output
	tool.On("SignInput", mock.Anything, txHex, 0, validWIF).Return("deadbeef\n", nil)
	tool.On("SignInput", mock.Anything, "deadbeef", 1, validWIF).Return("deadbeef01", nil)
	broadcaster.On("BroadcastTransaction", mock.Anything, "deadbeef01").Return("txid-1", nil)

	svc := application.NewSignerService(wallet, broadcaster, tool, prompter)
	outcome := svc.SignAndBroadcast(context.Background(), application.SigningRequest{
		UnsignedTxHex: txHex,
		Source:        singlesigSource,
	})

	require.Equal(t, application.StatusBroadcast, outcome.Status)
	require.Equal(t, "txid-1", outcome.TxID)
	tool.AssertNumberOfCalls(t, "SignInput", 2)
	wallet.AssertNotCalled(t, "SignTransaction", mock.Anything, mock.Anything)
}

func TestSignAndBroadcastSigningToolUnavailable(t *testing.T) {
	t.Parallel()

	wallet := &mockWallet{}
	broadcaster := &mockBroadcaster{}
	tool := &mockSigningTool{}
	prompter := &mockPrompter{}
	txHex := unsignedTxHex(t, 2)
	prompter.On("ConfirmSignAndBroadcast", txHex).Return(true, nil)
	wallet.On("IsMine", mock.Anything, singlesigSource).Return(false, nil)
	prompter.On("PrivateKey", singlesigSource).Return(validWIF, nil)
	// tool fails on the very first input: bytes stay unchanged
	tool.On("SignInput", mock.Anything, txHex, 0, validWIF).
		Return("", errors.New("exit status 1"))

	svc := application.NewSignerService(wallet, broadcaster, tool, prompter)
	outcome := svc.SignAndBroadcast(context.Background(), application.SigningRequest{
		UnsignedTxHex: txHex,
		Source:        singlesigSource,
	})

	require.Equal(t, application.StatusFailed, outcome.Status)
	require.ErrorIs(t, outcome.Err, domain.ErrSigningToolUnavailable)
	tool.AssertNumberOfCalls(t, "SignInput", 1)
	broadcaster.AssertNotCalled(t, "BroadcastTransaction", mock.Anything, mock.Anything)
}

func TestSignAndBroadcastSurfacesSubmissionError(t *testing.T) {
	t.Parallel()

	wallet := &mockWallet{}
	broadcaster := &mockBroadcaster{}
	tool := &mockSigningTool{}
	prompter := &mockPrompter{}
	txHex := unsignedTxHex(t, 1)
	prompter.On("ConfirmSignAndBroadcast", txHex).Return(true, nil)
	wallet.On("IsMine", mock.Anything, singlesigSource).Return(true, nil)
	wallet.On("SignTransaction", mock.Anything, txHex).Return("cafebabe", nil)
	broadcaster.On("BroadcastTransaction", mock.Anything, "cafebabe").
		Return("", errors.New("min relay fee not met"))

	svc := application.NewSignerService(wallet, broadcaster, tool, prompter)
	outcome := svc.SignAndBroadcast(context.Background(), application.SigningRequest{
		UnsignedTxHex: txHex,
		Source:        singlesigSource,
	})

	require.Equal(t, application.StatusFailed, outcome.Status)
	require.ErrorContains(t, outcome.Err, "min relay fee not met")
}
