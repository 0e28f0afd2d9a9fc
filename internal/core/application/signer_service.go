package application

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/wire"
	log "github.com/sirupsen/logrus"
	"github.com/tokenparty/tparty-client/internal/core/domain"
	"github.com/tokenparty/tparty-client/internal/core/ports"
)

// SigningStatus is the terminal state of a signing request.
type SigningStatus int

const (
	// StatusBroadcast means the transaction was signed and relayed.
	StatusBroadcast SigningStatus = iota
	// StatusDeferredMultisig means the source is a multi-signature address
	// and signing is left to out-of-band, multi-party handling.
	StatusDeferredMultisig
	// StatusDeclined means the operator refused the confirmation gate.
	StatusDeclined
	// StatusFailed means signing or broadcasting failed; Err carries the
	// reason.
	StatusFailed
)

// SigningRequest is a composed, unsigned transaction together with its
// claimed source address.
type SigningRequest struct {
	UnsignedTxHex string
	Source        string
}

// SigningOutcome is the single terminal result of a request. Failures are
// outcomes, not panics: nothing in the flow is retried, a fresh request must
// be issued to try again.
type SigningOutcome struct {
	Status SigningStatus
	TxID   string
	Err    error
}

// SignerService decides how a freshly composed transaction gets signed and
// drives the chosen path to completion.
type SignerService interface {
	SignAndBroadcast(ctx context.Context, req SigningRequest) SigningOutcome
}

type signerService struct {
	wallet      ports.WalletCapability
	broadcaster ports.NetworkSubmission
	signingTool ports.SigningTool
	prompter    ports.Prompter
}

func NewSignerService(
	wallet ports.WalletCapability,
	broadcaster ports.NetworkSubmission,
	signingTool ports.SigningTool,
	prompter ports.Prompter,
) SignerService {
	return &signerService{
		wallet:      wallet,
		broadcaster: broadcaster,
		signingTool: signingTool,
		prompter:    prompter,
	}
}

// SignAndBroadcast runs one pass of the signing state machine. The only
// irreversible side effect is the final broadcast; every earlier step is safe
// to abandon.
func (s *signerService) SignAndBroadcast(
	ctx context.Context, req SigningRequest,
) SigningOutcome {
	log.Infof("transaction (unsigned): %s", req.UnsignedTxHex)

	if domain.IsMultisig(req.Source) {
		log.Info("multi-signature transactions are signed and broadcast manually")
		return SigningOutcome{Status: StatusDeferredMultisig}
	}

	confirmed, err := s.prompter.ConfirmSignAndBroadcast(req.UnsignedTxHex)
	if err != nil {
		return failed(fmt.Errorf("confirmation: %w", err))
	}
	if !confirmed {
		return SigningOutcome{Status: StatusDeclined}
	}

	mine, err := s.wallet.IsMine(ctx, req.Source)
	if err != nil {
		return failed(fmt.Errorf("wallet: %w", err))
	}

	var signedHex string
	if mine {
		// Wallet-owned addresses never fall through to the external-key path.
		signedHex, err = s.wallet.SignTransaction(ctx, req.UnsignedTxHex)
		if err != nil {
			return failed(fmt.Errorf("wallet: %w", err))
		}
	} else {
		signedHex, err = s.signWithExternalKey(ctx, req)
		if err != nil {
			return failed(err)
		}
	}
	log.Infof("transaction (signed): %s", signedHex)

	txid, err := s.broadcaster.BroadcastTransaction(ctx, signedHex)
	if err != nil {
		return failed(fmt.Errorf("broadcast: %w", err))
	}
	log.Infof("hash of transaction (broadcast): %s", txid)

	return SigningOutcome{Status: StatusBroadcast, TxID: txid}
}

func (s *signerService) signWithExternalKey(
	ctx context.Context, req SigningRequest,
) (string, error) {
	wif, err := s.prompter.PrivateKey(req.Source)
	if err != nil {
		return "", fmt.Errorf("private key prompt: %w", err)
	}
	if !domain.IsValidWIF(wif) {
		return "", domain.ErrInvalidPrivateKey
	}

	numInputs, err := countTxInputs(req.UnsignedTxHex)
	if err != nil {
		return "", err
	}

	// The tool has no sign-all mode: each input is signed separately, feeding
	// the previous output back in. The loop is bounded by the declared input
	// count and stops at the first input the tool fails to sign.
	txHex := req.UnsignedTxHex
	for i := 0; i < numInputs; i++ {
		signed, err := s.signingTool.SignInput(ctx, txHex, i, wif)
		if err != nil {
			break
		}
		txHex = strings.TrimSpace(signed)
	}

	if txHex == req.UnsignedTxHex {
		return "", domain.ErrSigningToolUnavailable
	}
	return txHex, nil
}

func countTxInputs(txHex string) (int, error) {
	buf, err := hex.DecodeString(txHex)
	if err != nil {
		return 0, domain.ErrMalformedTransaction
	}
	var tx wire.MsgTx
	if err := tx.Deserialize(bytes.NewReader(buf)); err != nil {
		return 0, domain.ErrMalformedTransaction
	}
	return len(tx.TxIn), nil
}

func failed(err error) SigningOutcome {
	return SigningOutcome{Status: StatusFailed, Err: err}
}
