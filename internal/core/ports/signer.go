package ports

import "context"

// SigningTool is the boundary to the external per-input signer. It has no
// bulk-sign mode: one invocation signs exactly one input index, and a failing
// invocation surfaces as an error.
type SigningTool interface {
	SignInput(
		ctx context.Context, txHex string, index int, privateKeyWIF string,
	) (string, error)
}

// Prompter is the seam for operator decisions. Interactive hosts back it with
// the terminal; non-interactive hosts supply the answers up front.
type Prompter interface {
	// ConfirmSignAndBroadcast asks the operator whether to proceed with
	// signing and broadcasting the given unsigned transaction.
	ConfirmSignAndBroadcast(unsignedHex string) (bool, error)
	// PrivateKey asks for the WIF private key of a source address not managed
	// by the wallet.
	PrivateKey(source string) (string, error)
}
