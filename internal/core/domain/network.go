package domain

// NetworkParams bundles the protocol constants that depend on the selected
// network. Main and test network differ in address version, magic bytes and
// burn window; the testcoin axis only ever moves the burn window. The four
// bundles are kept as independent literals on purpose: the two axes are not
// orthogonal (both testnet bundles share the same address version but not the
// same burn window), so deriving one bundle from another would silently
// corrupt the table.
type NetworkParams struct {
	// Testnet reports whether the bundle targets the test network.
	Testnet bool
	// Testcoin reports whether the alternate-asset test mode is active.
	Testcoin bool
	// AddressVersion is the base58 version byte of pay-to-pubkey-hash
	// addresses on the selected network.
	AddressVersion byte
	// MagicBytes are the network magic of the underlying chain.
	MagicBytes []byte
	// FirstBlock is the first block height at which protocol messages are
	// parsed.
	FirstBlock uint64
	// BurnStart and BurnEnd delimit the block range within which burn
	// transactions are accepted.
	BurnStart uint64
	BurnEnd   uint64
	// Unspendable is the provably unspendable address burns are sent to.
	Unspendable string
}

var (
	mainnetParams = NetworkParams{
		AddressVersion: 0x00,
		MagicBytes:     []byte{0xf9, 0xbe, 0xb4, 0xd9},
		FirstBlock:     278270,
		BurnStart:      278310,
		BurnEnd:        283810,
		Unspendable:    "1TokenpartyBurnAddressXXXXXXXY3hT6",
	}
	mainnetTestcoinParams = NetworkParams{
		Testcoin:       true,
		AddressVersion: 0x00,
		MagicBytes:     []byte{0xf9, 0xbe, 0xb4, 0xd9},
		FirstBlock:     278270,
		BurnStart:      278310,
		BurnEnd:        2500000,
		Unspendable:    "1TokenpartyBurnAddressXXXXXXXY3hT6",
	}
	testnetParams = NetworkParams{
		Testnet:        true,
		AddressVersion: 0x6f,
		MagicBytes:     []byte{0x0b, 0x11, 0x09, 0x07},
		FirstBlock:     310000,
		BurnStart:      310000,
		BurnEnd:        4017708,
		Unspendable:    "mvTokenpartyBurnAddressXXXXXW24Hef",
	}
	testnetTestcoinParams = NetworkParams{
		Testnet:        true,
		Testcoin:       true,
		AddressVersion: 0x6f,
		MagicBytes:     []byte{0x0b, 0x11, 0x09, 0x07},
		FirstBlock:     310000,
		BurnStart:      310000,
		BurnEnd:        9999999,
		Unspendable:    "mvTokenpartyBurnAddressXXXXXW24Hef",
	}
)

// ResolveNetworkParams maps the (testnet, testcoin) selector pair to its
// protocol constant bundle. Pure and total: every pair is valid input. The
// bundle is meant to be resolved once at startup and passed around read-only;
// resolving twice with different flags within the same session corrupts every
// downstream address and query.
func ResolveNetworkParams(testnet, testcoin bool) NetworkParams {
	if testnet {
		if testcoin {
			return testnetTestcoinParams
		}
		return testnetParams
	}
	if testcoin {
		return mainnetTestcoinParams
	}
	return mainnetParams
}
