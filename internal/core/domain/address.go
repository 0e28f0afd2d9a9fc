package domain

import "strings"

const b58Digits = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// IsMultisig reports whether the address is an underscore-serialized
// multi-signature address of the form required_address1_..._addressN_total.
func IsMultisig(address string) bool {
	return strings.Contains(address, "_")
}

// IsValidWIF reports whether the string looks like a wallet-import-format
// private key: non-empty and made of base58 characters only. Checksum
// verification is left to the signing tool that consumes the key.
func IsValidWIF(wif string) bool {
	if len(wif) == 0 {
		return false
	}
	for _, c := range wif {
		if !strings.ContainsRune(b58Digits, c) {
			return false
		}
	}
	return true
}
