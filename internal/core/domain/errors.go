package domain

import "errors"

var (
	// ErrInvalidPrivateKey is thrown when the operator supplies an empty key
	// or one containing characters outside the base58 alphabet.
	ErrInvalidPrivateKey = errors.New("invalid private key")
	// ErrSigningToolUnavailable is thrown when the external signing tool left
	// the transaction bytes unchanged.
	ErrSigningToolUnavailable = errors.New("could not sign transaction with external signing tool")
	// ErrMalformedTransaction ...
	ErrMalformedTransaction = errors.New("unsigned transaction is not valid hex or cannot be decoded")
)
