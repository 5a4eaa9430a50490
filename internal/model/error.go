package model

import "errors"

// Error taxonomy for the vault core. Handlers map these to HTTP statuses;
// messages are intentionally generic so callers cannot distinguish a bad
// password from a corrupted blob.
var (
	ErrInvalidMnemonic  = errors.New("invalid mnemonic")
	ErrInvalidKeyFormat = errors.New("invalid private key format")
	// ErrWrongPassword covers both a wrong password and a corrupted or
	// tampered blob. The two must stay indistinguishable.
	ErrWrongPassword      = errors.New("wrong password")
	ErrWalletLocked       = errors.New("wallet is locked")
	ErrNoVaultFound       = errors.New("no vault found")
	ErrVaultExists        = errors.New("vault already exists")
	ErrSigningFailure     = errors.New("signing failure")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
