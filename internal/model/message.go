package model

// One request struct per message kind. Payloads are validated at the HTTP
// boundary before they reach core logic.

// CreateVaultRequest creates a mnemonic-based vault. An empty mnemonic
// means "generate a fresh one"; the generated phrase is returned once and
// never again.
type CreateVaultRequest struct {
	Mnemonic string `json:"mnemonic,omitempty"`
	Password string `json:"password" validate:"required,min=8"`
}

// CreateVaultResponse returns the addresses of the new vault.
type CreateVaultResponse struct {
	Success       bool   `json:"success"`
	Mnemonic      string `json:"mnemonic,omitempty"`
	EVMAddress    string `json:"evmAddress"`
	SolanaAddress string `json:"solanaAddress"`
}

// ImportVaultRequest creates a vault from independently imported keys.
// At least one of the two keys must be present.
type ImportVaultRequest struct {
	EVMKey    string `json:"evmKey,omitempty"`
	SolanaKey string `json:"solanaKey,omitempty"`
	Password  string `json:"password" validate:"required,min=8"`
}

// UnlockRequest carries the vault password.
type UnlockRequest struct {
	Password string `json:"password" validate:"required"`
}

// StatusResponse is the generic success envelope.
type StatusResponse struct {
	Success bool `json:"success"`
}

// SessionData reports session state without exposing secrets.
type SessionData struct {
	Unlocked bool `json:"unlocked"`
	HasVault bool `json:"hasVault"`
}

// SessionResponse wraps SessionData.
type SessionResponse struct {
	Success bool        `json:"success"`
	Data    SessionData `json:"data"`
}

// VaultDataResponse returns the decrypted vault to a trusted UI surface.
type VaultDataResponse struct {
	Success bool            `json:"success"`
	Data    *DecryptedVault `json:"data,omitempty"`
}

// AutoLockRequest sets the idle timeout. 0 means "never auto-lock".
type AutoLockRequest struct {
	Minutes int `json:"minutes" validate:"min=0,max=1440"`
}

// AutoLockResponse reports the configured idle timeout.
type AutoLockResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Minutes int `json:"minutes"`
	} `json:"data"`
}
