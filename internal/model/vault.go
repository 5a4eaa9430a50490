package model

// EncryptedVault is the versioned at-rest form of a vault.
// Salt, nonce and ciphertext are base64-encoded.
type EncryptedVault struct {
	Version    int    `json:"version"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// DecryptedVault is the root secret of the wallet. Exactly one live
// instance exists per process, owned by the session manager; everything
// else works on copies.
type DecryptedVault struct {
	Mnemonic         string `json:"mnemonic,omitempty"`
	EVMPrivateKey    string `json:"evmPrivateKey"`    // 0x-prefixed lowercase hex
	SolanaPrivateKey string `json:"solanaPrivateKey"` // base58, 64 bytes decoded
	EVMAddress       string `json:"evmAddress"`
	SolanaAddress    string `json:"solanaAddress"`
}

// Copy returns an independent copy of the vault.
func (v *DecryptedVault) Copy() *DecryptedVault {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Wipe overwrites the secret fields. Strings in Go are immutable, so this
// drops the references; buffers holding raw key bytes are cleared where
// they are produced.
func (v *DecryptedVault) Wipe() {
	if v == nil {
		return
	}
	v.Mnemonic = ""
	v.EVMPrivateKey = ""
	v.SolanaPrivateKey = ""
}

// VaultMeta is stored in plaintext next to the encrypted blob so the
// service can answer "does a vault exist, which addresses" without
// decryption. Never holds secrets.
type VaultMeta struct {
	Version       int    `json:"version"`
	CreatedAt     string `json:"createdAt"` // RFC3339
	EVMAddress    string `json:"evmAddress"`
	SolanaAddress string `json:"solanaAddress"`
	QR            string `json:"QR,omitempty"` // base64 PNG of the receiving address
}

// AuthCredential is a short-lived signed credential for backend calls.
// Generated fresh per request, never persisted.
type AuthCredential struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
}
