package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"tradewallet/internal/model"

	"golang.org/x/crypto/scrypt"
)

// Decrypt re-derives the key from the embedded salt and opens the blob.
// Any verification failure -- bad tag, malformed encoding, or plaintext
// that is not the expected JSON shape -- returns ErrWrongPassword. Callers
// must not be able to tell a wrong password from a corrupted blob.
// password must be []byte for security (caller should zero it after use)
func Decrypt(blob *model.EncryptedVault, password []byte) ([]byte, error) {
	switch blob.Version {
	case FormatVersion:
		// current format
	default:
		return nil, fmt.Errorf("unsupported vault format version %d", blob.Version)
	}

	salt, err := base64.StdEncoding.DecodeString(blob.Salt)
	if err != nil {
		return nil, model.ErrWrongPassword
	}

	nonce, err := base64.StdEncoding.DecodeString(blob.Nonce)
	if err != nil {
		return nil, model.ErrWrongPassword
	}

	ciphertext, err := base64.StdEncoding.DecodeString(blob.CipherText)
	if err != nil {
		return nil, model.ErrWrongPassword
	}

	key, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	// Open panics on a wrong-length nonce, so a corrupted blob must be
	// caught here. Same undifferentiated error as a bad tag.
	if len(nonce) != aesGCM.NonceSize() {
		return nil, model.ErrWrongPassword
	}

	// The GCM tag is the primary authentication gate.
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, model.ErrWrongPassword
	}

	// Secondary defensive check: an authenticated blob must still carry
	// valid JSON. Failure here is treated exactly like a bad tag.
	if !json.Valid(plaintext) {
		clear(plaintext)
		return nil, model.ErrWrongPassword
	}

	return plaintext, nil
}

// EncryptVaultData marshals a vault and seals it in one step.
func EncryptVaultData(v *model.DecryptedVault, password []byte) (*model.EncryptedVault, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vault data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	return Encrypt(plaintext, password)
}

// DecryptVaultData opens a blob and unmarshals the vault.
func DecryptVaultData(blob *model.EncryptedVault, password []byte) (*model.DecryptedVault, error) {
	plaintext, err := Decrypt(blob, password)
	if err != nil {
		return nil, err
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var v model.DecryptedVault
	if err := json.Unmarshal(plaintext, &v); err != nil {
		return nil, model.ErrWrongPassword
	}

	return &v, nil
}
