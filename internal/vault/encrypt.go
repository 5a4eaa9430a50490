// Package vault implements the password-authenticated encryption of the
// wallet secret blob. It owns the at-rest byte format and nothing else:
// no I/O, no session state.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"tradewallet/internal/model"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters. N=2^18 (~256MB RAM, 0.5-2s per derivation) keeps
	// offline brute force expensive while still working on low-memory hosts.
	scryptN      = 1 << 18
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12

	// FormatVersion tags the blob so future KDF/cipher upgrades can
	// coexist with old blobs. Decrypt dispatches on it.
	FormatVersion = 1
)

// Encrypt derives a key from password with scrypt and seals plaintext with
// AES-256-GCM under a fresh salt and nonce. Two calls with identical input
// produce distinct blobs.
// password must be []byte for security (caller should zero it after use)
func Encrypt(plaintext, password []byte) (*model.EncryptedVault, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
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

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	return &model.EncryptedVault{
		Version:    FormatVersion,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}
