package keys

import (
	"crypto/ed25519"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"tradewallet/internal/model"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// ChainKind selects a chain family.
type ChainKind string

const (
	ChainEVM    ChainKind = "evm"
	ChainSolana ChainKind = "solana"
)

// ImportPrivateKey validates and normalizes a raw private key for the
// given chain family. The switch is exhaustive: a new chain family is a
// compile-visible change here and in the deriver table.
func ImportPrivateKey(raw string, kind ChainKind) (address, normalizedKey string, err error) {
	switch kind {
	case ChainEVM:
		return ImportEVMKey(raw)
	case ChainSolana:
		return ImportSolanaKey(raw)
	default:
		return "", "", fmt.Errorf("unknown chain kind %q", kind)
	}
}

// ImportEVMKey accepts 64 hex characters with an optional 0x prefix,
// normalizes the key to canonical 0x-prefixed lowercase form and computes
// the address. Length and charset are checked before any curve operation.
func ImportEVMKey(raw string) (address, normalizedKey string, err error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(strings.TrimPrefix(trimmed, "0x"), "0X")

	if len(trimmed) != 64 || !isHex(trimmed) {
		return "", "", model.ErrInvalidKeyFormat
	}

	keyBytes, err := hex.DecodeString(trimmed)
	if err != nil {
		return "", "", model.ErrInvalidKeyFormat
	}
	defer clear(keyBytes)

	// ToECDSA rejects zero and out-of-range scalars.
	ecdsaKey, err := ethcrypto.ToECDSA(keyBytes)
	if err != nil {
		return "", "", model.ErrInvalidKeyFormat
	}

	address = ethcrypto.PubkeyToAddress(ecdsaKey.PublicKey).Hex()
	normalizedKey = "0x" + strings.ToLower(trimmed)
	return address, normalizedKey, nil
}

// ImportSolanaKey accepts a base58-encoded 64-byte ed25519 secret key,
// verifies the embedded public key matches the seed half, and returns the
// base58 address. Decoding and length checks happen before any curve
// operation.
func ImportSolanaKey(raw string) (address, normalizedKey string, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "", model.ErrInvalidKeyFormat
	}

	keyBytes, err := base58.Decode(trimmed)
	if err != nil {
		return "", "", model.ErrInvalidKeyFormat
	}
	defer clear(keyBytes)

	if len(keyBytes) != ed25519.PrivateKeySize {
		return "", "", model.ErrInvalidKeyFormat
	}

	// The last 32 bytes must be the public key of the first 32. A mismatch
	// means a truncated or hand-assembled key.
	derived := ed25519.NewKeyFromSeed(keyBytes[:ed25519.SeedSize])
	pub := derived[ed25519.SeedSize:]
	if subtle.ConstantTimeCompare(pub, keyBytes[ed25519.SeedSize:]) != 1 {
		return "", "", model.ErrInvalidKeyFormat
	}

	address = solana.PublicKeyFromBytes(keyBytes[ed25519.SeedSize:]).String()
	normalizedKey = base58.Encode(keyBytes)
	return address, normalizedKey, nil
}

// BuildVault assembles a vault from independently imported keys. Either
// side may be empty, but not both; the missing side stays as empty strings
// until the user links the second chain.
func BuildVault(evmKey, evmAddress, solanaKey, solanaAddress string) (*model.DecryptedVault, error) {
	if evmAddress == "" && solanaAddress == "" {
		return nil, model.ErrInvalidKeyFormat
	}
	return &model.DecryptedVault{
		EVMPrivateKey:    evmKey,
		SolanaPrivateKey: solanaKey,
		EVMAddress:       evmAddress,
		SolanaAddress:    solanaAddress,
	}, nil
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
