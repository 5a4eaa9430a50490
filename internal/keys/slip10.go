package keys

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
)

// SLIP-0010 ed25519 key derivation. Only hardened derivation is defined
// for the curve, so every path component must carry the hardened bit.

var ed25519MasterKey = []byte("ed25519 seed")

// deriveEd25519Seed returns the 32-byte private key seed at path,
// starting from the BIP-39 master seed.
func deriveEd25519Seed(seed []byte, path []uint32) ([]byte, error) {
	mac := hmac.New(sha512.New, ed25519MasterKey)
	mac.Write(seed)
	sum := mac.Sum(nil)

	key := sum[:32]
	chainCode := sum[32:]

	for _, index := range path {
		if index < hardened {
			return nil, errors.New("ed25519 derivation requires hardened path components")
		}

		data := make([]byte, 0, 1+32+4)
		data = append(data, 0x00)
		data = append(data, key...)
		data = binary.BigEndian.AppendUint32(data, index)

		mac = hmac.New(sha512.New, chainCode)
		mac.Write(data)
		sum = mac.Sum(nil)

		key = sum[:32]
		chainCode = sum[32:]
	}

	out := make([]byte, 32)
	copy(out, key)
	return out, nil
}
