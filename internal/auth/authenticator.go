// Package auth produces the signed, time-bound credentials that
// authenticate requests to the trading backend. Credentials are generated
// fresh per request and never cached: the backend validates timestamp
// freshness independently, and a short replay window is the point.
package auth

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tradewallet/internal/model"
	"tradewallet/internal/session"

	"github.com/ethereum/go-ethereum/accounts"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Auth header names understood by the trading backend.
const (
	HeaderAddress   = "X-Wallet-Address"
	HeaderSignature = "X-Wallet-Signature"
	HeaderTimestamp = "X-Wallet-Timestamp"
)

// Authenticator signs request credentials with the EVM key of the live
// session. It holds no key material of its own.
type Authenticator struct {
	sessions *session.Manager
}

func NewAuthenticator(sessions *session.Manager) *Authenticator {
	return &Authenticator{sessions: sessions}
}

// BuildAuthHeaders signs "<lowercase address>:<unix seconds>" with the EVM
// private key (EIP-191 personal message hash) and returns the credential
// triple. Fails with ErrWalletLocked when the session is locked and
// ErrSigningFailure when the vault carries no EVM key.
func (a *Authenticator) BuildAuthHeaders(ctx context.Context) (*model.AuthCredential, error) {
	v, err := a.sessions.VaultData(ctx)
	if err != nil {
		return nil, err
	}
	defer v.Wipe()

	if v.EVMPrivateKey == "" || v.EVMAddress == "" {
		return nil, fmt.Errorf("%w: vault has no EVM key", model.ErrSigningFailure)
	}

	keyBytes, err := hex.DecodeString(strings.TrimPrefix(v.EVMPrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSigningFailure, err)
	}
	defer clear(keyBytes)

	key, err := ethcrypto.ToECDSA(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSigningFailure, err)
	}

	address := strings.ToLower(v.EVMAddress)
	timestamp := time.Now().Unix()
	message := fmt.Sprintf("%s:%d", address, timestamp)

	signature, err := ethcrypto.Sign(accounts.TextHash([]byte(message)), key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSigningFailure, err)
	}

	return &model.AuthCredential{
		Address:   address,
		Signature: "0x" + hex.EncodeToString(signature),
		Timestamp: timestamp,
	}, nil
}

// Apply sets the credential headers on an outgoing request.
func Apply(req *http.Request, cred *model.AuthCredential) {
	req.Header.Set(HeaderAddress, cred.Address)
	req.Header.Set(HeaderSignature, cred.Signature)
	req.Header.Set(HeaderTimestamp, fmt.Sprintf("%d", cred.Timestamp))
}
