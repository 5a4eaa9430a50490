// Package session owns the single in-memory decrypted vault for the
// lifetime of the process. It enforces the sliding idle auto-lock policy
// and mirrors the unlocked vault to a volatile store so an involuntary
// process restart does not force the user to re-enter the password.
package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"tradewallet/internal/model"
	"tradewallet/internal/store"
	"tradewallet/internal/vault"

	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
)

// Manager serializes all lock/unlock transitions behind a single mutex.
// No other component may retain the live vault; reads hand out copies.
type Manager struct {
	mu       sync.Mutex
	vault    *model.DecryptedVault
	deadline time.Time
	timer    *time.Timer
	timeout  time.Duration // 0 means never auto-lock

	durable store.KV
	mirror  store.KV
	log     zerolog.Logger
}

// NewManager builds a manager over the durable store and the volatile
// mirror. If the mirror already holds a serialized vault, the session
// resumes unlocked with a fresh deadline (warm resume after an involuntary
// restart).
func NewManager(durable, mirror store.KV, timeout time.Duration, log zerolog.Logger) *Manager {
	m := &Manager{
		timeout: timeout,
		durable: durable,
		mirror:  mirror,
		log:     log,
	}
	m.resume()
	return m
}

// resume probes the mirror for a vault left behind by a previous run.
// Mirror errors are non-fatal: restart survival is best-effort.
func (m *Manager) resume() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := m.mirror.Get(ctx, store.KeyVaultSession)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			m.log.Warn().Err(err).Msg("session mirror unavailable, starting locked")
		}
		return
	}

	var v model.DecryptedVault
	if err := json.Unmarshal(data, &v); err != nil {
		m.log.Warn().Err(err).Msg("discarding unreadable session mirror")
		m.clearMirror(ctx)
		return
	}
	clear(data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.vault = &v
	m.armLocked()
	m.log.Info().Str("evmAddress", v.EVMAddress).Msg("session resumed from mirror")
}

// Unlock loads the encrypted blob, decrypts it with password and installs
// the vault as the live session. On decrypt failure the session stays
// locked and ErrWrongPassword is returned.
// password must be []byte for security (caller should zero it after use)
func (m *Manager) Unlock(ctx context.Context, password []byte) error {
	blobData, err := m.durable.Get(ctx, store.KeyVaultEncrypted)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.ErrNoVaultFound
		}
		return fmt.Errorf("failed to load vault: %w", err)
	}

	var blob model.EncryptedVault
	if err := json.Unmarshal(blobData, &blob); err != nil {
		return model.ErrWrongPassword
	}

	v, err := vault.DecryptVaultData(&blob, password)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Decrypt-then-assign is a single step from the caller's perspective:
	// a concurrent unlock cannot observe a half-installed session.
	if m.vault != nil {
		m.vault.Wipe()
	}
	m.vault = v
	m.armLocked()
	m.mirrorLocked(ctx)

	m.log.Info().Str("evmAddress", v.EVMAddress).Msg("vault unlocked")
	return nil
}

// Lock wipes the in-memory vault and the mirror. Idempotent.
func (m *Manager) Lock(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lockLocked(ctx, "explicit lock")
}

// lockLocked clears session state. Caller holds mu.
func (m *Manager) lockLocked(ctx context.Context, reason string) {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.vault != nil {
		m.vault.Wipe()
		m.vault = nil
		m.log.Info().Str("reason", reason).Msg("vault locked")
	}
	m.deadline = time.Time{}
	m.clearMirror(ctx)
}

// VaultData returns a copy of the live vault and resets the idle deadline.
func (m *Manager) VaultData(ctx context.Context) (*model.DecryptedVault, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.unlockedLocked(ctx) {
		return nil, model.ErrWalletLocked
	}

	m.armLocked()
	m.mirrorLocked(ctx)
	return m.vault.Copy(), nil
}

// Touch resets the idle deadline without reading the vault (RESET_TIMER).
func (m *Manager) Touch(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.unlockedLocked(ctx) {
		return
	}
	m.armLocked()
	m.mirrorLocked(ctx)
}

// Status reports session state. hasVault is answered from the plaintext
// metadata, never by attempting decryption.
func (m *Manager) Status(ctx context.Context) (unlocked, hasVault bool) {
	m.mu.Lock()
	unlocked = m.unlockedLocked(ctx)
	m.mu.Unlock()

	_, err := m.durable.Get(ctx, store.KeyVaultMeta)
	return unlocked, err == nil
}

// Meta returns the stored vault metadata.
func (m *Manager) Meta(ctx context.Context) (*model.VaultMeta, error) {
	data, err := m.durable.Get(ctx, store.KeyVaultMeta)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, model.ErrNoVaultFound
		}
		return nil, fmt.Errorf("failed to load vault meta: %w", err)
	}

	var meta model.VaultMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vault meta: %w", err)
	}
	return &meta, nil
}

// SetAutoLock changes the idle timeout. When unlocked, the deadline is
// immediately re-armed from the new value.
func (m *Manager) SetAutoLock(timeout time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.timeout = timeout
	if m.vault != nil {
		m.armLocked()
	}
}

// AutoLock returns the configured idle timeout.
func (m *Manager) AutoLock() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeout
}

// CreateVault encrypts and persists a new vault plus its plaintext
// metadata, then installs it as the live session. Refuses to overwrite an
// existing vault.
// password must be []byte for security (caller should zero it after use)
func (m *Manager) CreateVault(ctx context.Context, v *model.DecryptedVault, password []byte) error {
	if _, err := m.durable.Get(ctx, store.KeyVaultEncrypted); err == nil {
		return model.ErrVaultExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to check existing vault: %w", err)
	}

	blob, err := vault.EncryptVaultData(v, password)
	if err != nil {
		return fmt.Errorf("failed to encrypt vault: %w", err)
	}

	blobData, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("failed to marshal vault blob: %w", err)
	}

	meta := &model.VaultMeta{
		Version:       vault.FormatVersion,
		CreatedAt:     time.Now().Format(time.RFC3339),
		EVMAddress:    v.EVMAddress,
		SolanaAddress: v.SolanaAddress,
	}
	if qr, err := receiveQR(v); err == nil {
		meta.QR = qr
	} else {
		m.log.Warn().Err(err).Msg("failed to generate address QR code")
	}

	metaData, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal vault meta: %w", err)
	}

	if err := m.durable.Put(ctx, store.KeyVaultEncrypted, blobData); err != nil {
		return fmt.Errorf("failed to store vault: %w", err)
	}
	if err := m.durable.Put(ctx, store.KeyVaultMeta, metaData); err != nil {
		return fmt.Errorf("failed to store vault meta: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vault != nil {
		m.vault.Wipe()
	}
	m.vault = v.Copy()
	m.armLocked()
	m.mirrorLocked(ctx)

	m.log.Info().
		Str("evmAddress", v.EVMAddress).
		Str("solanaAddress", v.SolanaAddress).
		Msg("vault created")
	return nil
}

// DeleteVault removes blob, metadata and mirror, and locks the session.
func (m *Manager) DeleteVault(ctx context.Context) error {
	m.mu.Lock()
	m.lockLocked(ctx, "vault deleted")
	m.mu.Unlock()

	if err := m.durable.Delete(ctx, store.KeyVaultEncrypted); err != nil {
		return fmt.Errorf("failed to delete vault: %w", err)
	}
	if err := m.durable.Delete(ctx, store.KeyVaultMeta); err != nil {
		return fmt.Errorf("failed to delete vault meta: %w", err)
	}
	return nil
}

// Close locks the session without touching the mirror, so a graceful
// shutdown can still warm-resume.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.vault != nil {
		m.vault.Wipe()
		m.vault = nil
	}
}

// unlockedLocked reports whether the session is live, enforcing the
// deadline lazily so a stale timer can never extend a session. Caller
// holds mu.
func (m *Manager) unlockedLocked(ctx context.Context) bool {
	if m.vault == nil {
		return false
	}
	if m.timeout > 0 && !m.deadline.After(time.Now()) {
		m.lockLocked(ctx, "idle timeout")
		return false
	}
	return true
}

// armLocked resets the sliding deadline to now + timeout. Caller holds mu.
func (m *Manager) armLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.timeout <= 0 {
		m.deadline = time.Time{}
		return
	}
	m.deadline = time.Now().Add(m.timeout)
	m.timer = time.AfterFunc(m.timeout, m.expire)
}

// expire fires from the auto-lock timer. The deadline is rechecked under
// the mutex because an operation may have slid it forward after the timer
// was armed.
func (m *Manager) expire() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vault == nil || m.timeout <= 0 {
		return
	}
	if m.deadline.After(time.Now()) {
		return
	}
	m.lockLocked(ctx, "idle timeout")
}

// mirrorLocked writes the live vault to the volatile mirror. Best-effort:
// an unavailable mirror costs restart survival, nothing else. Caller
// holds mu.
func (m *Manager) mirrorLocked(ctx context.Context) {
	if m.vault == nil {
		return
	}
	data, err := json.Marshal(m.vault)
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to serialize session mirror")
		return
	}
	if err := m.mirror.Put(ctx, store.KeyVaultSession, data); err != nil {
		m.log.Warn().Err(err).Msg("session mirror write failed")
	}
	clear(data)
}

// clearMirror deletes the mirror key. Runs on every lock transition.
func (m *Manager) clearMirror(ctx context.Context) {
	if err := m.mirror.Delete(ctx, store.KeyVaultSession); err != nil {
		m.log.Warn().Err(err).Msg("session mirror clear failed")
	}
}

// receiveQR renders the receiving address as a base64 PNG. EVM address
// preferred, Solana when the vault is Solana-only.
func receiveQR(v *model.DecryptedVault) (string, error) {
	address := v.EVMAddress
	if address == "" {
		address = v.SolanaAddress
	}
	if address == "" {
		return "", errors.New("vault has no address")
	}

	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}
	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
