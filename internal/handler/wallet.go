package handler

import (
	"encoding/json"
	"net/http"

	"tradewallet/internal/keys"
	"tradewallet/internal/model"
	"tradewallet/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// WalletHandler exposes the vault and session operations to the UI layer.
type WalletHandler struct {
	sessions *session.Manager
	validate *validator.Validate
	log      zerolog.Logger
}

// NewWalletHandler creates a WalletHandler over the session manager.
func NewWalletHandler(sessions *session.Manager, log zerolog.Logger) *WalletHandler {
	return &WalletHandler{
		sessions: sessions,
		validate: validator.New(),
		log:      log,
	}
}

// decode unmarshals and validates a typed request body.
func (h *WalletHandler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return h.validate.Struct(dst)
}

// Create handles POST /vault/create
// @Summary      Create vault from mnemonic
// @Description  Derives EVM and Solana keypairs from a BIP-39 mnemonic (generated when omitted) and stores the encrypted vault
// @Tags         vault
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateVaultRequest  true  "Creation data"
// @Success      200      {object}  model.CreateVaultResponse
// @Router       /vault/create [post]
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.CreateVaultRequest
	if err := h.decode(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	generated := false
	mnemonic := req.Mnemonic
	if mnemonic == "" {
		var err error
		mnemonic, err = keys.GenerateMnemonic()
		if err != nil {
			writeError(w, err)
			return
		}
		generated = true
	}

	v, err := keys.DeriveFromMnemonic(mnemonic)
	if err != nil {
		writeError(w, err)
		return
	}
	defer v.Wipe()

	password := []byte(req.Password)
	defer clear(password)

	if err := h.sessions.CreateVault(r.Context(), v, password); err != nil {
		writeError(w, err)
		return
	}

	resp := model.CreateVaultResponse{
		Success:       true,
		EVMAddress:    v.EVMAddress,
		SolanaAddress: v.SolanaAddress,
	}
	// A generated phrase is shown exactly once; after this response it
	// only exists inside the encrypted vault.
	if generated {
		resp.Mnemonic = v.Mnemonic
	}
	writeJSON(w, http.StatusOK, resp)
}

// Import handles POST /vault/import
// @Summary      Create vault from imported keys
// @Description  Builds a vault from an EVM and/or a Solana private key
// @Tags         vault
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportVaultRequest  true  "Import data"
// @Success      200      {object}  model.CreateVaultResponse
// @Router       /vault/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportVaultRequest
	if err := h.decode(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	var evmAddr, evmKey, solAddr, solKey string
	var err error

	if req.EVMKey != "" {
		evmAddr, evmKey, err = keys.ImportPrivateKey(req.EVMKey, keys.ChainEVM)
		if err != nil {
			writeError(w, err)
			return
		}
	}
	if req.SolanaKey != "" {
		solAddr, solKey, err = keys.ImportPrivateKey(req.SolanaKey, keys.ChainSolana)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	v, err := keys.BuildVault(evmKey, evmAddr, solKey, solAddr)
	if err != nil {
		writeError(w, err)
		return
	}
	defer v.Wipe()

	password := []byte(req.Password)
	defer clear(password)

	if err := h.sessions.CreateVault(r.Context(), v, password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.CreateVaultResponse{
		Success:       true,
		EVMAddress:    v.EVMAddress,
		SolanaAddress: v.SolanaAddress,
	})
}

// Unlock handles POST /vault/unlock
// @Summary      Unlock the vault
// @Description  Decrypts the stored vault with the password and starts an unlocked session
// @Tags         vault
// @Accept       json
// @Produce      json
// @Param        request  body      model.UnlockRequest  true  "Password"
// @Success      200      {object}  model.StatusResponse
// @Router       /vault/unlock [post]
func (h *WalletHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.UnlockRequest
	if err := h.decode(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	password := []byte(req.Password)
	defer clear(password)

	if err := h.sessions.Unlock(r.Context(), password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true})
}

// Lock handles POST /vault/lock
// @Summary      Lock the vault
// @Description  Clears the in-memory vault and the session mirror
// @Tags         vault
// @Produce      json
// @Success      200  {object}  model.StatusResponse
// @Router       /vault/lock [post]
func (h *WalletHandler) Lock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	h.sessions.Lock(r.Context())
	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true})
}

// Session handles GET /session
// @Summary      Get session state
// @Description  Reports whether a vault exists and whether it is unlocked, without decryption
// @Tags         session
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /session [get]
func (h *WalletHandler) Session(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	unlocked, hasVault := h.sessions.Status(r.Context())
	writeJSON(w, http.StatusOK, model.SessionResponse{
		Success: true,
		Data:    model.SessionData{Unlocked: unlocked, HasVault: hasVault},
	})
}

// VaultData handles GET /vault/data
// @Summary      Get decrypted vault data
// @Description  Returns the decrypted vault of the unlocked session; resets the idle timer
// @Tags         vault
// @Produce      json
// @Success      200  {object}  model.VaultDataResponse
// @Router       /vault/data [get]
func (h *WalletHandler) VaultData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	v, err := h.sessions.VaultData(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.VaultDataResponse{Success: true, Data: v})
}

// ResetTimer handles POST /session/reset
// @Summary      Reset the idle timer
// @Description  Slides the auto-lock deadline forward without touching vault data
// @Tags         session
// @Produce      json
// @Success      200  {object}  model.StatusResponse
// @Router       /session/reset [post]
func (h *WalletHandler) ResetTimer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	h.sessions.Touch(r.Context())
	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true})
}

// SetAutoLock handles PUT /settings/autolock
// @Summary      Set the auto-lock timeout
// @Description  Sets the idle timeout in minutes; 0 disables auto-lock. Re-arms the deadline immediately when unlocked
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request  body      model.AutoLockRequest  true  "Timeout"
// @Success      200      {object}  model.StatusResponse
// @Router       /settings/autolock [put]
func (h *WalletHandler) SetAutoLock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed. Should be PUT", http.StatusMethodNotAllowed)
		return
	}

	var req model.AutoLockRequest
	if err := h.decode(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	h.sessions.SetAutoLock(minutesToDuration(req.Minutes))
	h.log.Info().Int("minutes", req.Minutes).Msg("auto-lock timeout changed")
	writeJSON(w, http.StatusOK, model.StatusResponse{Success: true})
}

// GetAutoLock handles GET /settings/autolock
// @Summary      Get the auto-lock timeout
// @Tags         settings
// @Produce      json
// @Success      200  {object}  model.AutoLockResponse
// @Router       /settings/autolock [get]
func (h *WalletHandler) GetAutoLock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	var resp model.AutoLockResponse
	resp.Success = true
	resp.Data.Minutes = durationToMinutes(h.sessions.AutoLock())
	writeJSON(w, http.StatusOK, resp)
}
