package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"tradewallet/internal/model"
)

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps core errors to HTTP statuses. Wrong password and a
// corrupted blob arrive here as the same error, so no oracle leaks out.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal"

	switch {
	case errors.Is(err, model.ErrWrongPassword):
		status, code = http.StatusUnauthorized, "wrong_password"
	case errors.Is(err, model.ErrWalletLocked):
		status, code = http.StatusUnauthorized, "wallet_locked"
	case errors.Is(err, model.ErrNoVaultFound):
		status, code = http.StatusNotFound, "no_vault"
	case errors.Is(err, model.ErrVaultExists):
		status, code = http.StatusConflict, "vault_exists"
	case errors.Is(err, model.ErrInvalidMnemonic):
		status, code = http.StatusBadRequest, "invalid_mnemonic"
	case errors.Is(err, model.ErrInvalidKeyFormat):
		status, code = http.StatusBadRequest, "invalid_key"
	case errors.Is(err, model.ErrSigningFailure):
		status, code = http.StatusInternalServerError, "signing_failure"
	case errors.Is(err, model.ErrStorageUnavailable):
		status, code = http.StatusServiceUnavailable, "storage_unavailable"
	}

	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

// writeBadRequest reports a malformed or invalid request body.
func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: "bad_request"})
}
