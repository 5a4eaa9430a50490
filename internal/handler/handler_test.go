package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tradewallet/internal/api"
	"tradewallet/internal/auth"
	"tradewallet/internal/client"
	"tradewallet/internal/handler"
	"tradewallet/internal/model"
	"tradewallet/internal/session"
	"tradewallet/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "test-password-123"

// EIP-155 example key; imports to 0x9d8A62f656a8d1615C1294fd71e9CFb3E4855A4F.
const testEVMKey = "0x4646464646464646464646464646464646464646464646464646464646464646"

type fixture struct {
	server   *httptest.Server
	backend  *httptest.Server
	sessions *session.Manager
}

// newFixture wires the full router over in-memory stores and a fake
// trading backend that checks auth headers and echoes canned responses.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(auth.HeaderAddress) == "" ||
			r.Header.Get(auth.HeaderSignature) == "" ||
			r.Header.Get(auth.HeaderTimestamp) == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/quote":
			json.NewEncoder(w).Encode(model.QuoteResponse{Success: true, QuoteID: "q-1", AmountOut: "2.5"})
		case "/v1/trade":
			json.NewEncoder(w).Encode(model.ExecuteTradeResponse{Success: true, TradeID: "t-1", Status: "filled"})
		case "/v1/wallet/linked":
			json.NewEncoder(w).Encode(model.WalletLinkedResponse{Success: true, Linked: true, Address: r.Header.Get(auth.HeaderAddress)})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(backend.Close)

	sessions := session.NewManager(store.NewMemoryStore(), store.NewMemoryStore(), time.Minute, zerolog.Nop())
	t.Cleanup(sessions.Close)

	authn := auth.NewAuthenticator(sessions)
	trading := client.NewTradingClient(backend.URL, authn)

	router := api.SetupRouter(
		handler.NewWalletHandler(sessions, zerolog.Nop()),
		handler.NewTradingHandler(trading, zerolog.Nop()),
	)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &fixture{server: server, backend: backend, sessions: sessions}
}

func (f *fixture) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, f.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func (f *fixture) importVault(t *testing.T) {
	t.Helper()
	resp, body := f.do(t, http.MethodPost, "/vault/import", model.ImportVaultRequest{
		EVMKey:   testEVMKey,
		Password: testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
}

func TestSessionEmpty(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodGet, "/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out model.SessionResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Success)
	assert.False(t, out.Data.Unlocked)
	assert.False(t, out.Data.HasVault)
}

func TestImportUnlockLockFlow(t *testing.T) {
	f := newFixture(t)
	f.importVault(t)

	// Import leaves the session unlocked.
	resp, body := f.do(t, http.MethodGet, "/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sess model.SessionResponse
	require.NoError(t, json.Unmarshal(body, &sess))
	assert.True(t, sess.Data.Unlocked)
	assert.True(t, sess.Data.HasVault)

	// Vault data is readable while unlocked.
	resp, body = f.do(t, http.MethodGet, "/vault/data", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var data model.VaultDataResponse
	require.NoError(t, json.Unmarshal(body, &data))
	require.NotNil(t, data.Data)
	assert.Equal(t, testEVMKey, data.Data.EVMPrivateKey)
	assert.Equal(t, "0x9d8A62f656a8d1615C1294fd71e9CFb3E4855A4F", data.Data.EVMAddress)

	// Lock, then vault data must be refused.
	resp, _ = f.do(t, http.MethodPost, "/vault/lock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = f.do(t, http.MethodGet, "/vault/data", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "wallet_locked", errResp.Code)
}

func TestUnlockWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.importVault(t)
	f.do(t, http.MethodPost, "/vault/lock", nil)

	resp, body := f.do(t, http.MethodPost, "/vault/unlock", model.UnlockRequest{Password: "wrong password"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "wrong_password", errResp.Code)
}

func TestUnlockNoVault(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodPost, "/vault/unlock", model.UnlockRequest{Password: "whatever"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "no_vault", errResp.Code)
}

func TestUnlockValidation(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, http.MethodPost, "/vault/unlock", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestImportRejectsBadKey(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodPost, "/vault/import", model.ImportVaultRequest{
		EVMKey:   "0x1234",
		Password: testPassword,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "invalid_key", errResp.Code)
}

func TestAutoLockSettings(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, http.MethodPut, "/settings/autolock", model.AutoLockRequest{Minutes: 30})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := f.do(t, http.MethodGet, "/settings/autolock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out model.AutoLockResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, 30, out.Data.Minutes)
}

func TestTradeQuoteAttachesAuth(t *testing.T) {
	f := newFixture(t)
	f.importVault(t)

	resp, body := f.do(t, http.MethodPost, "/trade/quote", model.QuoteRequest{
		FromToken: "USDC",
		ToToken:   "SOL",
		Amount:    "10.5",
		Chain:     "solana",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out model.QuoteResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "q-1", out.QuoteID)
}

func TestTradeQuoteRejectsBadAmount(t *testing.T) {
	f := newFixture(t)
	f.importVault(t)

	resp, _ := f.do(t, http.MethodPost, "/trade/quote", model.QuoteRequest{
		FromToken: "USDC",
		ToToken:   "SOL",
		Amount:    "0",
		Chain:     "solana",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTradeRequiresUnlockedWallet(t *testing.T) {
	f := newFixture(t)
	f.importVault(t)
	f.do(t, http.MethodPost, "/vault/lock", nil)

	resp, body := f.do(t, http.MethodGet, "/wallet/linked", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "wallet_locked", errResp.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, http.MethodGet, "/vault/unlock", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
