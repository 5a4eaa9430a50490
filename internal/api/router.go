package api

import (
	"net/http"

	"tradewallet/internal/handler"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up the router with handlers
func SetupRouter(walletHandler *handler.WalletHandler, tradingHandler *handler.TradingHandler) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Vault endpoints
	mux.HandleFunc("/vault/create", walletHandler.Create)
	mux.HandleFunc("/vault/import", walletHandler.Import)
	mux.HandleFunc("/vault/unlock", walletHandler.Unlock)
	mux.HandleFunc("/vault/lock", walletHandler.Lock)
	mux.HandleFunc("/vault/data", walletHandler.VaultData)

	// Session endpoints
	mux.HandleFunc("/session", walletHandler.Session)
	mux.HandleFunc("/session/reset", walletHandler.ResetTimer)
	mux.HandleFunc("/settings/autolock", autoLockMux(walletHandler))

	// Trading endpoints
	mux.HandleFunc("/trade/quote", tradingHandler.Quote)
	mux.HandleFunc("/trade/execute", tradingHandler.Execute)
	mux.HandleFunc("/wallet/linked", tradingHandler.WalletLinked)

	// Health
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"walletd"}`))
	})

	return mux
}

// autoLockMux dispatches GET/PUT on the same path.
func autoLockMux(h *handler.WalletHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetAutoLock(w, r)
		case http.MethodPut:
			h.SetAutoLock(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
