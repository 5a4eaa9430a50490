package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"tradewallet/internal/client"
	"tradewallet/internal/common"
	"tradewallet/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// TradingHandler relays trade operations to the external backend,
// attaching signed wallet credentials on the way out.
type TradingHandler struct {
	trading  *client.TradingClient
	validate *validator.Validate
	log      zerolog.Logger
}

// NewTradingHandler creates a TradingHandler over the trading client.
func NewTradingHandler(trading *client.TradingClient, log zerolog.Logger) *TradingHandler {
	return &TradingHandler{
		trading:  trading,
		validate: validator.New(),
		log:      log,
	}
}

// Quote handles POST /trade/quote
// @Summary      Get a trade quote
// @Description  Validates the amount and forwards the quote request to the trading backend with auth headers
// @Tags         trading
// @Accept       json
// @Produce      json
// @Param        request  body      model.QuoteRequest  true  "Quote request"
// @Success      200      {object}  model.QuoteResponse
// @Router       /trade/quote [post]
func (h *TradingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	if err := common.ValidateAmount(req.Amount, req.FromToken); err != nil {
		writeBadRequest(w, err)
		return
	}

	resp, err := h.trading.GetQuote(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Execute handles POST /trade/execute
// @Summary      Execute a quoted trade
// @Tags         trading
// @Accept       json
// @Produce      json
// @Param        request  body      model.ExecuteTradeRequest  true  "Execution request"
// @Success      200      {object}  model.ExecuteTradeResponse
// @Router       /trade/execute [post]
func (h *TradingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ExecuteTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeBadRequest(w, err)
		return
	}

	start := time.Now()
	resp, err := h.trading.ExecuteTrade(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	h.log.Info().
		Str("tradeId", resp.TradeID).
		Dur("elapsed", time.Since(start)).
		Msg("trade executed")
	writeJSON(w, http.StatusOK, resp)
}

// WalletLinked handles GET /wallet/linked
// @Summary      Check wallet link status
// @Description  Asks the trading backend whether the wallet address is linked to an account
// @Tags         trading
// @Produce      json
// @Success      200  {object}  model.WalletLinkedResponse
// @Router       /wallet/linked [get]
func (h *TradingHandler) WalletLinked(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.trading.CheckWalletLinked(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
