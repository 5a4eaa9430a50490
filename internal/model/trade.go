package model

// QuoteRequest asks the trading backend for a quote. Amounts are decimal
// strings; precision is validated before the request leaves the service.
type QuoteRequest struct {
	FromToken string `json:"fromToken" validate:"required"`
	ToToken   string `json:"toToken" validate:"required"`
	Amount    string `json:"amount" validate:"required"`
	Chain     string `json:"chain" validate:"required,oneof=evm solana"`
}

// QuoteResponse is the backend's quote, relayed unchanged.
type QuoteResponse struct {
	Success   bool   `json:"success"`
	QuoteID   string `json:"quoteId"`
	FromToken string `json:"fromToken"`
	ToToken   string `json:"toToken"`
	AmountIn  string `json:"amountIn"`
	AmountOut string `json:"amountOut"`
	ExpiresAt int64  `json:"expiresAt"`
}

// ExecuteTradeRequest executes a previously quoted trade.
type ExecuteTradeRequest struct {
	QuoteID string `json:"quoteId" validate:"required"`
}

// ExecuteTradeResponse is the backend's execution result.
type ExecuteTradeResponse struct {
	Success bool   `json:"success"`
	TradeID string `json:"tradeId"`
	Status  string `json:"status"`
}

// WalletLinkedResponse reports whether the wallet address is linked to a
// backend account.
type WalletLinkedResponse struct {
	Success bool   `json:"success"`
	Linked  bool   `json:"linked"`
	Address string `json:"address"`
}
