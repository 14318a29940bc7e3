package payment

import "context"

type TransferRequest struct {
	// Amount in major currency units (dollars).
	Amount      float64
	Currency    string
	Destination string
	Description string
}

type TransferResponse struct {
	TransferID  string  `json:"transfer_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Destination string  `json:"destination"`
	CreatedAt   int64   `json:"created_at"`
}

// TransferProvider moves commission money to an affiliate's connected
// payout account.
type TransferProvider interface {
	CreateTransfer(ctx context.Context, request *TransferRequest) (*TransferResponse, error)
}
