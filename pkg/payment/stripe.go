package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type StripeProvider struct {
	client *client.API
}

func NewStripeProvider(secretKey string) *StripeProvider {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &StripeProvider{
		client: sc,
	}
}

func (s *StripeProvider) CreateTransfer(ctx context.Context, request *TransferRequest) (*TransferResponse, error) {
	params := &stripe.TransferParams{
		Amount:      stripe.Int64(int64(request.Amount * 100)), // Convert to cents
		Currency:    stripe.String(request.Currency),
		Destination: stripe.String(request.Destination),
		Description: stripe.String(request.Description),
	}
	params.Context = ctx

	transfer, err := s.client.Transfers.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}

	return &TransferResponse{
		TransferID:  transfer.ID,
		Amount:      float64(transfer.Amount) / 100,
		Currency:    string(transfer.Currency),
		Destination: request.Destination,
		CreatedAt:   transfer.Created,
	}, nil
}
