package services

import (
	"context"
	"errors"
	"fmt"

	"affiliatenest/internal/repositories/interfaces"
	"affiliatenest/internal/utils"
	"affiliatenest/pkg/logger"
	"affiliatenest/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PayoutService interface {
	Payout(ctx context.Context, requesterID primitive.ObjectID, request *PayoutRequest) (*payment.TransferResponse, error)
}

type PayoutRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	AffiliateID string  `json:"affiliateId" validate:"required"`
}

type payoutService struct {
	userRepo interfaces.UserRepository
	provider payment.TransferProvider
	currency string
	logger   *logger.Logger
}

func NewPayoutService(
	userRepo interfaces.UserRepository,
	provider payment.TransferProvider,
	currency string,
	logger *logger.Logger,
) PayoutService {
	return &payoutService{
		userRepo: userRepo,
		provider: provider,
		currency: currency,
		logger:   logger,
	}
}

// Payout transfers a commission to the affiliate's connected payout
// account. Settlement bookkeeping (marking referrals completed) is handled
// by the settlement process, not here.
func (s *payoutService) Payout(ctx context.Context, requesterID primitive.ObjectID, request *PayoutRequest) (*payment.TransferResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, utils.NewValidationError("invalid payout: " + err.Error())
	}

	affiliateID, err := primitive.ObjectIDFromHex(request.AffiliateID)
	if err != nil {
		return nil, utils.NewValidationError("invalid affiliate id")
	}

	affiliate, err := s.userRepo.GetByID(ctx, affiliateID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, utils.NewNotFoundError("affiliate")
		}
		return nil, utils.NewDependencyError("failed to look up affiliate", err)
	}

	if affiliate.StripeAccountID == "" {
		return nil, utils.NewValidationError("Affiliate has no payout account")
	}

	transfer, err := s.provider.CreateTransfer(ctx, &payment.TransferRequest{
		Amount:      request.Amount,
		Currency:    s.currency,
		Destination: affiliate.StripeAccountID,
		Description: fmt.Sprintf("Affiliate commission for %s", affiliate.Email),
	})
	if err != nil {
		return nil, utils.NewDependencyError("failed to create transfer", err)
	}

	s.logger.WithUserID(requesterID).WithFields(map[string]interface{}{
		"affiliate_id": affiliate.ID.Hex(),
		"transfer_id":  transfer.TransferID,
		"amount":       transfer.Amount,
	}).Info("Affiliate payout transferred")

	return transfer, nil
}
