package services

import (
	"context"
	"errors"

	"affiliatenest/internal/models"
	"affiliatenest/internal/repositories/interfaces"
	"affiliatenest/internal/utils"
	"affiliatenest/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReferralService interface {
	// RecordVisit creates a new pending referral for every tracked visit.
	// Visits are deliberately not deduplicated: each one is a funnel event.
	RecordVisit(ctx context.Context, linkToken string) (*models.Referral, error)

	// RecordSignup attributes a completed registration to the link. At
	// most one signup referral exists per referred user; a repeated call
	// returns the existing record.
	RecordSignup(ctx context.Context, linkToken string, referredUserID primitive.ObjectID) (*models.Referral, error)

	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Referral, error)
}

type referralService struct {
	linkRepo     interfaces.LinkRepository
	referralRepo interfaces.ReferralRepository
	logger       *logger.Logger
}

func NewReferralService(
	linkRepo interfaces.LinkRepository,
	referralRepo interfaces.ReferralRepository,
	logger *logger.Logger,
) ReferralService {
	return &referralService{
		linkRepo:     linkRepo,
		referralRepo: referralRepo,
		logger:       logger,
	}
}

func (s *referralService) RecordVisit(ctx context.Context, linkToken string) (*models.Referral, error) {
	link, err := s.resolveLink(ctx, linkToken)
	if err != nil {
		return nil, err
	}

	referral := &models.Referral{
		LinkID:    link.ID,
		OwnerID:   link.OwnerID,
		ProgramID: link.ProgramID,
		Status:    models.ReferralStatusPending,
	}
	if err := s.referralRepo.Create(ctx, referral); err != nil {
		return nil, utils.NewDependencyError("failed to record referral", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"link_id":    link.ID.Hex(),
		"program_id": link.ProgramID.Hex(),
	}).Info("Referral visit tracked")

	return referral, nil
}

func (s *referralService) RecordSignup(ctx context.Context, linkToken string, referredUserID primitive.ObjectID) (*models.Referral, error) {
	link, err := s.resolveLink(ctx, linkToken)
	if err != nil {
		return nil, err
	}

	// A user registers once, but guard against a retried registration
	// request attributing the same signup twice.
	existing, err := s.referralRepo.GetByReferredUser(ctx, referredUserID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, utils.NewDependencyError("failed to check existing referral", err)
	}

	referral := &models.Referral{
		LinkID:         link.ID,
		OwnerID:        link.OwnerID,
		ProgramID:      link.ProgramID,
		ReferredUserID: &referredUserID,
		Status:         models.ReferralStatusPending,
	}
	if err := s.referralRepo.Create(ctx, referral); err != nil {
		return nil, utils.NewDependencyError("failed to record referral", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"link_id":          link.ID.Hex(),
		"program_id":       link.ProgramID.Hex(),
		"referred_user_id": referredUserID.Hex(),
	}).Info("Signup referral attributed")

	return referral, nil
}

func (s *referralService) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Referral, error) {
	referrals, err := s.referralRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.NewDependencyError("failed to list referrals", err)
	}
	return referrals, nil
}

func (s *referralService) resolveLink(ctx context.Context, linkToken string) (*models.AffiliateLink, error) {
	token := utils.ExtractLinkToken(linkToken)
	if token == "" {
		return nil, utils.NewNotFoundError("link")
	}

	link, err := s.linkRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, utils.NewNotFoundError("link")
		}
		return nil, utils.NewDependencyError("failed to resolve link", err)
	}

	return link, nil
}
