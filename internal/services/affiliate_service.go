package services

import (
	"context"
	"errors"
	"strings"

	"affiliatenest/internal/models"
	"affiliatenest/internal/repositories/interfaces"
	"affiliatenest/internal/utils"
	"affiliatenest/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AffiliateService interface {
	CreateProgram(ctx context.Context, ownerID primitive.ObjectID, request *CreateProgramRequest) (*models.AffiliateProgram, error)
	ListPrograms(ctx context.Context, ownerID primitive.ObjectID) ([]*models.AffiliateProgram, error)
	GenerateLink(ctx context.Context, ownerID, programID primitive.ObjectID) (*GenerateLinkResponse, error)
}

type CreateProgramRequest struct {
	Name           string              `json:"name" validate:"required,min=2,max=100"`
	CommissionRate float64             `json:"commissionRate" validate:"gte=0,lte=100"`
	WidgetStyles   *WidgetStyleRequest `json:"widgetStyles"`
}

type WidgetStyleRequest struct {
	BackgroundColor string `json:"backgroundColor" validate:"widget_color"`
	TextColor       string `json:"textColor" validate:"widget_color"`
	ButtonColor     string `json:"buttonColor" validate:"widget_color"`
}

type GenerateLinkResponse struct {
	Link      string `json:"link"`
	EmbedCode string `json:"embedCode"`
	Token     string `json:"token"`
}

type affiliateService struct {
	programRepo interfaces.ProgramRepository
	linkRepo    interfaces.LinkRepository
	linkBaseURL string
	apiBaseURL  string
	logger      *logger.Logger
}

func NewAffiliateService(
	programRepo interfaces.ProgramRepository,
	linkRepo interfaces.LinkRepository,
	linkBaseURL string,
	apiBaseURL string,
	logger *logger.Logger,
) AffiliateService {
	return &affiliateService{
		programRepo: programRepo,
		linkRepo:    linkRepo,
		linkBaseURL: linkBaseURL,
		apiBaseURL:  apiBaseURL,
		logger:      logger,
	}
}

func (s *affiliateService) CreateProgram(ctx context.Context, ownerID primitive.ObjectID, request *CreateProgramRequest) (*models.AffiliateProgram, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, utils.NewValidationError("invalid program: " + err.Error())
	}

	program := &models.AffiliateProgram{
		OwnerID:        ownerID,
		Name:           strings.TrimSpace(request.Name),
		CommissionRate: request.CommissionRate,
	}
	if request.WidgetStyles != nil {
		program.WidgetStyle = models.WidgetStyle{
			BackgroundColor: request.WidgetStyles.BackgroundColor,
			TextColor:       request.WidgetStyles.TextColor,
			ButtonColor:     request.WidgetStyles.ButtonColor,
		}
	}
	program.WidgetStyle.ApplyDefaults()

	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, utils.NewDependencyError("failed to create program", err)
	}

	s.logger.WithUserID(ownerID).WithField("program_id", program.ID.Hex()).Info("Affiliate program created")

	return program, nil
}

func (s *affiliateService) ListPrograms(ctx context.Context, ownerID primitive.ObjectID) ([]*models.AffiliateProgram, error) {
	programs, err := s.programRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.NewDependencyError("failed to list programs", err)
	}
	return programs, nil
}

// GenerateLink issues a new trackable link for a program the requester owns.
// Token uniqueness is enforced by the storage-level unique index; on a
// duplicate-key insert the token is regenerated, up to a bounded budget.
func (s *affiliateService) GenerateLink(ctx context.Context, ownerID, programID primitive.ObjectID) (*GenerateLinkResponse, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, utils.NewNotFoundError("program")
		}
		return nil, utils.NewDependencyError("failed to resolve program", err)
	}

	if program.OwnerID != ownerID {
		return nil, utils.NewUnauthorizedError("Unauthorized")
	}

	for attempt := 1; attempt <= utils.LinkTokenRetryBudget; attempt++ {
		link := &models.AffiliateLink{
			OwnerID:   ownerID,
			ProgramID: programID,
			Token:     s.newToken(programID),
		}

		err := s.linkRepo.Create(ctx, link)
		if err == nil {
			linkURL := utils.BuildLinkURL(s.linkBaseURL, link.Token)
			s.logger.WithUserID(ownerID).WithFields(map[string]interface{}{
				"program_id": programID.Hex(),
				"link_id":    link.ID.Hex(),
			}).Info("Affiliate link issued")

			return &GenerateLinkResponse{
				Link:      linkURL,
				EmbedCode: utils.BuildEmbedCode(s.apiBaseURL, linkURL),
				Token:     link.Token,
			}, nil
		}

		if !errors.Is(err, interfaces.ErrDuplicateKey) {
			return nil, utils.NewDependencyError("failed to persist link", err)
		}

		s.logger.WithField("attempt", attempt).Warn("Link token collision, regenerating")
	}

	return nil, utils.NewConflictError("could not allocate a unique link token")
}

func (s *affiliateService) newToken(programID primitive.ObjectID) string {
	return programID.Hex() + "-" + strings.ToLower(utils.GenerateRandomString(utils.LinkTokenLength))
}
