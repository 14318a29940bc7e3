package services

import (
	"context"
	"errors"
	"fmt"

	"affiliatenest/internal/models"
	"affiliatenest/internal/repositories/interfaces"
	"affiliatenest/internal/utils"
	"affiliatenest/pkg/logger"
	"affiliatenest/pkg/mailer"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, request *RegisterRequest) (*RegisterResponse, error)
	VerifyEmail(ctx context.Context, token string) (*models.User, error)
	Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error)
}

type RegisterRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=30"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=128"`
	ReferralLink string `json:"referralLink"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type authService struct {
	userRepo        interfaces.UserRepository
	referralService ReferralService
	mailer          mailer.Mailer
	jwtSecret       string
	baseURL         string
	frontendURL     string
	logger          *logger.Logger
}

func NewAuthService(
	userRepo interfaces.UserRepository,
	referralService ReferralService,
	mail mailer.Mailer,
	jwtSecret string,
	baseURL string,
	frontendURL string,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepo:        userRepo,
		referralService: referralService,
		mailer:          mail,
		jwtSecret:       jwtSecret,
		baseURL:         baseURL,
		frontendURL:     frontendURL,
		logger:          logger,
	}
}

// Register runs the registration sequence: validate, persist the unverified
// user, attribute the referral if a link was supplied, then dispatch the
// verification email. User creation strictly precedes attribution, which
// strictly precedes notification; there is no cross-step transaction.
func (s *authService) Register(ctx context.Context, request *RegisterRequest) (*RegisterResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, utils.NewValidationError("invalid registration: " + err.Error())
	}

	email := utils.NormalizeEmail(request.Email)

	if err := s.checkNotRegistered(ctx, email, request.Username); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewDependencyError("failed to hash password", err)
	}

	user := &models.User{
		Username:          request.Username,
		Email:             email,
		Password:          string(hashedPassword),
		Role:              models.UserRoleAffiliate,
		Verified:          false,
		VerificationToken: utils.GenerateVerificationToken(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, interfaces.ErrDuplicateKey) {
			// Lost a race with a concurrent registration; the unique
			// indexes are the arbiter.
			return nil, utils.NewConflictError("Email or username already registered")
		}
		return nil, utils.NewDependencyError("failed to create user", err)
	}

	// Referral attribution is best-effort: a bad or missing link must never
	// fail the registration. The result is discarded here on purpose.
	if request.ReferralLink != "" {
		if _, err := s.referralService.RecordSignup(ctx, request.ReferralLink, user.ID); err != nil {
			s.logger.WithUserID(user.ID).WithError(err).Warn("Referral attribution skipped")
		}
	}

	if err := s.sendVerificationEmail(ctx, user); err != nil {
		// The account already persists; see DESIGN.md for the open
		// question around rolling it back.
		s.logger.WithUserID(user.ID).WithError(err).Error("Verification email dispatch failed")
		return nil, utils.NewDependencyError("Failed to send verification email", err)
	}

	s.logger.WithUserID(user.ID).WithField("email", utils.MaskEmail(user.Email)).Info("User registered")

	return &RegisterResponse{
		Message: "Account created. Please verify your email.",
		UserID:  user.ID.Hex(),
	}, nil
}

// VerifyEmail consumes a verification token. The transition is terminal: a
// second presentation of the same token fails with an invalid-token error.
func (s *authService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, utils.NewValidationError("Invalid or expired token")
	}

	user, err := s.userRepo.ConsumeVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, utils.NewValidationError("Invalid or expired token")
		}
		return nil, utils.NewDependencyError("failed to verify email", err)
	}

	s.logger.WithUserID(user.ID).Info("Email verified")

	return user, nil
}

func (s *authService) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, utils.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, utils.NormalizeEmail(request.Email))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, utils.NewValidationError("Invalid credentials")
		}
		return nil, utils.NewDependencyError("failed to look up user", err)
	}

	if !user.Verified {
		return nil, utils.NewValidationError("Please verify your email")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)) != nil {
		s.logger.WithField("email", utils.MaskEmail(user.Email)).Warn("Login attempt with invalid credentials")
		return nil, utils.NewValidationError("Invalid credentials")
	}

	token, err := utils.GenerateAccessToken(user.ID, string(user.Role), s.jwtSecret)
	if err != nil {
		return nil, utils.NewDependencyError("failed to generate token", err)
	}

	s.logger.WithUserID(user.ID).Info("User logged in")

	return &LoginResponse{
		Token: token,
		User:  user,
	}, nil
}

func (s *authService) checkNotRegistered(ctx context.Context, email, username string) error {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return utils.NewConflictError("Email or username already registered")
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return utils.NewDependencyError("failed to check email", err)
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return utils.NewConflictError("Email or username already registered")
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return utils.NewDependencyError("failed to check username", err)
	}

	return nil
}

func (s *authService) sendVerificationEmail(ctx context.Context, user *models.User) error {
	verificationURL := fmt.Sprintf("%s/api/auth/verify/%s", s.baseURL, user.VerificationToken)

	return s.mailer.Send(ctx, mailer.Message{
		To:      user.Email,
		Subject: "Verify Your AffiliateNest Account",
		Body: fmt.Sprintf(
			`<p>Thank you for signing up! Please verify your email by clicking <a href="%s">here</a>.</p>`,
			verificationURL,
		),
		HTML: true,
	})
}
