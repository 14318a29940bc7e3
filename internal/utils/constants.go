package utils

import "time"

// Application Constants
const (
	AppName    = "AffiliateNest"
	AppVersion = "1.0.7"

	// Response status
	StatusSuccess = "success"
	StatusError   = "error"

	// Authentication
	JWTAccessTokenTTL      = 24 * time.Hour
	PasswordMinLength      = 8
	PasswordMaxLength      = 128
	VerificationTokenBytes = 32

	// Affiliate links
	LinkTokenLength      = 8
	LinkTokenRetryBudget = 3
	LinkPathPrefix       = "/ref/"

	// Widget
	WidgetCacheTTL = time.Minute

	// Rate Limiting
	RegisterRateLimit  = 5
	RegisterRateWindow = 15 * time.Minute
	LoginRateLimit     = 10
	LoginRateWindow    = 15 * time.Minute

	// Common error messages
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized"
	ErrForbidden        = "Forbidden"
)
