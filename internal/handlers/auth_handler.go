package handlers

import (
	"net/http"

	"affiliatenest/internal/services"
	"affiliatenest/internal/utils"
	"affiliatenest/pkg/mailer"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	mailer      mailer.Mailer
	frontendURL string
}

func NewAuthHandler(authService services.AuthService, mail mailer.Mailer, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		mailer:      mail,
		frontendURL: frontendURL,
	}
}

// Register creates a new account and dispatches the verification email.
func (h *AuthHandler) Register(c *gin.Context) {
	var request services.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.Register(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, response.Message, response)
}

// Verify consumes a verification token from the emailed link.
func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.Param("token")

	_, err := h.authService.VerifyEmail(c.Request.Context(), token)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	if h.frontendURL != "" {
		c.Redirect(http.StatusFound, h.frontendURL+"/dashboard")
		return
	}

	utils.SuccessResponse(c, "Email verified", nil)
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var request services.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Logged in", response)
}

// TestEmail probes the SMTP configuration without sending a message.
func (h *AuthHandler) TestEmail(c *gin.Context) {
	if err := h.mailer.Verify(c.Request.Context()); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, string(utils.ErrCodeDependency), "Email config error: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Email configuration is valid", nil)
}
