package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"affiliatenest/internal/models"
	"affiliatenest/internal/services"
	"affiliatenest/internal/utils"
	"affiliatenest/pkg/mailer"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	registerResp *services.RegisterResponse
	registerErr  error
	verifyErr    error
	loginResp    *services.LoginResponse
	loginErr     error
}

func (s *stubAuthService) Register(ctx context.Context, request *services.RegisterRequest) (*services.RegisterResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return &models.User{Verified: true}, nil
}

func (s *stubAuthService) Login(ctx context.Context, request *services.LoginRequest) (*services.LoginResponse, error) {
	return s.loginResp, s.loginErr
}

type stubMailer struct {
	verifyErr error
}

func (m *stubMailer) Send(ctx context.Context, msg mailer.Message) error { return nil }
func (m *stubMailer) Verify(ctx context.Context) error                   { return m.verifyErr }

func newAuthTestRouter(svc services.AuthService, mail mailer.Mailer, frontendURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(svc, mail, frontendURL)

	router := gin.New()
	router.POST("/api/auth/register", handler.Register)
	router.GET("/api/auth/verify/:token", handler.Verify)
	router.POST("/api/auth/login", handler.Login)
	router.GET("/api/auth/test-email", handler.TestEmail)
	return router
}

func TestRegisterHandlerReturns201(t *testing.T) {
	svc := &stubAuthService{
		registerResp: &services.RegisterResponse{
			Message: "Account created. Please verify your email.",
			UserID:  "656e6f7567682062797465732100",
		},
	}
	router := newAuthTestRouter(svc, &stubMailer{}, "")

	body := `{"username":"alice","email":"alice@example.com","password":"correct horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "Account created")
}

func TestRegisterHandlerMapsConflict(t *testing.T) {
	svc := &stubAuthService{registerErr: utils.NewConflictError("Email or username already registered")}
	router := newAuthTestRouter(svc, &stubMailer{}, "")

	body := `{"username":"alice","email":"alice@example.com","password":"correct horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "CONFLICT")
}

func TestRegisterHandlerRejectsMalformedJSON(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{}, &stubMailer{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyHandlerRedirectsToFrontend(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{}, &stubMailer{}, "https://app.example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify/sometoken", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "https://app.example.com/dashboard", w.Header().Get("Location"))
}

func TestVerifyHandlerWithoutFrontendReturnsJSON(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{}, &stubMailer{}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify/sometoken", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Email verified")
}

func TestVerifyHandlerMapsInvalidToken(t *testing.T) {
	svc := &stubAuthService{verifyErr: utils.NewValidationError("Invalid or expired token")}
	router := newAuthTestRouter(svc, &stubMailer{}, "https://app.example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify/spent", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestLoginHandlerReturnsToken(t *testing.T) {
	svc := &stubAuthService{
		loginResp: &services.LoginResponse{Token: "jwt-token", User: &models.User{Email: "alice@example.com"}},
	}
	router := newAuthTestRouter(svc, &stubMailer{}, "")

	body := `{"email":"alice@example.com","password":"correct horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "jwt-token")
}

func TestTestEmailHandler(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{}, &stubMailer{}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/test-email", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Email configuration is valid")
}
