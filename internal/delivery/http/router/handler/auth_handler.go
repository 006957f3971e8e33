// Package handler contains the HTTP handlers of the auth API.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"authcore/config"
	deliverycontext "authcore/internal/delivery/context"
	"authcore/internal/delivery/http/middleware"
	"authcore/internal/delivery/http/response"
	"authcore/internal/delivery/http/validator"
	"authcore/internal/domain/entity"
	domainerrors "authcore/internal/domain/errors"
	"authcore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// --- Request DTOs ---

type RegisterRequest struct {
	Username  string         `json:"username" validate:"required,min=3,max=100"`
	Surname   string         `json:"surname" validate:"required,min=3,max=100"`
	Password  string         `json:"password" validate:"required,min=6,max=120"`
	BirthDate validator.Date `json:"birthDate" validate:"required,past"`
	Email     string         `json:"email" validate:"required,email,min=6,max=255"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ValidateRequest struct {
	Token string `json:"token"`
}

type ServiceTokenRequest struct {
	APIKey string `json:"apiKey" validate:"required"`
}

// --- Response DTOs ---

type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	AccessTTL    int64  `json:"accessTtl"`
	RefreshTTL   int64  `json:"refreshTtl"`
}

type ValidateResponse struct {
	Valid    bool    `json:"valid"`
	Username *string `json:"username"`
	Message  string  `json:"message"`
}

type ServiceTokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type IdentityResponse struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	Enabled  bool     `json:"enabled"`
}

type LogoutResponse struct {
	RevokedSessions int64 `json:"revokedSessions"`
}

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUsecase         usecase.AuthUsecase
	RegistrationUsecase usecase.RegistrationUsecase
	SessionUsecase      usecase.SessionUsecase
	Config              *config.Config
	Logger              *slog.Logger
}

// AuthHandler serves the token lifecycle and registration endpoints.
type AuthHandler struct {
	authUC         usecase.AuthUsecase
	registrationUC usecase.RegistrationUsecase
	sessionUC      usecase.SessionUsecase
	defaultRole    entity.RoleName
	logger         *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC:         params.AuthUsecase,
		registrationUC: params.RegistrationUsecase,
		sessionUC:      params.SessionUsecase,
		defaultRole:    entity.RoleName(params.Config.Auth.DefaultRole),
		logger:         params.Logger,
	}
}

// Register creates an identity with the configured default role.
func (h *AuthHandler) Register(c echo.Context) error {
	return h.register(c, h.defaultRole)
}

// RegisterWithRole creates an identity with the role named in the path. Admin only.
func (h *AuthHandler) RegisterWithRole(c echo.Context) error {
	return h.register(c, entity.RoleName(strings.ToUpper(c.Param("role"))))
}

func (h *AuthHandler) register(c echo.Context, role entity.RoleName) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := deliverycontext.WithIdempotencyKey(c.Request().Context(), c.Request().Header.Get(deliverycontext.HeaderIdempotencyKey))

	output, err := h.registrationUC.Register(ctx, &usecase.RegisterInput{
		Username:  req.Username,
		Surname:   req.Surname,
		Password:  req.Password,
		BirthDate: req.BirthDate.Time,
		Email:     req.Email,
	}, role)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, IdentityResponse{
		ID:       output.Identity.ID,
		Username: output.Identity.Username,
		Email:    output.Identity.Email,
		Roles:    output.Identity.Roles.Names(),
		Enabled:  output.Identity.Enabled,
	})
}

// Login exchanges credentials for an access and refresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{Username: req.Username, Password: req.Password})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAuthResponse(output))
}

// Refresh exchanges a refresh token for a new access token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAuthResponse(output))
}

// Validate reports whether an access token is valid. It answers 200 either way;
// the token comes from the body or, when absent there, the Authorization header.
func (h *AuthHandler) Validate(c echo.Context) error {
	var req ValidateRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return domainerrors.ErrValidationFailed.WithDetails("malformed request body").WithCause(err)
		}
	}

	token := req.Token
	if token == "" {
		token, _ = middleware.BearerToken(c)
	}

	output := h.authUC.Validate(c.Request().Context(), token)

	resp := ValidateResponse{Valid: output.Valid, Message: output.Message}
	if output.Valid {
		resp.Username = &output.Username
	}

	return response.Success(c, http.StatusOK, resp)
}

// ServiceToken issues a service access token for a known API key.
func (h *AuthHandler) ServiceToken(c echo.Context) error {
	var req ServiceTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.IssueServiceToken(c.Request().Context(), req.APIKey)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ServiceTokenResponse{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
		ExpiresIn:   output.ExpiresIn,
	})
}

// Logout revokes the refresh token of the authenticated identity.
func (h *AuthHandler) Logout(c echo.Context) error {
	identityID, ok := middleware.IdentityID(c)
	if !ok {
		return domainerrors.ErrForbidden.WithDetails("token is not bound to an identity")
	}

	revoked, err := h.sessionUC.RevokeAllSessions(c.Request().Context(), identityID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, LogoutResponse{RevokedSessions: revoked})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body").WithCause(err)
	}

	if err := c.Validate(req); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func toAuthResponse(output *usecase.AuthOutput) AuthResponse {
	return AuthResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		TokenType:    output.TokenType,
		AccessTTL:    output.AccessTTL,
		RefreshTTL:   output.RefreshTTL,
	}
}
