// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
)

// TokenTypeBearer is the token type reported with every issued access token.
const TokenTypeBearer = "Bearer"

// --- Input DTOs ---

// LoginInput defines the credentials presented at login.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// AuthOutput is returned by Login and Refresh. TTLs are in milliseconds.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	AccessTTL    int64
	RefreshTTL   int64
}

// ValidationOutput never carries an error; an invalid token is reported through Valid and Message.
type ValidationOutput struct {
	Valid    bool
	Username string
	Message  string
}

// ServiceTokenOutput is returned for service-to-service credentials. ExpiresIn is in milliseconds.
type ServiceTokenOutput struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
}

// AuthUsecase drives the login, refresh and validate transitions of the token lifecycle.
type AuthUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)
	Validate(ctx context.Context, accessToken string) *ValidationOutput
	IssueServiceToken(ctx context.Context, apiKey string) (*ServiceTokenOutput, error)
}
