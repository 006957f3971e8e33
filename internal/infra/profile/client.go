// Package profile is the outbound client of the remote profile service.
package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"authcore/config"
	deliverycontext "authcore/internal/delivery/context"
	"authcore/internal/domain/entity"
	"authcore/internal/domain/service"
	"authcore/internal/infra/resilience"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	usersPath          = "/api/v1/users"
	maxErrorBodyBytes  = 64 << 10
	birthDateLayout    = "2006-01-02"
	breakerName        = "profile-service"
	defaultHTTPTimeout = 30 * time.Second
)

// createProfileRequest is the wire shape the profile service expects.
type createProfileRequest struct {
	ID        *int64 `json:"id"`
	Username  string `json:"username"`
	Surname   string `json:"surname"`
	BirthDate string `json:"birthDate,omitempty"`
	Email     string `json:"email"`
	Enabled   bool   `json:"enabled"`
}

type profileResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// httpClient implements service.ProfileClient over HTTP with the shared retry and breaker policy.
type httpClient struct {
	baseURL    string
	httpClient *http.Client
	policy     *resilience.Policy
	logger     *slog.Logger
}

// NewClient is the fx constructor.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics service.AuthMetrics) service.ProfileClient {
	policy := resilience.NewPolicy(resilience.SettingsFromConfig(breakerName, cfg.ProfileService), logger, metrics)

	return NewHTTPClient(cfg.ProfileService.BaseURL, policy, logger)
}

// NewHTTPClient builds a client against baseURL using policy for every call.
func NewHTTPClient(baseURL string, policy *resilience.Policy, logger *slog.Logger) service.ProfileClient {
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		policy: policy,
		logger: logger,
	}
}

// CreateProfile registers the profile remotely. Every transparent retry of one
// call carries the same Idempotency-Key.
func (c *httpClient) CreateProfile(ctx context.Context, fields entity.ProfileFields, bearer string) (*entity.RemoteProfile, error) {
	payload := createProfileRequest{
		Username: fields.Username,
		Surname:  fields.Surname,
		Email:    fields.Email,
		Enabled:  true,
	}
	if !fields.BirthDate.IsZero() {
		payload.BirthDate = fields.BirthDate.Format(birthDateLayout)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	idempotencyKey := deliverycontext.IdempotencyKeyFromContext(ctx)
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	out, err := resilience.Execute(ctx, c.policy, func(ctx context.Context) (*entity.RemoteProfile, error) {
		req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+usersPath, bytes.NewReader(body), bearer)
		if err != nil {
			return nil, resilience.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(deliverycontext.HeaderIdempotencyKey, idempotencyKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, errors.Wrap(err, "create profile request")
		}
		defer resp.Body.Close()

		if err := checkStatus(resp); err != nil {
			return nil, err
		}

		var decoded profileResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return nil, resilience.Permanent(errors.Wrap(err, "decode create profile response"))
		}
		if decoded.ID <= 0 {
			return nil, resilience.Permanent(errors.Errorf("profile service assigned no usable id (%d)", decoded.ID))
		}

		return &entity.RemoteProfile{
			ID:       decoded.ID,
			Username: decoded.Username,
			Email:    decoded.Email,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Profile created remotely", slog.Int64("profileID", out.ID), slog.String("idempotencyKey", idempotencyKey))

	return out, nil
}

// DeleteProfile removes the profile. A 404 counts as already deleted.
func (c *httpClient) DeleteProfile(ctx context.Context, id int64, bearer string) error {
	target := c.baseURL + usersPath + "/" + strconv.FormatInt(id, 10)

	_, err := resilience.Execute(ctx, c.policy, func(ctx context.Context) (struct{}, error) {
		req, err := c.newRequest(ctx, http.MethodDelete, target, nil, bearer)
		if err != nil {
			return struct{}{}, resilience.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return struct{}{}, errors.Wrap(err, "delete profile request")
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			_, _ = io.Copy(io.Discard, resp.Body)

			return struct{}{}, nil
		}

		return struct{}{}, checkStatus(resp)
	})

	return err
}

func (c *httpClient) newRequest(ctx context.Context, method, url string, body io.Reader, bearer string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)

	if requestID := deliverycontext.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, requestID)
	}

	return req, nil
}

// checkStatus turns a non-2xx answer into a RemoteCallError. Client errors are
// permanent except 408 and 429.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	callErr := &service.RemoteCallError{
		StatusCode: resp.StatusCode,
		Payload:    strings.TrimSpace(string(payload)),
	}

	if isRetryable(resp.StatusCode) {
		return callErr
	}

	return resilience.Permanent(callErr)
}

func isRetryable(status int) bool {
	return status >= 500 || status == http.StatusRequestTimeout || status == http.StatusTooManyRequests
}
