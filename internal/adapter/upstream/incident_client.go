package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/incidra/incidra/internal/domain"
	"github.com/incidra/incidra/internal/ports"
	"github.com/incidra/incidra/pkg/apperror"
)

// IncidentClient calls the upstream incident-query service. It attaches a
// freshly minted service token derived from the caller's claims, never the
// caller's original token.
type IncidentClient struct {
	baseURL      string
	tokenService ports.TokenService
	httpClient   *http.Client
	logger       *logrus.Logger
}

func NewIncidentClient(baseURL string, timeout time.Duration, tokenService ports.TokenService, logger *logrus.Logger) *IncidentClient {
	return &IncidentClient{
		baseURL:      baseURL,
		tokenService: tokenService,
		logger:       logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchIncidents retrieves the caller's company incidents. Non-2xx upstream
// responses become UpstreamError, transport failures ConnectivityError.
func (c *IncidentClient) FetchIncidents(ctx context.Context, claims *ports.Claims) ([]domain.Incident, error) {
	serviceToken, err := c.tokenService.Mint(claims)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Sprintf("failed to mint service token: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/company-incidents", nil)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Sprintf("failed to create upstream request: %v", err))
	}
	req.Header.Set("Authorization", "Bearer "+serviceToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("url", c.baseURL).Error("Upstream request failed")
		return nil, &apperror.ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"url":    c.baseURL,
		}).Error("Upstream returned error status")
		return nil, &apperror.UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var incidents []domain.Incident
	if err := json.NewDecoder(resp.Body).Decode(&incidents); err != nil {
		return nil, apperror.NewInternal(fmt.Sprintf("failed to decode upstream response: %v", err))
	}

	// The decoder accepts any string for the enum fields; reject records
	// the aggregators cannot bucket.
	for _, incident := range incidents {
		if err := incident.Validate(); err != nil {
			c.logger.WithError(err).Error("Upstream returned invalid incident")
			return nil, apperror.NewInternal(fmt.Sprintf("invalid incident in upstream response: %v", err))
		}
	}

	return incidents, nil
}
