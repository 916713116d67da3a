// Package backend calls the external HealthGuard scoring service. The
// service is an opaque collaborator: every failure degrades to the
// caller's local fallback and is only logged.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/JoelCyril/Pulso.ai/internal"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     internal.Logger
}

func NewClient(baseURL string, logger internal.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

type PredictScoreRequest struct {
	Age        int     `json:"age"`
	Sleep      float64 `json:"sleep"`
	ScreenTime float64 `json:"screenTime"`
	Exercise   float64 `json:"exercise"`
	Stress     float64 `json:"stress"`
}

type PredictScoreResponse struct {
	PredictedScore float64 `json:"predicted_score"`
	IsMLBased      bool    `json:"is_ml_based"`
}

type WHOCoachRequest struct {
	CountryCode string  `json:"country_code"`
	CountryName string  `json:"country_name,omitempty"`
	HealthScore int     `json:"health_score"`
	Age         int     `json:"age,omitempty"`
	Gender      string  `json:"gender,omitempty"`
	Exercise    float64 `json:"exercise,omitempty"`
	Sleep       float64 `json:"sleep,omitempty"`
}

type WHOCoachResponse struct {
	Country        string  `json:"country"`
	HALEAtBirth    float64 `json:"hale_at_birth"`
	HALEGlobal     float64 `json:"hale_global"`
	HALEComparison string  `json:"hale_comparison"`
	Summary        string  `json:"summary"`
}

type Country struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		c.logger.Errorf("backend: failed to create request: %v", err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Warnf("backend: %s call failed: %v", path, err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.logger.Warnf("backend: %s returned %d", path, resp.StatusCode)
		return errors.New("backend: non-200 response")
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warnf("backend: failed to decode %s response: %v", path, err)
		return err
	}
	return nil
}

// PredictScore asks the ML model for an objective score.
func (c *Client) PredictScore(ctx context.Context, req PredictScoreRequest) (PredictScoreResponse, error) {
	var out PredictScoreResponse
	err := c.post(ctx, "/predict-score", req, &out)
	return out, err
}

// WHOCoach fetches population HALE context for the user's country.
func (c *Client) WHOCoach(ctx context.Context, req WHOCoachRequest) (WHOCoachResponse, error) {
	var out WHOCoachResponse
	err := c.post(ctx, "/who-coach", req, &out)
	return out, err
}

func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/countries", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Warnf("backend: /countries call failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.logger.Warnf("backend: /countries returned %d", resp.StatusCode)
		return nil, errors.New("backend: non-200 response")
	}
	var countries []Country
	if err := json.NewDecoder(resp.Body).Decode(&countries); err != nil {
		return nil, err
	}
	return countries, nil
}
