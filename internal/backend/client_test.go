package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoelCyril/Pulso.ai/internal"
)

func TestPredictScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/predict-score", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req PredictScoreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 30, req.Age)

		_ = json.NewEncoder(w).Encode(PredictScoreResponse{PredictedScore: 82.5, IsMLBased: true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, internal.NewNopLogger())
	resp, err := c.PredictScore(context.Background(), PredictScoreRequest{Age: 30, Sleep: 8})
	require.NoError(t, err)
	assert.Equal(t, 82.5, resp.PredictedScore)
	assert.True(t, resp.IsMLBased)
}

func TestWHOCoach(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/who-coach", r.URL.Path)
		_ = json.NewEncoder(w).Encode(WHOCoachResponse{
			Country: "Portugal", HALEAtBirth: 70.1, HALEGlobal: 63.5,
			HALEComparison: "above global average",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, internal.NewNopLogger())
	resp, err := c.WHOCoach(context.Background(), WHOCoachRequest{CountryCode: "PT", HealthScore: 80})
	require.NoError(t, err)
	assert.Equal(t, "Portugal", resp.Country)
	assert.Equal(t, 70.1, resp.HALEAtBirth)
}

func TestCountries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/countries", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		_ = json.NewEncoder(w).Encode([]Country{{Code: "PT", Name: "Portugal"}, {Code: "BR", Name: "Brazil"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, internal.NewNopLogger())
	countries, err := c.Countries(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 2)
	assert.Equal(t, "PT", countries[0].Code)
}

func TestErrorStatusPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, internal.NewNopLogger())
	_, err := c.PredictScore(context.Background(), PredictScoreRequest{})
	assert.Error(t, err)
	_, err = c.Countries(context.Background())
	assert.Error(t, err)
}

func TestUnreachableBackend(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", internal.NewNopLogger())
	_, err := c.PredictScore(context.Background(), PredictScoreRequest{})
	assert.Error(t, err)
}
