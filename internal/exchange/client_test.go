package exchange

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jumapesa/billing-api/pkg/apperror"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewClient(serverURL, 5*time.Second, 0, logger)
}

func TestLatestRates_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-key/latest/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"result": "success",
			"base_code": "USD",
			"conversion_rates": {"USD": 1, "EUR": 0.9, "KES": 129.5}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	rates, err := client.LatestRates(context.Background(), "test-key", "USD")
	require.NoError(t, err)

	assert.Len(t, rates, 3)
	assert.Equal(t, "0.9", rates["EUR"].String())
	assert.Equal(t, "129.5", rates["KES"].String())
}

func TestLatestRates_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.LatestRates(context.Background(), "test-key", "USD")
	assert.ErrorIs(t, err, apperror.ErrRateProviderUnavailable)
}

func TestLatestRates_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.LatestRates(context.Background(), "test-key", "USD")
	assert.ErrorIs(t, err, apperror.ErrRateDataMalformed)
}

func TestLatestRates_ErrorResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": "error", "error-type": "invalid-key"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.LatestRates(context.Background(), "test-key", "USD")
	assert.ErrorIs(t, err, apperror.ErrRateDataMalformed)
}

func TestLatestRates_MissingRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": "success", "base_code": "USD", "conversion_rates": {}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.LatestRates(context.Background(), "test-key", "USD")
	assert.ErrorIs(t, err, apperror.ErrRateDataMalformed)
}
