package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jumapesa/billing-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// RateSource provides the latest exchange rates for a base currency code.
type RateSource interface {
	LatestRates(ctx context.Context, apiKey, baseCode string) (map[string]decimal.Decimal, error)
}

// Client calls the exchangerate-api.com v6 endpoint. Requests that fail with
// transient network or 5xx errors are retried before giving up.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	logger  *logrus.Logger
}

// NewClient creates an exchange rate client
func NewClient(baseURL string, timeout time.Duration, retryMax int, logger *logrus.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.HTTPClient.Timeout = timeout
	rc.Logger = nil

	return &Client{
		baseURL: baseURL,
		http:    rc,
		logger:  logger,
	}
}

type latestRatesResponse struct {
	Result          string                     `json:"result"`
	ErrorType       string                     `json:"error-type"`
	BaseCode        string                     `json:"base_code"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

// LatestRates fetches conversion rates from the base currency to all
// supported currencies. Provider outages map to ErrRateProviderUnavailable
// and unparseable or incomplete payloads map to ErrRateDataMalformed.
func (c *Client) LatestRates(ctx context.Context, apiKey, baseCode string) (map[string]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, apiKey, baseCode)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperror.ErrRateProviderUnavailable
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("base_code", baseCode).
			Warn("exchange rate request failed")
		return nil, apperror.ErrRateProviderUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"base_code":   baseCode,
			"status_code": resp.StatusCode,
		}).Warn("exchange rate provider returned non-200 status")
		return nil, apperror.ErrRateProviderUnavailable
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.ErrRateProviderUnavailable
	}

	var parsed latestRatesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperror.ErrRateDataMalformed
	}

	if parsed.Result != "success" || len(parsed.ConversionRates) == 0 {
		c.logger.WithFields(logrus.Fields{
			"base_code":  baseCode,
			"result":     parsed.Result,
			"error_type": parsed.ErrorType,
		}).Warn("exchange rate payload unusable")
		return nil, apperror.ErrRateDataMalformed
	}

	return parsed.ConversionRates, nil
}
