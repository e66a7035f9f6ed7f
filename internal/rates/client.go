package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/segyhp/zakat-engine/internal/domain"
	customError "github.com/segyhp/zakat-engine/pkg/errors"
)

// gramsPerTroyOunce converts the provider's troy-ounce pricing to per-gram.
var gramsPerTroyOunce = decimal.NewFromFloat(31.1034768)

// providerResponse mirrors the metalpriceapi latest-rates payload. Rates are
// quoted as units of metal per unit of the base currency.
type providerResponse struct {
	Success   bool               `json:"success"`
	Base      string             `json:"base"`
	Timestamp int64              `json:"timestamp"`
	Rates     map[string]float64 `json:"rates"`
}

// Client fetches current gold/silver market prices from metalpriceapi and
// normalizes them to a per-gram rate. The lookup is best effort with a
// single round trip and no retries; callers treat failures as terminal for
// that one request.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchPerGram requests the latest rate for the basis metal in the given
// currency and derives the per-gram price as (1 / rate) / 31.1034768.
func (c *Client) FetchPerGram(ctx context.Context, basis domain.NisabBasis, currency string) (*domain.MetalRate, error) {
	if c.apiKey == "" {
		return nil, customError.WrapMissingAPIKey()
	}

	symbol := basis.MetalSymbol()

	endpoint := fmt.Sprintf("%s/latest?%s", c.baseURL, url.Values{
		"api_key":    {c.apiKey},
		"base":       {currency},
		"currencies": {symbol},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, customError.WrapRateProviderError(0, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, customError.WrapRateProviderError(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, customError.WrapRateProviderError(resp.StatusCode, nil)
	}

	var payload providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, customError.WrapRateProviderError(resp.StatusCode, err)
	}

	// A malformed or empty payload manifests as a zero rate and is treated
	// as "no rate available".
	rate := payload.Rates[currency+symbol]
	if rate == 0 {
		rate = payload.Rates[symbol]
	}
	if !payload.Success || rate <= 0 {
		return nil, customError.WrapRateUnavailable(string(basis), currency)
	}

	perGram := decimal.NewFromInt(1).
		Div(decimal.NewFromFloat(rate)).
		Div(gramsPerTroyOunce)

	timestamp := payload.Timestamp
	if timestamp == 0 {
		timestamp = time.Now().Unix()
	}

	c.logger.Debug().
		Str("basis", string(basis)).
		Str("currency", currency).
		Str("per_gram", perGram.String()).
		Msg("fetched metal rate")

	return &domain.MetalRate{
		Basis:     basis,
		Metal:     symbol,
		Currency:  currency,
		PerGram:   perGram,
		Timestamp: timestamp,
		Source:    domain.RateSourceMetalPriceAPI,
	}, nil
}
