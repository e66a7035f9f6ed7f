package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/segyhp/zakat-engine/internal/domain"
	customError "github.com/segyhp/zakat-engine/pkg/errors"
	"github.com/segyhp/zakat-engine/pkg/response"
)

// RateFetcher fetches a live per-gram rate from the pricing provider.
type RateFetcher interface {
	FetchPerGram(ctx context.Context, basis domain.NisabBasis, currency string) (*domain.MetalRate, error)
}

// RateCache reads the scheduler-warmed rates.
type RateCache interface {
	Latest(ctx context.Context, basis domain.NisabBasis, currency string) (*domain.MetalRate, error)
}

type RatesHandler struct {
	fetcher RateFetcher
	cache   RateCache
}

func NewRatesHandler(fetcher RateFetcher, cache RateCache) *RatesHandler {
	return &RatesHandler{
		fetcher: fetcher,
		cache:   cache,
	}
}

func rateQuery(r *http.Request) (domain.NisabBasis, string, *customError.BusinessError) {
	basis := domain.NisabBasis(strings.ToLower(r.URL.Query().Get("basis")))
	if !basis.Valid() {
		return "", "", customError.WrapInvalidBasis(r.URL.Query().Get("basis"))
	}

	currency := strings.ToUpper(r.URL.Query().Get("currency"))
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		return "", "", customError.WrapInvalidCurrency(currency)
	}

	return basis, currency, nil
}

// GetRate proxies a single provider round trip. A missing credential is a
// client configuration error; upstream failure maps to 502 with no retry.
func (h *RatesHandler) GetRate(w http.ResponseWriter, r *http.Request) {
	basis, currency, queryErr := rateQuery(r)
	if queryErr != nil {
		response.BadRequest(w, queryErr.Message, queryErr)
		return
	}

	rate, err := h.fetcher.FetchPerGram(r.Context(), basis, currency)
	if err != nil {
		if errors.Is(err, customError.ErrMissingAPIKey) {
			response.BadRequest(w, "Metals provider credential is not configured", err)
			return
		}
		response.BadGateway(w, "Metals provider request failed", err)
		return
	}

	response.Success(w, rate)
}

// GetCachedRate serves the most recent scheduler-warmed rate, if any.
func (h *RatesHandler) GetCachedRate(w http.ResponseWriter, r *http.Request) {
	basis, currency, queryErr := rateQuery(r)
	if queryErr != nil {
		response.BadRequest(w, queryErr.Message, queryErr)
		return
	}

	rate, err := h.cache.Latest(r.Context(), basis, currency)
	if err != nil {
		if errors.Is(err, customError.ErrRateNotCached) {
			response.NotFound(w, "No cached rate for this basis and currency")
			return
		}
		response.InternalServerError(w, "Failed to read cached rate", err)
		return
	}

	response.Success(w, rate)
}
