// Package api - HTTP handler for price calculation
// This handler wraps the engine - it contains NO pricing logic.
package api

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"landed-cost/core/engine"
	"landed-cost/core/types"
	"landed-cost/internal/errors"
	"landed-cost/internal/logging"
)

// handleCalculate handles POST /calculate-price
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := generateRequestID()
	log := logging.With(zap.String("request_id", requestID))

	var req CalculateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.metrics.calculations.WithLabelValues("", "rejected").Inc()
		s.writeError(w, requestID, err)
		return
	}

	resp, rateSource, err := s.calculate(r.Context(), &req)
	s.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		status := "error"
		if errors.IsInput(err) {
			status = "rejected"
		}
		s.metrics.calculations.WithLabelValues("", status).Inc()
		log.Warn("calculation failed", append(logging.ItemFields(req.Item()), zap.Error(err))...)
		s.writeError(w, requestID, err)
		return
	}

	s.metrics.calculations.WithLabelValues(resp.DeliveryBand, "ok").Inc()
	s.metrics.finalPrice.Observe(resp.FinalPrice)

	resp.Metadata = &ResponseMetadata{
		RequestID:     requestID,
		InputHash:     computeInputHash(&req),
		RateSource:    rateSource,
		EngineVersion: s.version,
		DurationMs:    time.Since(start).Milliseconds(),
	}

	log.Info("price calculated",
		zap.String("product", resp.ProductName),
		zap.String("band", resp.DeliveryBand),
		zap.Float64("final_price", resp.FinalPrice))

	s.writeJSON(w, resp, http.StatusOK)
}

// calculate validates the request, then resolves the exchange rate and runs
// the engine against a snapshot of the service defaults. Invalid requests
// never reach the rate sources.
func (s *Server) calculate(ctx context.Context, req *CalculateRequest) (*CalculateResponse, string, error) {
	eng, err := engine.New(s.Defaults())
	if err != nil {
		return nil, "", err
	}

	quote := engine.QuoteRequest{
		Item:      req.Item(),
		Overrides: req.FormulaParams,
	}
	if err := eng.Validate(quote); err != nil {
		return nil, "", err
	}

	rate, source, err := s.lookupRate(ctx, quote.Item.Currency)
	if err != nil {
		return nil, "", err
	}
	quote.ExchangeRate = rate

	result, err := eng.Quote(quote)
	if err != nil {
		return nil, "", err
	}

	return NewCalculateResponse(result), source, nil
}

// lookupRate returns KZT per unit of currency. Local currency needs no
// rate source.
func (s *Server) lookupRate(ctx context.Context, currency types.Currency) (float64, string, error) {
	if currency.IsLocal() {
		return 1, "local", nil
	}

	result, err := s.rates.Fetch(ctx)
	if err != nil {
		s.metrics.rateFailures.Inc()
		return 0, "", errors.Wrap(errors.TypeRateUnavailable, "exchange rates unavailable", err)
	}

	rate, err := result.Lookup(currency)
	if err != nil {
		return 0, "", err
	}
	return rate, result.Source, nil
}
