// Package engine provides the landed-price calculation pipeline.
// HTTP and CLI are thin wrappers around this engine: they acquire the
// exchange rate and parameter overrides and pass them in as plain values.
package engine

import (
	"math"

	"landed-cost/core/pricing"
	"landed-cost/core/pricing/primitives"
	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

// Engine prices items against a fixed set of default parameters.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	defaults types.FormulaParameters
}

// QuoteRequest is a single calculation request
type QuoteRequest struct {
	// Item is the good being priced
	Item types.Item

	// ExchangeRate is KZT per unit of Item.Currency
	ExchangeRate float64

	// Overrides replace individual default parameters for this request
	Overrides types.ParameterOverrides
}

// New creates an engine using defaults as the base parameter set
func New(defaults types.FormulaParameters) (*Engine, error) {
	if err := defaults.Validate(); err != nil {
		return nil, errors.InvalidParameter("invalid default formula parameters", err)
	}
	return &Engine{defaults: defaults}, nil
}

// NewDefault creates an engine with the built-in defaults
func NewDefault() *Engine {
	return &Engine{defaults: types.DefaultFormulaParameters()}
}

// Defaults returns a copy of the engine's base parameters
func (e *Engine) Defaults() types.FormulaParameters {
	return e.defaults
}

// ResolveParameters applies overrides on top of the engine defaults
func (e *Engine) ResolveParameters(overrides types.ParameterOverrides) (types.FormulaParameters, error) {
	if err := overrides.Validate(); err != nil {
		return types.FormulaParameters{}, errors.InvalidParameter("invalid formula parameters", err)
	}
	return overrides.Resolve(e.defaults), nil
}

// Validate checks the item, overrides and dimensions of req without pricing
// it. It needs no exchange rate, so callers run it before acquiring one.
func (e *Engine) Validate(req QuoteRequest) error {
	_, err := e.size(req)
	return err
}

// Quote validates the request and runs sizing, tariff and composition.
// Invalid input is refused with a typed error; no partial result is
// returned.
func (e *Engine) Quote(req QuoteRequest) (*types.PricingResult, error) {
	s, err := e.size(req)
	if err != nil {
		return nil, err
	}

	item := req.Item
	cost := pricing.DeliveryCost(s.weight, s.params)

	return pricing.Compose(pricing.ComposeInput{
		ProductName:    item.Name,
		OriginalPrice:  item.OriginalPrice,
		Currency:       item.Currency,
		ExchangeRate:   req.ExchangeRate,
		Volume:         s.volume,
		BillableWeight: s.weight,
		DeliveryCost:   cost,
		Legs:           pricing.DeliveryLegs(s.weight, s.params),
		Params:         s.params,
	})
}

// sizing is a validated request reduced to the tariff inputs
type sizing struct {
	params types.FormulaParameters
	volume float64
	weight float64
}

func (e *Engine) size(req QuoteRequest) (sizing, error) {
	item := req.Item
	if err := validateItem(item); err != nil {
		return sizing{}, err
	}

	params, err := e.ResolveParameters(req.Overrides)
	if err != nil {
		return sizing{}, err
	}

	volume := primitives.VolumeOf(item.Dimensions)
	weight := primitives.BillableWeight(item.WeightKg, volume, params.VolumetricFactor)
	if volume == 0 || math.IsInf(weight, 0) {
		// sides too small to register, or too large to represent
		return sizing{}, errors.InvalidDimensions("dimensions are out of range").
			WithContext("dimensions", item.Dimensions)
	}

	return sizing{params: params, volume: volume, weight: weight}, nil
}

func validateItem(item types.Item) error {
	if item.Name == "" {
		return errors.Input("product name is required")
	}
	if item.Currency == "" {
		return errors.Input("currency is required")
	}
	if !(item.OriginalPrice > 0) || math.IsInf(item.OriginalPrice, 1) {
		return errors.InvalidMonetary("original price must be positive and finite").
			WithContext("original_price", item.OriginalPrice)
	}
	if !(item.WeightKg > 0) || math.IsInf(item.WeightKg, 1) {
		return errors.InvalidWeight("weight must be positive and finite").
			WithContext("weight_kg", item.WeightKg)
	}
	if !item.Dimensions.Valid() {
		return errors.InvalidDimensions("length, width and height must be positive and finite").
			WithContext("dimensions", item.Dimensions)
	}
	return nil
}
