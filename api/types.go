// Package api - API types for landed price calculation
// These types define the JSON contract of the HTTP endpoints.
package api

import (
	"time"

	"landed-cost/core/types"
)

// CalculateRequest is the input to POST /calculate-price
type CalculateRequest struct {
	// ProductName is a human-readable name
	ProductName string `json:"productName"`

	// OriginalPrice is the price in Currency
	OriginalPrice float64 `json:"originalPrice"`

	// Currency defaults to KZT
	Currency string `json:"currency"`

	// Weight is the gross weight in kg
	Weight float64 `json:"weight"`

	// Dimensions are in mm
	Dimensions types.Dimensions `json:"dimensions"`

	// FormulaParams override service defaults for this request
	FormulaParams types.ParameterOverrides `json:"formulaParams,omitempty"`
}

// Item converts the request into an engine item
func (r *CalculateRequest) Item() types.Item {
	currency := types.Currency(r.Currency).Normalize()
	if currency == "" {
		currency = types.CurrencyKZT
	}
	return types.Item{
		Name:          r.ProductName,
		OriginalPrice: r.OriginalPrice,
		Currency:      currency,
		WeightKg:      r.Weight,
		Dimensions:    r.Dimensions,
	}
}

// CalculateResponse is the output of POST /calculate-price
type CalculateResponse struct {
	ProductName       string                 `json:"productName"`
	OriginalPrice     float64                `json:"originalPrice"`
	Currency          string                 `json:"currency"`
	ExchangeRate      float64                `json:"exchangeRate"`
	ConvertedPrice    float64                `json:"convertedPrice"`
	Volume            float64                `json:"volume"`
	DeliveryWeight    float64                `json:"deliveryWeight"`
	DeliveryBand      string                 `json:"deliveryBand"`
	DeliveryCost      float64                `json:"deliveryCost"`
	DeliveryLegs      types.DeliveryLegs     `json:"deliveryLegs"`
	PriceWithDelivery float64                `json:"priceWithDelivery"`
	FinalPrice        float64                `json:"finalPrice"`
	FormulaParams     map[string]float64     `json:"formulaParams"`
	CalculationSteps  types.CalculationSteps `json:"calculationSteps"`
	Metadata          *ResponseMetadata      `json:"metadata,omitempty"`
}

// ResponseMetadata describes how a response was produced
type ResponseMetadata struct {
	RequestID     string `json:"requestId"`
	InputHash     string `json:"inputHash"`
	RateSource    string `json:"rateSource"`
	EngineVersion string `json:"engineVersion"`
	DurationMs    int64  `json:"durationMs"`
}

// NewCalculateResponse maps an engine result onto the wire format
func NewCalculateResponse(result *types.PricingResult) *CalculateResponse {
	return &CalculateResponse{
		ProductName:       result.ProductName,
		OriginalPrice:     result.OriginalPrice.InexactFloat64(),
		Currency:          result.Currency.String(),
		ExchangeRate:      result.ExchangeRate.InexactFloat64(),
		ConvertedPrice:    result.ConvertedPrice.InexactFloat64(),
		Volume:            result.Volume.InexactFloat64(),
		DeliveryWeight:    result.BillableWeight.InexactFloat64(),
		DeliveryBand:      result.Band.String(),
		DeliveryCost:      result.DeliveryCost.InexactFloat64(),
		DeliveryLegs:      result.Legs,
		PriceWithDelivery: result.PriceWithDelivery.InexactFloat64(),
		FinalPrice:        result.FinalPrice.InexactFloat64(),
		FormulaParams:     result.Params.AsMap(),
		CalculationSteps:  result.Steps,
	}
}

// ParamsResponse is the output of the formula-params endpoints
type ParamsResponse struct {
	Message   string             `json:"message,omitempty"`
	Params    map[string]float64 `json:"params"`
	Timestamp time.Time          `json:"timestamp"`
}

// UpdateParamsRequest is the input to PUT /formula-params
type UpdateParamsRequest struct {
	Params types.ParameterOverrides `json:"params"`
}

// RatesResponse is the output of GET /exchange-rates
type RatesResponse struct {
	Rates     map[string]float64 `json:"rates"`
	Source    string             `json:"source"`
	FetchedAt time.Time          `json:"fetchedAt"`
	Timestamp time.Time          `json:"timestamp"`
}

// ErrorResponse is the error envelope
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failure
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}
