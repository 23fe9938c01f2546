package engine

import (
	"math"
	"sync"
	"testing"

	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

func validItem() types.Item {
	return types.Item{
		Name:          "Centrifugal pump",
		OriginalPrice: 1000,
		Currency:      types.CurrencyUSD,
		WeightKg:      10,
		Dimensions:    types.Dimensions{Length: 400, Width: 300, Height: 200},
	}
}

func TestQuoteFlatBand(t *testing.T) {
	e := NewDefault()

	result, err := e.Quote(QuoteRequest{Item: validItem(), ExchangeRate: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// volume 0.024 m³ -> 4.8 kg volumetric, actual 10 kg wins
	if got := result.BillableWeight.String(); got != "10" {
		t.Errorf("Expected billable weight 10, got %s", got)
	}
	if result.Band != types.BandA {
		t.Errorf("Expected band A, got %s", result.Band)
	}
	if got := result.DeliveryCost.StringFixed(2); got != "31900.00" {
		t.Errorf("Expected delivery 31900.00, got %s", got)
	}
	// (933.33.. + 31900) * 1.18
	if got := result.FinalPrice.StringFixed(2); got != "38743.33" {
		t.Errorf("Expected final price 38743.33, got %s", got)
	}
	if result.Params != types.DefaultFormulaParameters() {
		t.Errorf("Expected default parameters, got %+v", result.Params)
	}
}

func TestQuoteVolumetricWeightWins(t *testing.T) {
	e := NewDefault()
	item := validItem()
	item.WeightKg = 5
	item.Dimensions = types.Dimensions{Length: 1000, Width: 1000, Height: 1000}

	result, err := e.Quote(QuoteRequest{Item: item, ExchangeRate: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1 m³ * 200 = 200 kg, band B
	if got := result.BillableWeight.String(); got != "200" {
		t.Errorf("Expected billable weight 200, got %s", got)
	}
	if result.Band != types.BandB {
		t.Errorf("Expected band B, got %s", result.Band)
	}
	// 7500 + 170*179 + 10000 + 170*20 + 10400 + 4000 + 170*15
	if got := result.DeliveryCost.StringFixed(2); got != "68280.00" {
		t.Errorf("Expected delivery 68280.00, got %s", got)
	}
}

func TestQuoteOverrides(t *testing.T) {
	e := NewDefault()
	item := validItem()
	item.Dimensions = types.Dimensions{Length: 1000, Width: 1000, Height: 1000}

	result, err := e.Quote(QuoteRequest{
		Item:         item,
		ExchangeRate: 1,
		Overrides:    types.ParameterOverrides{"volumetricFactor": 100, "nds": 1.12},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := result.BillableWeight.String(); got != "100" {
		t.Errorf("Expected billable weight 100, got %s", got)
	}
	if result.Params.NDS != 1.12 {
		t.Errorf("Expected nds override 1.12, got %v", result.Params.NDS)
	}
	if result.Params.Divider != 1.2 {
		t.Errorf("Expected default divider, got %v", result.Params.Divider)
	}

	// overrides must not leak into the engine defaults
	if e.Defaults().NDS != 1.18 {
		t.Errorf("engine defaults mutated: %+v", e.Defaults())
	}
}

func TestQuoteRejectsInvalidInput(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		name     string
		mutate   func(*QuoteRequest)
		expected errors.Type
	}{
		{"missing name", func(r *QuoteRequest) { r.Item.Name = "" }, errors.TypeInput},
		{"missing currency", func(r *QuoteRequest) { r.Item.Currency = "" }, errors.TypeInput},
		{"zero price", func(r *QuoteRequest) { r.Item.OriginalPrice = 0 }, errors.TypeInvalidMonetary},
		{"zero rate", func(r *QuoteRequest) { r.ExchangeRate = 0 }, errors.TypeInvalidMonetary},
		{"negative rate", func(r *QuoteRequest) { r.ExchangeRate = -3 }, errors.TypeInvalidMonetary},
		{"zero weight", func(r *QuoteRequest) { r.Item.WeightKg = 0 }, errors.TypeInvalidWeight},
		{"zero height", func(r *QuoteRequest) { r.Item.Dimensions.Height = 0 }, errors.TypeInvalidDimensions},
		{"negative width", func(r *QuoteRequest) { r.Item.Dimensions.Width = -1 }, errors.TypeInvalidDimensions},
		{"volume underflow", func(r *QuoteRequest) {
			r.Item.Dimensions = types.Dimensions{Length: 1e-200, Width: 1e-200, Height: 1e-200}
		}, errors.TypeInvalidDimensions},
		{"unknown parameter", func(r *QuoteRequest) {
			r.Overrides = types.ParameterOverrides{"rate9000": 1}
		}, errors.TypeInvalidParameter},
		{"non-positive parameter", func(r *QuoteRequest) {
			r.Overrides = types.ParameterOverrides{"divider": 0}
		}, errors.TypeInvalidParameter},
		{"volume overflow", func(r *QuoteRequest) {
			r.Item.Dimensions = types.Dimensions{Length: 1e120, Width: 1e120, Height: 1e120}
		}, errors.TypeInvalidDimensions},
		{"infinite side", func(r *QuoteRequest) { r.Item.Dimensions.Length = math.Inf(1) }, errors.TypeInvalidDimensions},
		{"converted price overflow", func(r *QuoteRequest) {
			r.Item.OriginalPrice = 1e308
			r.ExchangeRate = 500
		}, errors.TypeInvalidMonetary},
		{"infinite rate", func(r *QuoteRequest) { r.ExchangeRate = math.Inf(1) }, errors.TypeInvalidMonetary},
		{"NaN price", func(r *QuoteRequest) { r.Item.OriginalPrice = math.NaN() }, errors.TypeInvalidMonetary},
		{"infinite weight", func(r *QuoteRequest) { r.Item.WeightKg = math.Inf(1) }, errors.TypeInvalidWeight},
		{"infinite parameter", func(r *QuoteRequest) {
			r.Overrides = types.ParameterOverrides{"multiplier": math.Inf(1)}
		}, errors.TypeInvalidParameter},
		{"NaN parameter", func(r *QuoteRequest) {
			r.Overrides = types.ParameterOverrides{"divider": math.NaN()}
		}, errors.TypeInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := QuoteRequest{Item: validItem(), ExchangeRate: 1}
			tt.mutate(&req)

			result, err := e.Quote(req)
			if err == nil {
				t.Fatalf("Expected error, got %+v", result)
			}
			if !errors.IsType(err, tt.expected) {
				t.Errorf("Expected %s, got %v", tt.expected, err)
			}
		})
	}
}

func TestQuoteLargeWeightIsNotRejected(t *testing.T) {
	e := NewDefault()
	item := validItem()
	item.WeightKg = 250000

	result, err := e.Quote(QuoteRequest{Item: item, ExchangeRate: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Band != types.BandD {
		t.Errorf("Expected band D, got %s", result.Band)
	}
	if got := result.DeliveryCost.StringFixed(2); got != "226780.00" {
		t.Errorf("Expected plateau cost 226780.00, got %s", got)
	}
}

func TestQuoteLargeDimensionsHitPlateau(t *testing.T) {
	e := NewDefault()
	item := validItem()
	item.Dimensions = types.Dimensions{Length: 1e6, Width: 1e6, Height: 1e6}

	result, err := e.Quote(QuoteRequest{Item: item, ExchangeRate: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1e9 m³ * 200
	if got := result.BillableWeight.String(); got != "200000000000" {
		t.Errorf("Expected billable weight 200000000000, got %s", got)
	}
	if got := result.DeliveryCost.StringFixed(2); got != "226780.00" {
		t.Errorf("Expected plateau cost 226780.00, got %s", got)
	}
}

func TestValidateNeedsNoExchangeRate(t *testing.T) {
	e := NewDefault()

	if err := e.Validate(QuoteRequest{Item: validItem()}); err != nil {
		t.Errorf("Expected valid request, got %v", err)
	}

	item := validItem()
	item.WeightKg = 0
	if err := e.Validate(QuoteRequest{Item: item}); !errors.IsType(err, errors.TypeInvalidWeight) {
		t.Errorf("Expected %s, got %v", errors.TypeInvalidWeight, err)
	}

	item = validItem()
	item.Dimensions = types.Dimensions{Length: 1e-200, Width: 1e-200, Height: 1e-200}
	if err := e.Validate(QuoteRequest{Item: item}); !errors.IsType(err, errors.TypeInvalidDimensions) {
		t.Errorf("Expected %s, got %v", errors.TypeInvalidDimensions, err)
	}
}

func TestNewRejectsInvalidDefaults(t *testing.T) {
	p := types.DefaultFormulaParameters()
	p.Divider = 0

	if _, err := New(p); !errors.IsType(err, errors.TypeInvalidParameter) {
		t.Errorf("Expected %s, got %v", errors.TypeInvalidParameter, err)
	}
}

func TestQuoteConcurrent(t *testing.T) {
	e := NewDefault()
	want, err := e.Quote(QuoteRequest{Item: validItem(), ExchangeRate: 520})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.Quote(QuoteRequest{Item: validItem(), ExchangeRate: 520})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if !got.FinalPrice.Equal(want.FinalPrice) {
				t.Errorf("Expected %s, got %s", want.FinalPrice, got.FinalPrice)
			}
		}()
	}
	wg.Wait()
}
