package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

// ComposeInput carries everything needed to compose a landed price
type ComposeInput struct {
	ProductName    string
	OriginalPrice  float64
	Currency       types.Currency
	ExchangeRate   float64
	Volume         float64
	BillableWeight float64
	DeliveryCost   float64
	Legs           types.DeliveryLegs
	Params         types.FormulaParameters
}

// Compose converts the original price, adds delivery and applies VAT.
// Intermediate values keep full precision; only the reported figures are
// rounded.
func Compose(in ComposeInput) (*types.PricingResult, error) {
	if !(in.OriginalPrice > 0) {
		return nil, errors.InvalidMonetary("original price must be positive").
			WithContext("original_price", in.OriginalPrice)
	}
	if !(in.ExchangeRate > 0) {
		return nil, errors.InvalidMonetary("exchange rate must be positive").
			WithContext("exchange_rate", in.ExchangeRate).
			WithContext("currency", in.Currency.String())
	}
	if in.DeliveryCost < 0 {
		return nil, errors.InvalidMonetary("delivery cost must not be negative").
			WithContext("delivery_cost", in.DeliveryCost)
	}
	if !finite(in.OriginalPrice) || !finite(in.ExchangeRate) || !finite(in.DeliveryCost) {
		return nil, errors.InvalidMonetary("price, exchange rate and delivery cost must be finite")
	}
	if !finite(in.Volume) || !finite(in.BillableWeight) {
		return nil, errors.InvalidDimensions("volume and billable weight must be finite").
			WithContext("volume", in.Volume)
	}
	if err := in.Params.Validate(); err != nil {
		return nil, errors.InvalidParameter("invalid formula parameters", err)
	}

	p := in.Params
	converted := in.OriginalPrice / p.Divider * in.ExchangeRate * p.Multiplier
	withDelivery := converted + in.DeliveryCost
	final := withDelivery * p.NDS
	if !finite(converted) || !finite(withDelivery) || !finite(final) {
		return nil, errors.InvalidMonetary("price is out of range").
			WithContext("original_price", in.OriginalPrice).
			WithContext("exchange_rate", in.ExchangeRate)
	}

	return &types.PricingResult{
		ProductName:       in.ProductName,
		OriginalPrice:     decimal.NewFromFloat(in.OriginalPrice),
		Currency:          in.Currency,
		ExchangeRate:      decimal.NewFromFloat(in.ExchangeRate),
		ConvertedPrice:    Round(converted),
		Volume:            RoundTo(in.Volume, 4),
		BillableWeight:    Round(in.BillableWeight),
		Band:              ClassifyBand(in.BillableWeight),
		DeliveryCost:      Round(in.DeliveryCost),
		Legs:              in.Legs,
		PriceWithDelivery: Round(withDelivery),
		FinalPrice:        Round(final),
		Params:            p,
		Steps: types.CalculationSteps{
			Step1: fmt.Sprintf("Conversion: %s / %s × %s × %s = %s",
				number(in.OriginalPrice), number(p.Divider), number(in.ExchangeRate), number(p.Multiplier),
				Round(converted).StringFixed(2)),
			Step2: fmt.Sprintf("Delivery: %s + %s = %s",
				Round(converted).StringFixed(2), Round(in.DeliveryCost).StringFixed(2),
				Round(withDelivery).StringFixed(2)),
			Step3: fmt.Sprintf("VAT: %s × %s = %s",
				Round(withDelivery).StringFixed(2), number(p.NDS), Round(final).StringFixed(2)),
		},
		Exact: types.ExactValues{
			ConvertedPrice:    converted,
			Volume:            in.Volume,
			BillableWeight:    in.BillableWeight,
			DeliveryCost:      in.DeliveryCost,
			PriceWithDelivery: withDelivery,
			FinalPrice:        final,
		},
	}, nil
}

// number renders an input operand without trailing zeros
func number(v float64) string {
	return decimal.NewFromFloat(v).String()
}
