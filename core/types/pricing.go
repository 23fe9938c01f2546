package types

import "github.com/shopspring/decimal"

// Band identifies a weight range of the delivery tariff
type Band string

const (
	// BandA is billable weight up to 30 kg (flat fee)
	BandA Band = "A"

	// BandB is 30 kg < weight <= 300 kg
	BandB Band = "B"

	// BandC is 300 kg < weight <= 1000 kg
	BandC Band = "C"

	// BandD is weight above 1000 kg, billed as exactly 1000 kg
	BandD Band = "D"
)

// String returns the string representation
func (b Band) String() string {
	return string(b)
}

// DeliveryLegs splits a delivery cost into the three logistics legs.
// Band A is a flat fee and is reported entirely in Flat.
type DeliveryLegs struct {
	// Flat is the Band A fee; zero in other bands
	Flat float64 `json:"flat,omitempty"`

	// Linehaul is the city-to-city leg
	Linehaul float64 `json:"linehaul,omitempty"`

	// Pickup is the origin warehouse pickup leg, including warehouse services
	Pickup float64 `json:"pickup,omitempty"`

	// CityDelivery is the destination city delivery leg
	CityDelivery float64 `json:"cityDelivery,omitempty"`
}

// Total sums every leg
func (l DeliveryLegs) Total() float64 {
	return l.Flat + l.Linehaul + l.Pickup + l.CityDelivery
}

// CalculationSteps is the human-readable trace of the composition
type CalculationSteps struct {
	Step1 string `json:"step1"`
	Step2 string `json:"step2"`
	Step3 string `json:"step3"`
}

// ExactValues are the unrounded intermediate values of a calculation
type ExactValues struct {
	ConvertedPrice    float64 `json:"convertedPrice"`
	Volume            float64 `json:"volume"`
	BillableWeight    float64 `json:"billableWeight"`
	DeliveryCost      float64 `json:"deliveryCost"`
	PriceWithDelivery float64 `json:"priceWithDelivery"`
	FinalPrice        float64 `json:"finalPrice"`
}

// PricingResult is the full breakdown of a landed price calculation.
// Monetary fields are rounded to 2 decimal places for presentation.
type PricingResult struct {
	// ProductName is the priced item name
	ProductName string `json:"productName"`

	// OriginalPrice is the price in Currency
	OriginalPrice decimal.Decimal `json:"originalPrice"`

	// Currency is the source currency
	Currency Currency `json:"currency"`

	// ExchangeRate is the KZT amount per unit of Currency
	ExchangeRate decimal.Decimal `json:"exchangeRate"`

	// ConvertedPrice is the price after divider, rate and multiplier
	ConvertedPrice decimal.Decimal `json:"convertedPrice"`

	// Volume is in m³, rounded to 4 decimal places
	Volume decimal.Decimal `json:"volume"`

	// BillableWeight is the weight used for tariff lookup
	BillableWeight decimal.Decimal `json:"deliveryWeight"`

	// Band is the tariff band that priced the delivery
	Band Band `json:"deliveryBand"`

	// DeliveryCost is the total delivery cost in KZT
	DeliveryCost decimal.Decimal `json:"deliveryCost"`

	// Legs itemizes DeliveryCost
	Legs DeliveryLegs `json:"deliveryLegs"`

	// PriceWithDelivery is ConvertedPrice + DeliveryCost
	PriceWithDelivery decimal.Decimal `json:"priceWithDelivery"`

	// FinalPrice is PriceWithDelivery with VAT applied
	FinalPrice decimal.Decimal `json:"finalPrice"`

	// Params are the resolved parameters used
	Params FormulaParameters `json:"formulaParams"`

	// Steps is the three-step arithmetic trace
	Steps CalculationSteps `json:"calculationSteps"`

	// Exact holds full-precision intermediate values
	Exact ExactValues `json:"-"`
}
