// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions and
// parameter resolution.
package types

import (
	"math"
	"strings"
)

// Currency represents an ISO currency code
type Currency string

const (
	// CurrencyKZT is the local (landed) currency
	CurrencyKZT Currency = "KZT"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyRUB Currency = "RUB"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Normalize upper-cases and trims the code
func (c Currency) Normalize() Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(string(c))))
}

// IsLocal reports whether no conversion is needed
func (c Currency) IsLocal() bool {
	return c.Normalize() == CurrencyKZT
}

// Dimensions are the outer parcel dimensions in millimeters
type Dimensions struct {
	Length float64 `json:"length" yaml:"length"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Valid reports whether every side is strictly positive and finite
func (d Dimensions) Valid() bool {
	for _, side := range []float64{d.Length, d.Width, d.Height} {
		if !(side > 0) || math.IsInf(side, 1) {
			return false
		}
	}
	return true
}

// Item is a single imported good to be priced
type Item struct {
	// Name is a human-readable product name
	Name string `json:"productName"`

	// OriginalPrice is the price in Currency
	OriginalPrice float64 `json:"originalPrice"`

	// Currency is the currency of OriginalPrice
	Currency Currency `json:"currency"`

	// WeightKg is the actual gross weight
	WeightKg float64 `json:"weight"`

	// Dimensions are the parcel dimensions in mm
	Dimensions Dimensions `json:"dimensions"`
}
