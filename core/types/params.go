package types

import (
	"fmt"
	"math"
	"sort"
)

// Parameter wire names. These are the keys accepted in override maps and
// returned by the formula-params endpoint.
const (
	ParamDivider          = "divider"
	ParamMultiplier       = "multiplier"
	ParamNDS              = "nds"
	ParamDelivery30       = "delivery30"
	ParamBase30           = "base30"
	ParamRate30           = "rate30"
	ParamPickup30         = "pickup30"
	ParamPickupRate30     = "pickupRate30"
	ParamWarehouseCount   = "warehouseCount"
	ParamWarehouseRate    = "warehouseRate"
	ParamDeliveryCity30   = "deliveryCity30"
	ParamCityRate30       = "cityRate30"
	ParamRate300          = "rate300"
	ParamRate1000         = "rate1000"
	ParamVolumetricFactor = "volumetricFactor"
)

// DefaultVolumetricFactor converts m³ to a weight-equivalent in kg
const DefaultVolumetricFactor = 200

// FormulaParameters holds every tunable knob of the pricing formula.
// A value is resolved once per calculation and never mutated afterwards.
type FormulaParameters struct {
	// Divider is applied to the original price before conversion
	Divider float64 `json:"divider" yaml:"divider"`

	// Multiplier is applied after conversion
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`

	// NDS is the VAT multiplier
	NDS float64 `json:"nds" yaml:"nds"`

	// Delivery30 is the flat fee for billable weight up to 30 kg
	Delivery30 float64 `json:"delivery30" yaml:"delivery30"`

	// Base30 is the city-to-city base fee
	Base30 float64 `json:"base30" yaml:"base30"`

	// Rate30 is the city-to-city rate per kg above 30 kg
	Rate30 float64 `json:"rate30" yaml:"rate30"`

	// Pickup30 is the warehouse pickup base fee
	Pickup30 float64 `json:"pickup30" yaml:"pickup30"`

	// PickupRate30 is the pickup rate per kg above 30 kg
	PickupRate30 float64 `json:"pickupRate30" yaml:"pickupRate30"`

	// WarehouseCount is the number of warehouse service units
	WarehouseCount float64 `json:"warehouseCount" yaml:"warehouseCount"`

	// WarehouseRate is the price of one warehouse service unit
	WarehouseRate float64 `json:"warehouseRate" yaml:"warehouseRate"`

	// DeliveryCity30 is the city delivery base fee
	DeliveryCity30 float64 `json:"deliveryCity30" yaml:"deliveryCity30"`

	// CityRate30 is the city delivery rate per kg above 30 kg
	CityRate30 float64 `json:"cityRate30" yaml:"cityRate30"`

	// Rate300 is the city-to-city rate per kg in the 300-1000 kg range
	Rate300 float64 `json:"rate300" yaml:"rate300"`

	// Rate1000 is the city-to-city rate per kg above 1000 kg
	Rate1000 float64 `json:"rate1000" yaml:"rate1000"`

	// VolumetricFactor converts volume in m³ to kg
	VolumetricFactor float64 `json:"volumetricFactor" yaml:"volumetricFactor"`
}

// DefaultFormulaParameters returns the central defaults
func DefaultFormulaParameters() FormulaParameters {
	return FormulaParameters{
		Divider:          1.2,
		Multiplier:       1.12,
		NDS:              1.18,
		Delivery30:       31900,
		Base30:           7500,
		Rate30:           179,
		Pickup30:         10000,
		PickupRate30:     20,
		WarehouseCount:   26,
		WarehouseRate:    400,
		DeliveryCity30:   4000,
		CityRate30:       15,
		Rate300:          164,
		Rate1000:         143,
		VolumetricFactor: DefaultVolumetricFactor,
	}
}

// WarehouseTotal is the fixed warehouse service charge
func (p FormulaParameters) WarehouseTotal() float64 {
	return p.WarehouseCount * p.WarehouseRate
}

// fields maps wire names to the addressable fields of p
func (p *FormulaParameters) fields() map[string]*float64 {
	return map[string]*float64{
		ParamDivider:          &p.Divider,
		ParamMultiplier:       &p.Multiplier,
		ParamNDS:              &p.NDS,
		ParamDelivery30:       &p.Delivery30,
		ParamBase30:           &p.Base30,
		ParamRate30:           &p.Rate30,
		ParamPickup30:         &p.Pickup30,
		ParamPickupRate30:     &p.PickupRate30,
		ParamWarehouseCount:   &p.WarehouseCount,
		ParamWarehouseRate:    &p.WarehouseRate,
		ParamDeliveryCity30:   &p.DeliveryCity30,
		ParamCityRate30:       &p.CityRate30,
		ParamRate300:          &p.Rate300,
		ParamRate1000:         &p.Rate1000,
		ParamVolumetricFactor: &p.VolumetricFactor,
	}
}

// AsMap returns the parameters keyed by wire name
func (p FormulaParameters) AsMap() map[string]float64 {
	out := make(map[string]float64, 15)
	for name, ptr := range p.fields() {
		out[name] = *ptr
	}
	return out
}

// ParameterNames returns every known wire name in sorted order
func ParameterNames() []string {
	var p FormulaParameters
	names := make([]string, 0, 15)
	for name := range p.fields() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsParameter reports whether name is a known wire name
func IsParameter(name string) bool {
	var p FormulaParameters
	_, ok := p.fields()[name]
	return ok
}

// Validate checks that every parameter is strictly positive and finite
func (p FormulaParameters) Validate() error {
	values := p.AsMap()
	for _, name := range ParameterNames() {
		if err := checkValue(name, values[name]); err != nil {
			return err
		}
	}
	return nil
}

func checkValue(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return fmt.Errorf("parameter %q must be a positive finite number, got %v", name, v)
	}
	return nil
}

// ParameterOverrides is a per-request subset of FormulaParameters keyed by
// wire name
type ParameterOverrides map[string]float64

// Validate rejects unknown keys and values that are not positive and finite
func (o ParameterOverrides) Validate() error {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !IsParameter(k) {
			return fmt.Errorf("unknown formula parameter %q", k)
		}
		if err := checkValue(k, o[k]); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns a copy of base with the overrides applied. Keys missing
// from o keep the base value. Unknown keys are ignored; call Validate first
// to reject them.
func (o ParameterOverrides) Resolve(base FormulaParameters) FormulaParameters {
	resolved := base
	fields := resolved.fields()
	for k, v := range o {
		if ptr, ok := fields[k]; ok {
			*ptr = v
		}
	}
	return resolved
}
