package pricing

import "landed-cost/core/types"

// Band thresholds in kg. A weight equal to a threshold belongs to the lower band.
const (
	flatBandLimit  = 30.0
	firstBandLimit = 300.0
	plateauLimit   = 1000.0
)

// Carrier-fixed figures of the 300+ kg rate card. They are deliberately not
// part of FormulaParameters.
const (
	// firstBandSpan is the 30-300 kg span billed in full above 300 kg
	firstBandSpan = firstBandLimit - flatBandLimit

	pickupRate300        = 15.0
	pickupRate1000       = 1.0
	cityDeliveryRate300  = 2.0
	cityDeliveryRate1000 = 9.0
)

// ClassifyBand returns the tariff band for a billable weight
func ClassifyBand(weightKg float64) types.Band {
	switch {
	case weightKg <= flatBandLimit:
		return types.BandA
	case weightKg <= firstBandLimit:
		return types.BandB
	case weightKg <= plateauLimit:
		return types.BandC
	default:
		return types.BandD
	}
}

// DeliveryCost evaluates the four-band tariff for a billable weight.
// Weight above 1000 kg is billed exactly as 1000 kg.
func DeliveryCost(weightKg float64, p types.FormulaParameters) float64 {
	switch ClassifyBand(weightKg) {
	case types.BandA:
		return p.Delivery30

	case types.BandB:
		excess := weightKg - flatBandLimit
		return p.Base30 +
			excess*p.Rate30 +
			p.Pickup30 +
			excess*p.PickupRate30 +
			p.WarehouseTotal() +
			p.DeliveryCity30 +
			excess*p.CityRate30

	case types.BandC:
		legs := heavyLegs(weightKg-firstBandLimit, max(0, weightKg-plateauLimit), p)
		return legs.Linehaul + legs.Pickup + legs.CityDelivery

	default:
		legs := heavyLegs(plateauLimit-firstBandLimit, 0, p)
		return legs.Linehaul + legs.Pickup + legs.CityDelivery
	}
}

// DeliveryLegs itemizes DeliveryCost per logistics leg. The legs sum to
// DeliveryCost up to floating-point reassociation.
func DeliveryLegs(weightKg float64, p types.FormulaParameters) types.DeliveryLegs {
	switch ClassifyBand(weightKg) {
	case types.BandA:
		return types.DeliveryLegs{Flat: p.Delivery30}

	case types.BandB:
		excess := weightKg - flatBandLimit
		return types.DeliveryLegs{
			Linehaul:     p.Base30 + excess*p.Rate30,
			Pickup:       p.Pickup30 + excess*p.PickupRate30 + p.WarehouseTotal(),
			CityDelivery: p.DeliveryCity30 + excess*p.CityRate30,
		}

	case types.BandC:
		return heavyLegs(weightKg-firstBandLimit, max(0, weightKg-plateauLimit), p)

	default:
		return heavyLegs(plateauLimit-firstBandLimit, 0, p)
	}
}

// heavyLegs is the 300+ kg rate card: each leg accumulates its 30-300 kg
// span in full plus the marginal excess above 300 and 1000 kg. Warehouse
// services are charged on both the pickup and the city delivery leg.
func heavyLegs(excess300, excess1000 float64, p types.FormulaParameters) types.DeliveryLegs {
	warehouse := p.WarehouseTotal()

	return types.DeliveryLegs{
		Linehaul: p.Base30 +
			firstBandSpan*p.Rate30 +
			excess300*p.Rate300 +
			excess1000*p.Rate1000,
		Pickup: p.Pickup30 +
			firstBandSpan*p.PickupRate30 +
			excess300*pickupRate300 +
			excess1000*pickupRate1000 +
			warehouse,
		CityDelivery: p.DeliveryCity30 +
			firstBandSpan*p.CityRate30 +
			excess300*cityDeliveryRate300 +
			excess1000*cityDeliveryRate1000 +
			warehouse,
	}
}
