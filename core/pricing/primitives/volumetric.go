// Package primitives - Volumetric sizing primitives
// Converts parcel dimensions into volume and billable weight.
package primitives

import "landed-cost/core/types"

// mmPerMeter converts millimeters to meters
const mmPerMeter = 1000.0

// Volume returns the parcel volume in m³ for dimensions given in mm.
// Any non-positive side yields exactly 0, which callers must treat as
// invalid dimensions rather than an empty parcel.
func Volume(length, width, height float64) float64 {
	if length <= 0 || width <= 0 || height <= 0 {
		return 0
	}

	lengthM := length / mmPerMeter
	widthM := width / mmPerMeter
	heightM := height / mmPerMeter
	return lengthM * widthM * heightM
}

// VolumeOf is Volume for a Dimensions value
func VolumeOf(d types.Dimensions) float64 {
	return Volume(d.Length, d.Width, d.Height)
}

// VolumetricWeight converts a volume into a weight-equivalent in kg.
// A non-positive factor falls back to the default of 200.
func VolumetricWeight(volumeM3, factor float64) float64 {
	if factor <= 0 {
		factor = types.DefaultVolumetricFactor
	}
	return volumeM3 * factor
}

// BillableWeight is the greater of actual and volumetric weight
func BillableWeight(weightKg, volumeM3, factor float64) float64 {
	return max(weightKg, VolumetricWeight(volumeM3, factor))
}
