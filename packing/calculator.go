package packing

import "math"

// VolumetricDivisor converts cm3 to kg for air-freight chargeable weight.
const VolumetricDivisor = 4500.0

// Volume returns length*height*width in cm3, rounded to 2 decimals.
// Non-finite inputs are coerced to 0, so the calculator never fails.
func Volume(length, height, width float64) float64 {
	return round2(finite(length) * finite(height) * finite(width))
}

// VolumetricWeight returns volume/4500 in kg, rounded to 2 decimals.
func VolumetricWeight(volume float64) float64 {
	return round2(finite(volume) / VolumetricDivisor)
}

// FinalWeight is the per-box chargeable weight: the greater of the actual
// scale weight and the volumetric weight, rounded to 2 decimals.
func FinalWeight(actualWeight, volumetricWeight float64) float64 {
	return round2(math.Max(finite(actualWeight), finite(volumetricWeight)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
