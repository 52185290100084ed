package packing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVolume(t *testing.T) {
	assert.Equal(t, 1000.0, Volume(10, 10, 10))
	assert.Equal(t, 125000.0, Volume(50, 50, 50))
	assert.Equal(t, 0.0, Volume(0, 10, 10))

	// fractional dimensions round to 2 decimals
	assert.Equal(t, 1.73, Volume(1.2, 1.2, 1.2))
}

func TestVolumeCoercesNonFiniteInputs(t *testing.T) {
	assert.Equal(t, 0.0, Volume(math.NaN(), 10, 10))
	assert.Equal(t, 0.0, Volume(math.Inf(1), 10, 10))
	assert.Equal(t, 0.0, Volume(10, math.Inf(-1), 10))
}

func TestVolumetricWeight(t *testing.T) {
	assert.Equal(t, 0.22, VolumetricWeight(1000))
	assert.Equal(t, 27.78, VolumetricWeight(125000))
	assert.Equal(t, 0.0, VolumetricWeight(0))
	assert.Equal(t, 0.0, VolumetricWeight(math.NaN()))
}

func TestFinalWeight(t *testing.T) {
	assert.Equal(t, 5.0, FinalWeight(5, 0.22))
	assert.Equal(t, 27.78, FinalWeight(1, 27.78))
	assert.Equal(t, 3.0, FinalWeight(3, 3))
	assert.Equal(t, 2.5, FinalWeight(math.NaN(), 2.5))
}

func TestBoxRecompute(t *testing.T) {
	box := Box{Length: 10, Height: 10, Width: 10, Weight: 5}
	box.Recompute()

	assert.Equal(t, 1000.0, box.Volume)
	assert.Equal(t, 0.22, box.VolumeWeight)
	assert.Equal(t, 5.0, box.FinalWeight)
}

func TestShortBoxRecomputeZeroesDimensions(t *testing.T) {
	box := Box{IsShortBox: true, Length: 10, Height: 10, Width: 10, Weight: 5}
	box.Recompute()

	assert.Equal(t, 0.0, box.Length)
	assert.Equal(t, 0.0, box.Weight)
	assert.Equal(t, 0.0, box.Volume)
	assert.Equal(t, 0.0, box.VolumeWeight)
	assert.Equal(t, 0.0, box.FinalWeight)
}
