package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGate_IsAdmitted(t *testing.T) {
	gate := NewGate(Sweden)

	tests := []struct {
		name     string
		lat, lon float64
		expected bool
	}{
		{name: "Stockholm", lat: 59.33, lon: 18.06, expected: true},
		{name: "Minimum latitude is inclusive", lat: 55.3, lon: 18, expected: true},
		{name: "Maximum latitude is inclusive", lat: 69.1, lon: 18, expected: true},
		{name: "Minimum longitude is inclusive", lat: 60, lon: 11.1, expected: true},
		{name: "Maximum longitude is inclusive", lat: 60, lon: 24.2, expected: true},
		{name: "South of the box", lat: 55.29, lon: 18, expected: false},
		{name: "North of the box", lat: 69.11, lon: 18, expected: false},
		{name: "West of the box", lat: 60, lon: 11.09, expected: false},
		{name: "East of the box", lat: 60, lon: 24.21, expected: false},
		{name: "Only latitude inside", lat: 60, lon: 100, expected: false},
		{name: "Null island", lat: 0, lon: 0, expected: false},
		{name: "NaN latitude", lat: math.NaN(), lon: 18, expected: false},
		{name: "Infinite longitude", lat: 60, lon: math.Inf(1), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, gate.IsAdmitted(tt.lat, tt.lon))
		})
	}
}

func TestGate_AdmitFailsClosed(t *testing.T) {
	req := require.New(t)
	gate := NewGate(Sweden)

	// Given no coordinates were supplied
	req.False(gate.Admit(nil))

	// Given malformed coordinates
	req.False(gate.Admit(&Coordinates{Latitude: math.NaN(), Longitude: math.NaN()}))

	// Given coordinates inside the box
	req.True(gate.Admit(&Coordinates{Latitude: 60, Longitude: 18}))
}

func TestGate_ConfiguredRegion(t *testing.T) {
	req := require.New(t)
	gate := NewGate(China)

	req.True(gate.IsAdmitted(39.9, 116.4))
	req.False(gate.IsAdmitted(59.33, 18.06))
	req.Equal(China, gate.Region())
}

func TestMapsURL(t *testing.T) {
	require.Equal(t, "https://www.google.com/maps?q=59.33,18.06", MapsURL(59.33, 18.06))
}
