package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoPointRoundTrip(t *testing.T) {
	original := NewGeoPoint(12.5, 77.2)

	value, err := original.Value()
	require.NoError(t, err)

	var scanned GeoPoint
	require.NoError(t, scanned.Scan(value))

	// Longitude first, order preserved exactly
	assert.Equal(t, []float64{12.5, 77.2}, scanned.Coordinates)
	assert.Equal(t, "Point", scanned.Type)
	assert.Equal(t, 12.5, scanned.Lng())
	assert.Equal(t, 77.2, scanned.Lat())
}

func TestGeoPointScanString(t *testing.T) {
	var p GeoPoint
	require.NoError(t, p.Scan(`{"type":"Point","coordinates":[4.9,52.37]}`))
	assert.Equal(t, 4.9, p.Lng())
	assert.Equal(t, 52.37, p.Lat())
	assert.True(t, p.Valid())
}

func TestGeoPointJSON(t *testing.T) {
	data, err := json.Marshal(NewGeoPoint(12.5, 77.2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Point","coordinates":[12.5,77.2]}`, string(data))
}

func TestGeoPointValid(t *testing.T) {
	assert.False(t, GeoPoint{}.Valid())
	assert.False(t, GeoPoint{Type: "Point", Coordinates: []float64{1}}.Valid())
	assert.True(t, NewGeoPoint(0, 0).Valid())
}

func TestPropertyHasAmenities(t *testing.T) {
	p := &Property{Amenities: []string{"wifi"}}

	assert.True(t, p.HasAmenities(nil))
	assert.True(t, p.HasAmenities([]string{"wifi"}))
	// AND semantics: a property with only wifi is excluded for [wifi, pool]
	assert.False(t, p.HasAmenities([]string{"wifi", "pool"}))
}
