package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
)

// GeoPoint is a GeoJSON point stored in a jsonb column.
// Coordinates are [longitude, latitude], longitude first.
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{
		Type:        "Point",
		Coordinates: []float64{lng, lat},
	}
}

func (p GeoPoint) Lng() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

func (p GeoPoint) Lat() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// Point converts to an orb point for distance calculations.
func (p GeoPoint) Point() orb.Point {
	return orb.Point{p.Lng(), p.Lat()}
}

func (p GeoPoint) Valid() bool {
	return p.Type == "Point" && len(p.Coordinates) == 2
}

func (p GeoPoint) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *GeoPoint) Scan(value interface{}) error {
	if value == nil {
		*p = GeoPoint{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for GeoPoint: %T", value)
	}
	return json.Unmarshal(data, p)
}

func (GeoPoint) GormDataType() string {
	return "jsonb"
}
