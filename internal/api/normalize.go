package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Request bodies for amenities and location have shipped in several
// shapes over time: structured JSON, JSON encoded as a string (from
// form-data), or a bare string. Everything is normalized here into
// canonical inputs; the core components never see raw payloads.

// flexFloat decodes a JSON number or a numeric string. Anything else is
// a validation failure, never a silent zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty number")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid number")
	}
	*f = flexFloat(v)
	return nil
}

func (f *flexFloat) ptr() *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

// stringList decodes a JSON array of strings, a JSON-encoded array in a
// string, or a single bare string.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("invalid string list")
	}
	return s.fromString(single)
}

func (s *stringList) fromString(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*s = nil
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		*s = list
		return nil
	}
	*s = []string{raw}
	return nil
}

// locationInput decodes {lat, lng[, radius]}, a GeoJSON-style
// {coordinates: [lng, lat]}, or either of those JSON-encoded in a
// string.
type locationInput struct {
	Lat         *flexFloat `json:"lat"`
	Lng         *flexFloat `json:"lng"`
	Radius      *flexFloat `json:"radius"`
	Coordinates []float64  `json:"coordinates"`
}

func (l *locationInput) UnmarshalJSON(data []byte) error {
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		return l.fromString(raw)
	}

	type plain locationInput
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid location")
	}
	*l = locationInput(p)
	return nil
}

func (l *locationInput) fromString(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*l = locationInput{}
		return nil
	}
	type plain locationInput
	var p plain
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return fmt.Errorf("invalid location %q", raw)
	}
	*l = locationInput(p)
	return nil
}

// point resolves the coordinate pair, longitude first. An explicit
// coordinates array wins over lat/lng keys.
func (l *locationInput) point() *orb.Point {
	if l == nil {
		return nil
	}
	if len(l.Coordinates) == 2 {
		return &orb.Point{l.Coordinates[0], l.Coordinates[1]}
	}
	if l.Lat != nil && l.Lng != nil {
		return &orb.Point{float64(*l.Lng), float64(*l.Lat)}
	}
	return nil
}
