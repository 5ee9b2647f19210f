package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	latitudeKey  = "latitude"
	longitudeKey = "longitude"
)

// ErrInvalidCoordinate marks a catalog record whose coordinate is not a finite number.
var ErrInvalidCoordinate = errors.New("invalid coordinate value")

// Brewery is a single catalog record. Only the coordinates are interpreted;
// every other field the catalog sends is kept in Fields and written back unchanged.
type Brewery struct {
	Coordinates

	// Located is false when the catalog had no usable coordinates for the record.
	Located bool
	Fields  map[string]any

	// CoordinateErr is set when a coordinate was present but could not be parsed.
	CoordinateErr error
}

// ID returns the catalog identifier of the brewery, if present.
func (b Brewery) ID() string {
	return b.stringField("id")
}

// Name returns the display name of the brewery, if present.
func (b Brewery) Name() string {
	return b.stringField("name")
}

func (b Brewery) stringField(key string) string {
	if s, ok := b.Fields[key].(string); ok {
		return s
	}
	return ""
}

// UnmarshalJSON decodes a catalog record. Coordinates may arrive as JSON numbers
// or numeric strings; null, missing or empty values leave the record unlocated.
// A malformed coordinate also leaves it unlocated and is reported in CoordinateErr,
// so one bad record does not fail a whole catalog page.
func (b *Brewery) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return err
	}
	if fields == nil {
		fields = map[string]any{}
	}

	var coordErr error

	lat, latOK, err := parseCoordinate(fields[latitudeKey])
	if err != nil {
		coordErr = fmt.Errorf("%w: latitude: %w", ErrInvalidCoordinate, err)
	}
	lon, lonOK, err := parseCoordinate(fields[longitudeKey])
	if err != nil && coordErr == nil {
		coordErr = fmt.Errorf("%w: longitude: %w", ErrInvalidCoordinate, err)
	}

	delete(fields, latitudeKey)
	delete(fields, longitudeKey)

	*b = Brewery{
		Coordinates:   Coordinates{Latitude: lat, Longitude: lon},
		Located:       latOK && lonOK && coordErr == nil,
		Fields:        fields,
		CoordinateErr: coordErr,
	}
	if !b.Located {
		b.Coordinates = Coordinates{}
	}

	return nil
}

// MarshalJSON writes the passthrough fields together with numeric coordinates.
func (b Brewery) MarshalJSON() ([]byte, error) {
	const coordinateKeys = 2
	out := make(map[string]any, len(b.Fields)+coordinateKeys)
	for k, v := range b.Fields {
		out[k] = v
	}

	if b.Located {
		out[latitudeKey] = b.Latitude
		out[longitudeKey] = b.Longitude
	} else {
		out[latitudeKey] = nil
		out[longitudeKey] = nil
	}

	return json.Marshal(out)
}

func parseCoordinate(raw any) (float64, bool, error) {
	switch v := raw.(type) {
	case nil:
		return 0, false, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false, err
		}
		return f, true, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false, fmt.Errorf("non-finite value %q", s)
		}
		return f, true, nil
	default:
		return 0, false, fmt.Errorf("unexpected type %T", raw)
	}
}

// Tiers holds the result of a footrace walk. Entries appear in the order they were selected.
type Tiers struct {
	FiveK []Brewery `json:"5k"`
	TenK  []Brewery `json:"10k"`
}
