package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Validate reports whether the coordinates are finite and inside the WGS84 range.
func (c Coordinates) Validate() error {
	var bad []string
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		bad = append(bad, fmt.Sprintf("latitude=%v", c.Lat))
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) || c.Lon < -180 || c.Lon > 180 {
		bad = append(bad, fmt.Sprintf("longitude=%v", c.Lon))
	}
	if len(bad) > 0 {
		return InvalidInput("validate coordinates", "coordinates out of range", bad...)
	}
	return nil
}
