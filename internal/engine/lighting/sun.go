// Package lighting provides lighting utilities for the viewer.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/islegen/pkg/math"
)

// SunDirection converts sun angles in degrees to a unit vector pointing
// towards the sun. Longitude rotates around Y starting at +Z; latitude is
// the elevation above the horizon.
func SunDirection(longitude, latitude float64) math.Vec3 {
	lonRad := longitude * gomath.Pi / 180.0
	latRad := latitude * gomath.Pi / 180.0

	return math.Vec3{
		X: float32(gomath.Cos(latRad) * gomath.Sin(lonRad)),
		Y: float32(gomath.Sin(latRad)),
		Z: float32(gomath.Cos(latRad) * gomath.Cos(lonRad)),
	}
}

// LightDirection is the direction sunlight travels, the negated
// SunDirection.
func LightDirection(longitude, latitude float64) math.Vec3 {
	return SunDirection(longitude, latitude).Scale(-1)
}
