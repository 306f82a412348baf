package distance

import (
	"math"

	"github.com/golang/geo/s1"
)

// DegreesPerRadian converts between the two angle units.
const DegreesPerRadian = 180 / math.Pi

// MaxChord is the squared chord length between antipodal unit vectors.
const MaxChord = 4.0

// Embed maps longitude/latitude in degrees onto the unit sphere.
//
// Longitude -180 maps to azimuth 0 and latitude 90 to inclination 0. The
// rotation relative to the usual ECEF frame does not change any chord length.
func Embed(lon, lat float64) Vector[float64] {
	azimuth := (lon + 180) / DegreesPerRadian
	inclination := (90 - lat) / DegreesPerRadian
	sinAz, cosAz := math.Sincos(azimuth)
	sinInc, cosInc := math.Sincos(inclination)
	return Vector[float64]{sinInc * cosAz, sinInc * sinAz, cosInc}
}

// ChordBound converts a great-circle angle in degrees into the squared chord
// length (2*sin(angle/2))^2 between two unit vectors that far apart.
//
// The chord grows strictly with the angle on [0, 180] degrees, so a chord
// bound prunes exactly the same points as the angular bound.
func ChordBound(maxAngleDegrees float64) float64 {
	return float64(s1.ChordAngleFromAngle(s1.Angle(maxAngleDegrees) * s1.Degree))
}

// ChordToAngle converts a squared chord length back into a great-circle angle.
func ChordToAngle(chord float64) s1.Angle {
	if chord > MaxChord {
		chord = MaxChord
	}
	return s1.ChordAngle(chord).Angle()
}
