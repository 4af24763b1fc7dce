package wind

import (
	"math"
	"strconv"
)

// DescriptiveTerm is the coarse human-readable wind bucket.
type DescriptiveTerm string

const (
	TermCalm      DescriptiveTerm = "calm"
	TermBreeze    DescriptiveTerm = "breeze"
	TermGale      DescriptiveTerm = "gale"
	TermStorm     DescriptiveTerm = "storm"
	TermHurricane DescriptiveTerm = "hurricane"
)

// ClassifyDescriptive maps a wind speed in m/s to its descriptive term.
// Thresholds are inclusive lower bounds.
func ClassifyDescriptive(speed float64) DescriptiveTerm {
	switch {
	case speed >= 32.7:
		return TermHurricane
	case speed >= 24.5:
		return TermStorm
	case speed >= 13.9:
		return TermGale
	case speed >= 0.3:
		return TermBreeze
	default:
		return TermCalm
	}
}

// beaufortCeilings[force] is the highest speed still classified as that
// force. Anything above the last ceiling is force 12.
var beaufortCeilings = [...]float64{0.2, 1.5, 3.3, 5.4, 7.9, 10.7, 13.8, 17.1, 20.7, 24.4, 28.4, 32.6}

// ClassifyBeaufort maps a wind speed in m/s to a Beaufort force (0..12).
func ClassifyBeaufort(speed float64) int {
	for force, ceiling := range beaufortCeilings {
		if speed <= ceiling {
			return force
		}
	}
	return 12
}

// IconBucket selects a display icon. Its thresholds deliberately differ
// from both the descriptive and Beaufort tables, so the three classifiers
// stay independent.
type IconBucket string

const (
	IconCalm      IconBucket = "calm"
	IconLight     IconBucket = "light"
	IconStrong    IconBucket = "strong"
	IconGale      IconBucket = "gale"
	IconStorm     IconBucket = "storm"
	IconHurricane IconBucket = "hurricane"
)

// ClassifyIcon maps a wind speed in m/s to its icon bucket.
func ClassifyIcon(speed float64) IconBucket {
	switch {
	case speed <= 0.2:
		return IconCalm
	case speed <= 3.3:
		return IconLight
	case speed <= 13.8:
		return IconStrong
	case speed <= 24.4:
		return IconGale
	case speed <= 32.6:
		return IconStorm
	default:
		return IconHurricane
	}
}

// DirectionMode selects how ClassifyDirection renders a heading.
type DirectionMode string

const (
	DirectionCompass DirectionMode = "compass"
	DirectionDegrees DirectionMode = "degrees"
)

// DirectionUnavailable is rendered for the provider sentinel heading 0,
// which means "direction unknown" rather than due north.
const DirectionUnavailable = "n/a"

var compassOctants = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// ClassifyDirection renders a wind heading in the requested mode. The exact
// value 0 maps to DirectionUnavailable in every mode; 360 is a valid
// due-north heading. Compass octants are 45 degrees wide and centred on the
// cardinal and intercardinal points, with boundary headings assigned to the
// higher octant.
func ClassifyDirection(degrees float64, mode DirectionMode) string {
	if degrees == 0 {
		return DirectionUnavailable
	}
	if mode == DirectionDegrees {
		return strconv.FormatFloat(degrees, 'f', -1, 64)
	}
	norm := math.Mod(degrees, 360)
	if norm < 0 {
		norm += 360
	}
	return compassOctants[int((norm+22.5)/45)%8]
}

// Speed conversions for presentation. Providers report m/s natively, so the
// stored observation is never converted in place.

func KilometersPerHour(ms float64) float64 { return ms * 3.6 }

func MilesPerHour(ms float64) float64 { return ms * 2.236936 }

func Knots(ms float64) float64 { return ms * 1.943844 }
