// Package forecast holds the pure aggregation core: event detection over
// a full 5-day forecast window and nearest-snapshot selection at fixed
// horizons. Both are side-effect-free single-pass scans that degrade to
// empty defaults on absent input, never errors.
package forecast

import (
	"strings"

	"github.com/luisalfonso634/forecast-weather/models"
)

// matchesRain reports whether a snapshot counts as rain: condition group
// rain/drizzle, or a Spanish "lluvia" description.
func matchesRain(group, desc string) bool {
	return strings.Contains(group, "rain") || strings.Contains(group, "drizzle") ||
		strings.Contains(desc, "lluvia")
}

func matchesStorm(group, desc string) bool {
	return strings.Contains(group, "thunderstorm") || strings.Contains(desc, "tormenta")
}

// Hail has no condition group of its own; only the description carries it.
func matchesHail(desc string) bool {
	return strings.Contains(desc, "hail") || strings.Contains(desc, "granizo")
}

func matchesSnow(group, desc string) bool {
	return strings.Contains(group, "snow") || strings.Contains(desc, "nieve")
}

// AnalyzeEvents scans a forecast series once and aggregates hazard
// presence, maximum probabilities and maximum rain intensity over the
// whole window. An empty or nil series yields the zero EventSummary.
//
// A snapshot matching both rain and snow keywords updates both maximum
// probabilities from its single pop value; the analyzer aggregates, it
// does not force one-hot classification.
func AnalyzeEvents(snapshots []models.ForecastSnapshot) models.EventSummary {
	var sum models.EventSummary

	for _, s := range snapshots {
		group := strings.ToLower(s.Group)
		desc := strings.ToLower(s.Description)

		if matchesRain(group, desc) {
			sum.Rain = true
			sum.RainTimes = append(sum.RainTimes, s.Timestamp)
			if s.Rain3H > sum.RainMaxIntensity {
				sum.RainMaxIntensity = s.Rain3H
			}
			if s.PoP > sum.RainMaxProbability {
				sum.RainMaxProbability = s.PoP
			}
		}

		if matchesStorm(group, desc) {
			sum.Storm = true
			sum.StormTimes = append(sum.StormTimes, s.Timestamp)
		}

		// Flag only: the API exposes no hail volume or probability.
		if matchesHail(desc) {
			sum.Hail = true
		}

		if matchesSnow(group, desc) {
			sum.Snow = true
			sum.SnowTimes = append(sum.SnowTimes, s.Timestamp)
			if s.PoP > sum.SnowMaxProbability {
				sum.SnowMaxProbability = s.PoP
			}
		}
	}

	return sum
}

// Classify assigns a display category to one snapshot by a fixed
// priority chain: storm > rain > snow > hail > clouds > clear.
func Classify(s models.ForecastSnapshot) models.SkyCategory {
	group := strings.ToLower(s.Group)
	desc := strings.ToLower(s.Description)

	switch {
	case matchesStorm(group, desc):
		return models.CategoryStorm
	case matchesRain(group, desc) || s.Rain3H > 0:
		return models.CategoryRain
	case matchesSnow(group, desc) || s.Snow3H > 0:
		return models.CategorySnow
	case matchesHail(desc):
		return models.CategoryHail
	case strings.Contains(group, "clouds") || strings.Contains(desc, "nube"):
		return models.CategoryClouds
	default:
		return models.CategoryClear
	}
}
