package forecast

import (
	"time"

	"github.com/luisalfonso634/forecast-weather/models"
)

// DefaultHorizons are the fixed hour offsets displayed as hourly cards.
var DefaultHorizons = []int{6, 12, 18, 24, 36, 48}

// SelectHorizons picks, for each hour offset, the snapshot whose
// timestamp is nearest to now+offset. Ties keep the first snapshot in
// series order. An empty or nil series yields an empty map.
func SelectHorizons(snapshots []models.ForecastSnapshot, offsets []int, now time.Time) map[int]models.HorizonSnapshot {
	result := make(map[int]models.HorizonSnapshot, len(offsets))
	if len(snapshots) == 0 {
		return result
	}

	for _, offset := range offsets {
		target := now.Add(time.Duration(offset) * time.Hour)

		best := 0
		bestDiff := absDuration(snapshots[0].Timestamp.Sub(target))
		for i := 1; i < len(snapshots); i++ {
			if diff := absDuration(snapshots[i].Timestamp.Sub(target)); diff < bestDiff {
				best = i
				bestDiff = diff
			}
		}

		result[offset] = models.HorizonSnapshot{
			OffsetHours: offset,
			Snapshot:    snapshots[best],
			Category:    Classify(snapshots[best]),
		}
	}

	return result
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
