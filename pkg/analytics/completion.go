package analytics

import (
	"github.com/fleetreplay/fleetreplay/pkg/playback"
)

// CompletionBucketRanges lists the histogram buckets in display order. Each
// bucket is a 20% band; the final one is inclusive of 100%.
var CompletionBucketRanges = []string{"0-20%", "20-40%", "40-60%", "60-80%", "80-100%"}

// GetCompletionHistogram partitions trips into five completion buckets by
// replay progress. Trips without playback state are excluded rather than
// counted as 0%.
func GetCompletionHistogram(snapshot playback.Snapshot) map[string]int {
	buckets := map[string]int{}
	for _, bucketRange := range CompletionBucketRanges {
		buckets[bucketRange] = 0
	}

	for _, trip := range snapshot.Trips {
		state, exists := snapshot.States[trip.TripID]
		if !exists {
			continue
		}

		progress := state.ProgressPercent

		switch {
		case progress >= 80:
			buckets["80-100%"]++
		case progress >= 60:
			buckets["60-80%"]++
		case progress >= 40:
			buckets["40-60%"]++
		case progress >= 20:
			buckets["20-40%"]++
		default:
			buckets["0-20%"]++
		}
	}

	return buckets
}
