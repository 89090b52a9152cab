// FilePath: internal/aggregate/history.go
package aggregate

import (
	"sort"
	"time"

	"github.com/urbansense/wastehub/internal/models"
)

// maxHistoryBuckets caps the chart payload at the trailing 20 minutes
// of distinct activity.
const maxHistoryBuckets = 20

// BucketReadings groups readings into minute-resolution history buckets.
// The input is sorted by timestamp first (lexical order, valid for the
// fixed-width ISO format), so last-write-wins inside a bucket means the
// chronologically latest value and the trailing slice is genuinely the most
// recent activity regardless of scan order upstream. Fill and gas readings
// overwrite their bucket field; weight readings accumulate into TotalWaste
// across all waste types.
func BucketReadings(readings []models.Reading) []models.HistoryBucket {
	sorted := make([]models.Reading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	byMinute := make(map[string]int)
	buckets := make([]models.HistoryBucket, 0)

	for _, r := range sorted {
		if len(r.Timestamp) < 16 {
			continue
		}
		minute := r.Timestamp[:16]

		idx, ok := byMinute[minute]
		if !ok {
			idx = len(buckets)
			byMinute[minute] = idx
			buckets = append(buckets, models.HistoryBucket{
				Time: displayTime(r.Timestamp),
			})
		}

		switch r.SensorType {
		case models.SensorFill:
			buckets[idx].FillLevel = r.Value
		case models.SensorGas:
			buckets[idx].GasLevel = r.Value
		case models.SensorWeight:
			buckets[idx].TotalWaste += r.Value
		}
	}

	if len(buckets) > maxHistoryBuckets {
		buckets = buckets[len(buckets)-maxHistoryBuckets:]
	}
	return buckets
}

// displayTime renders the bucket label from its first-seen timestamp.
func displayTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04:05")
}
