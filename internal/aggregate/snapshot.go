// FilePath: internal/aggregate/snapshot.go

// Package aggregate holds the pure reduction logic behind the dashboard:
// latest-value snapshots, minute-bucketed history and threshold
// classification. Nothing here touches a backing service.
package aggregate

import (
	"time"

	"github.com/urbansense/wastehub/internal/models"
)

// BuildSnapshot reduces an unordered list of readings into the dashboard
// snapshot. Per composite (device, sensor type, waste type) key the reading
// with the lexicographically greatest timestamp wins; exact ties keep the
// first reading seen. Readings with an unknown sensor type fall through
// without error.
func BuildSnapshot(readings []models.Reading) models.Snapshot {
	snap := models.Snapshot{
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}

	latest := make(map[string]models.Reading, len(readings))
	for _, r := range readings {
		key := r.Key()
		if prev, ok := latest[key]; !ok || r.Timestamp > prev.Timestamp {
			latest[key] = r
		}
	}

	for _, r := range latest {
		switch r.SensorType {
		case models.SensorFill:
			snap.FillLevel = r.Value
		case models.SensorGas:
			snap.GasLevel = r.Value
		case models.SensorFire:
			snap.FireDetected = r.Value > 0
		case models.SensorWeight:
			switch r.WasteType {
			case models.WasteWet:
				snap.WetWaste = r.Value
			case models.WasteDry:
				snap.DryWaste = r.Value
			case models.WasteMetal:
				snap.MetalWaste = r.Value
			}
		}
	}

	return snap
}
