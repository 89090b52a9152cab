// FilePath: internal/models/models.reading.go
package models

// SensorType identifies what a reading measures.
type SensorType string

const (
	SensorFill   SensorType = "fill"
	SensorGas    SensorType = "gas"
	SensorFire   SensorType = "fire"
	SensorWeight SensorType = "weight"
)

// WasteType qualifies weight readings by fraction.
type WasteType string

const (
	WasteWet   WasteType = "wet"
	WasteDry   WasteType = "dry"
	WasteMetal WasteType = "metal"
)

// Reading is a single sensor observation as written by the ingestion
// pipeline. Timestamp is a fixed-width ISO-8601 string so it sorts
// lexically; the aggregation code relies on that.
type Reading struct {
	DeviceID   string     `json:"deviceId" db:"device_id"`
	SensorType SensorType `json:"sensorType" db:"sensor_type"`
	WasteType  WasteType  `json:"wasteType,omitempty" db:"waste_type"`
	Value      float64    `json:"value" db:"value"`
	Timestamp  string     `json:"timestamp" db:"timestamp"`
}

// Key returns the composite identity used by the snapshot reducer.
func (r Reading) Key() string {
	key := r.DeviceID + "|" + string(r.SensorType)
	if r.WasteType != "" {
		key += "|" + string(r.WasteType)
	}
	return key
}

// Snapshot is the latest-value-per-key projection rendered by the
// dashboard. Derived, never stored.
type Snapshot struct {
	FillLevel    float64 `json:"fillLevel"`
	GasLevel     float64 `json:"gasLevel"`
	FireDetected bool    `json:"fireDetected"`
	WetWaste     float64 `json:"wetWaste"`
	DryWaste     float64 `json:"dryWaste"`
	MetalWaste   float64 `json:"metalWaste"`
	LastUpdated  string  `json:"lastUpdated"`
}

// HistoryBucket is a minute-granularity aggregate for charting.
type HistoryBucket struct {
	Time       string  `json:"time"`
	FillLevel  float64 `json:"fillLevel"`
	GasLevel   float64 `json:"gasLevel"`
	TotalWaste float64 `json:"totalWaste"`
}
