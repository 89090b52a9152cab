// FilePath: internal/aggregate/history_test.go
package aggregate

import (
	"fmt"
	"testing"

	"github.com/urbansense/wastehub/internal/models"
)

func TestBucketReadings_MinuteGrouping(t *testing.T) {
	readings := []models.Reading{
		{DeviceID: "waste-sensor-001", SensorType: models.SensorFill, Value: 50, Timestamp: "2024-01-01T10:00:12Z"},
		{DeviceID: "waste-sensor-001", SensorType: models.SensorFill, Value: 55, Timestamp: "2024-01-01T10:00:45Z"},
		{DeviceID: "weight-sensor-001", SensorType: models.SensorWeight, WasteType: models.WasteWet, Value: 2, Timestamp: "2024-01-01T10:01:02Z"},
	}

	buckets := BucketReadings(readings)

	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if buckets[0].FillLevel != 55 {
		t.Errorf("first bucket FillLevel = %v, want 55 (last write in the minute wins)", buckets[0].FillLevel)
	}
	if buckets[1].TotalWaste != 2 {
		t.Errorf("second bucket TotalWaste = %v, want 2", buckets[1].TotalWaste)
	}
}

func TestBucketReadings_WeightAccumulatesAcrossWasteTypes(t *testing.T) {
	readings := []models.Reading{
		{DeviceID: "w", SensorType: models.SensorWeight, WasteType: models.WasteWet, Value: 1.5, Timestamp: "2024-01-01T10:00:05Z"},
		{DeviceID: "w", SensorType: models.SensorWeight, WasteType: models.WasteDry, Value: 0.5, Timestamp: "2024-01-01T10:00:25Z"},
		{DeviceID: "w", SensorType: models.SensorWeight, WasteType: models.WasteMetal, Value: 1, Timestamp: "2024-01-01T10:00:45Z"},
	}

	buckets := BucketReadings(readings)
	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
	if buckets[0].TotalWaste != 3 {
		t.Errorf("TotalWaste = %v, want 3", buckets[0].TotalWaste)
	}
}

func TestBucketReadings_UnorderedInputIsSortedFirst(t *testing.T) {
	readings := []models.Reading{
		{DeviceID: "d", SensorType: models.SensorFill, Value: 70, Timestamp: "2024-01-01T10:00:50Z"},
		{DeviceID: "d", SensorType: models.SensorFill, Value: 30, Timestamp: "2024-01-01T10:00:10Z"},
	}

	buckets := BucketReadings(readings)
	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
	if buckets[0].FillLevel != 70 {
		t.Errorf("FillLevel = %v, want 70 (chronologically latest, not scan-order latest)", buckets[0].FillLevel)
	}
}

func TestBucketReadings_TrailingTwentyBuckets(t *testing.T) {
	var readings []models.Reading
	for i := 0; i < 30; i++ {
		readings = append(readings, models.Reading{
			DeviceID:   "d",
			SensorType: models.SensorFill,
			Value:      float64(i),
			Timestamp:  fmt.Sprintf("2024-01-01T10:%02d:00Z", i),
		})
	}

	buckets := BucketReadings(readings)
	if len(buckets) != 20 {
		t.Fatalf("got %d buckets, want 20", len(buckets))
	}
	if buckets[0].FillLevel != 10 {
		t.Errorf("first kept bucket FillLevel = %v, want 10 (oldest ten dropped)", buckets[0].FillLevel)
	}
	if buckets[19].FillLevel != 29 {
		t.Errorf("last bucket FillLevel = %v, want 29", buckets[19].FillLevel)
	}
}

func TestBucketReadings_ShortTimestampSkipped(t *testing.T) {
	readings := []models.Reading{
		{DeviceID: "d", SensorType: models.SensorFill, Value: 10, Timestamp: "bad"},
		{DeviceID: "d", SensorType: models.SensorFill, Value: 20, Timestamp: "2024-01-01T10:00:00Z"},
	}

	buckets := BucketReadings(readings)
	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
	if buckets[0].FillLevel != 20 {
		t.Errorf("FillLevel = %v, want 20", buckets[0].FillLevel)
	}
}

func TestBucketReadings_TimeLabel(t *testing.T) {
	buckets := BucketReadings([]models.Reading{
		{DeviceID: "d", SensorType: models.SensorGas, Value: 5, Timestamp: "2024-01-01T10:00:12Z"},
	})
	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
	if buckets[0].Time != "10:00:12" {
		t.Errorf("Time = %q, want %q", buckets[0].Time, "10:00:12")
	}
}
