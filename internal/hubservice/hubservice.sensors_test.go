// FilePath: internal/hubservice/hubservice.sensors_test.go
package hubservice

import (
	"context"
	"errors"
	"testing"

	"github.com/urbansense/wastehub/internal/models"
)

func TestLatestSnapshotMergesDeviceStreams(t *testing.T) {
	readings := &fakeReadingRepo{byDevice: map[string][]models.Reading{
		"waste-sensor-001": {
			{DeviceID: "waste-sensor-001", SensorType: models.SensorFill, Value: 72, Timestamp: "2026-01-15T10:00:00.000Z"},
			{DeviceID: "waste-sensor-001", SensorType: models.SensorGas, Value: 310, Timestamp: "2026-01-15T10:00:00.000Z"},
		},
		"weight-sensor-001": {
			{DeviceID: "weight-sensor-001", SensorType: models.SensorWeight, WasteType: models.WasteWet, Value: 12.5, Timestamp: "2026-01-15T10:00:01.000Z"},
			{DeviceID: "weight-sensor-001", SensorType: models.SensorWeight, WasteType: models.WasteMetal, Value: 3.2, Timestamp: "2026-01-15T10:00:01.000Z"},
		},
	}}
	svc := newTestService(readings, nil, nil, nil)

	payload, err := svc.LatestSnapshot(context.Background())
	if err != nil {
		t.Fatalf("LatestSnapshot failed: %v", err)
	}

	if payload.Snapshot.FillLevel != 72 {
		t.Errorf("expected fill 72, got %.1f", payload.Snapshot.FillLevel)
	}
	if payload.Snapshot.GasLevel != 310 {
		t.Errorf("expected gas 310, got %.1f", payload.Snapshot.GasLevel)
	}
	if payload.Snapshot.WetWaste != 12.5 {
		t.Errorf("expected wet waste 12.5, got %.1f", payload.Snapshot.WetWaste)
	}
	if payload.Snapshot.MetalWaste != 3.2 {
		t.Errorf("expected metal waste 3.2, got %.1f", payload.Snapshot.MetalWaste)
	}
	if len(payload.RawReadings) != 4 {
		t.Errorf("expected 4 raw readings, got %d", len(payload.RawReadings))
	}
}

func TestLatestSnapshotPropagatesFetchErrors(t *testing.T) {
	readings := &fakeReadingRepo{err: errors.New("connection refused")}
	svc := newTestService(readings, nil, nil, nil)

	if _, err := svc.LatestSnapshot(context.Background()); err == nil {
		t.Error("expected the fetch error to surface")
	}
}

func TestHistoryBucketsReadings(t *testing.T) {
	readings := &fakeReadingRepo{since: []models.Reading{
		{DeviceID: "waste-sensor-001", SensorType: models.SensorFill, Value: 50, Timestamp: "2026-01-15T10:00:12.000Z"},
		{DeviceID: "waste-sensor-001", SensorType: models.SensorFill, Value: 55, Timestamp: "2026-01-15T10:00:50.000Z"},
		{DeviceID: "waste-sensor-001", SensorType: models.SensorFill, Value: 60, Timestamp: "2026-01-15T10:01:02.000Z"},
	}}
	svc := newTestService(readings, nil, nil, nil)

	buckets, err := svc.History(context.Background(), 24)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("expected 2 minute buckets, got %d", len(buckets))
	}
	if buckets[0].FillLevel != 55 {
		t.Errorf("expected last write 55 in first bucket, got %.1f", buckets[0].FillLevel)
	}
}

func TestHistoryDefaultsWindow(t *testing.T) {
	readings := &fakeReadingRepo{}
	svc := newTestService(readings, nil, nil, nil)

	if _, err := svc.History(context.Background(), -5); err != nil {
		t.Fatalf("History with bad window failed: %v", err)
	}
}

func TestDeviceReadingsClampsLimit(t *testing.T) {
	rows := make([]models.Reading, 50)
	for i := range rows {
		rows[i] = models.Reading{DeviceID: "waste-sensor-001", SensorType: models.SensorFill, Value: float64(i)}
	}
	readings := &fakeReadingRepo{byDevice: map[string][]models.Reading{"waste-sensor-001": rows}}
	svc := newTestService(readings, nil, nil, nil)

	got, err := svc.DeviceReadings(context.Background(), "waste-sensor-001", 0)
	if err != nil {
		t.Fatalf("DeviceReadings failed: %v", err)
	}
	if len(got) != 20 {
		t.Errorf("expected default limit 20, got %d", len(got))
	}

	got, err = svc.DeviceReadings(context.Background(), "waste-sensor-001", 500)
	if err != nil {
		t.Fatalf("DeviceReadings failed: %v", err)
	}
	if len(got) != 20 {
		t.Errorf("expected out-of-range limit to clamp to 20, got %d", len(got))
	}

	got, err = svc.DeviceReadings(context.Background(), "waste-sensor-001", 30)
	if err != nil {
		t.Fatalf("DeviceReadings failed: %v", err)
	}
	if len(got) != 30 {
		t.Errorf("expected limit 30 to pass through, got %d", len(got))
	}
}
