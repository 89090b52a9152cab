// FilePath: internal/hubservice/hubservice.sensors.go
package hubservice

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/urbansense/wastehub/internal/aggregate"
	"github.com/urbansense/wastehub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// deviceFetchLimit is how many recent rows each device stream contributes
// to the snapshot reduction.
const deviceFetchLimit = 20

// rawReadingsLimit caps the raw rows echoed alongside the snapshot.
const rawReadingsLimit = 10

// LatestPayload is the snapshot response body: the reduced dashboard view
// plus a few raw rows for debugging.
type LatestPayload struct {
	Snapshot    models.Snapshot  `json:"snapshot"`
	RawReadings []models.Reading `json:"rawReadings"`
}

// LatestSnapshot fetches the two device streams concurrently, merges them
// and reduces to the dashboard snapshot. The result is cached briefly to
// absorb the dashboard's polling fan-out.
func (s *HubService) LatestSnapshot(ctx context.Context) (*LatestPayload, error) {
	const cacheKey = "sensors:latest"
	if cached, ok := s.Cache.Get(ctx, cacheKey); ok {
		payload := &LatestPayload{}
		if err := json.Unmarshal(cached, payload); err == nil {
			return payload, nil
		}
	}

	var wasteReadings, weightReadings []models.Reading
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		wasteReadings, err = s.Readings.LatestByDevice(gctx, s.Devices.WasteSensorID, deviceFetchLimit)
		return err
	})
	g.Go(func() error {
		var err error
		weightReadings, err = s.Readings.LatestByDevice(gctx, s.Devices.WeightSensorID, deviceFetchLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The two streams key into disjoint reducer slots, so merge order is
	// irrelevant.
	readings := append(wasteReadings, weightReadings...)

	raw := readings
	if len(raw) > rawReadingsLimit {
		raw = raw[:rawReadingsLimit]
	}

	payload := &LatestPayload{
		Snapshot:    aggregate.BuildSnapshot(readings),
		RawReadings: raw,
	}

	if encoded, err := json.Marshal(payload); err == nil {
		s.Cache.Set(ctx, cacheKey, encoded)
	}
	return payload, nil
}

// History returns the minute-bucketed trailing view for the requested
// window.
func (s *HubService) History(ctx context.Context, hours int) ([]models.HistoryBucket, error) {
	if hours <= 0 {
		hours = 24
	}

	cacheKey := fmt.Sprintf("sensors:history:%d", hours)
	if cached, ok := s.Cache.Get(ctx, cacheKey); ok {
		buckets := []models.HistoryBucket{}
		if err := json.Unmarshal(cached, &buckets); err == nil {
			return buckets, nil
		}
	}

	cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour).Format(time.RFC3339)
	readings, err := s.Readings.Since(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	buckets := aggregate.BucketReadings(readings)

	if encoded, err := json.Marshal(buckets); err == nil {
		s.Cache.Set(ctx, cacheKey, encoded)
	}
	return buckets, nil
}

// DeviceReadings returns raw rows for one device, most recent first.
func (s *HubService) DeviceReadings(ctx context.Context, deviceID string, limit int) ([]models.Reading, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	readings, err := s.Readings.LatestByDevice(ctx, deviceID, limit)
	if err != nil {
		return nil, err
	}
	nuts.L.Debugf("[SensorService] Fetched %d readings for device %s", len(readings), deviceID)
	return readings, nil
}
