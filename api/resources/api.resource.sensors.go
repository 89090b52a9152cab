// FilePath: api/resources/api.resource.sensors.go
package resources

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/urbansense/wastehub/internal/hubservice"
	"github.com/urbansense/wastehub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// SensorHandlers encapsulates the sensor read endpoints
type SensorHandlers struct {
	hubservice *hubservice.HubService
}

// latestResponse mirrors the dashboard contract: the reduced snapshot under
// data plus a few raw rows alongside for debugging.
type latestResponse struct {
	Success     bool             `json:"success"`
	Data        models.Snapshot  `json:"data"`
	RawReadings []models.Reading `json:"rawReadings"`
}

// @Summary Latest sensor snapshot
// @Description Get the reduced latest-value snapshot across both device streams
// @Tags sensors
// @Produce json
// @Success 200 {object} latestResponse
// @Failure 500 {object} envelope
// @Router /sensors/latest [get]
func (h *SensorHandlers) GetLatest(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	payload, err := h.hubservice.LatestSnapshot(r.Context())
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(latestResponse{
		Success:     true,
		Data:        payload.Snapshot,
		RawReadings: payload.RawReadings,
	})
}

type historyQuery struct {
	Hours int `schema:"hours"`
}

// @Summary Historical sensor data
// @Description Get minute-bucketed history for the trailing window
// @Tags sensors
// @Produce json
// @Param hours query int false "Window size in hours (default 24)"
// @Success 200 {object} envelope
// @Router /sensors/history [get]
func (h *SensorHandlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	query := historyQuery{Hours: 24}
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		nuts.L.Warnf("[SensorHandler] Ignoring bad history query: %v", err)
		query.Hours = 24
	}

	buckets, err := h.hubservice.History(r.Context(), query.Hours)
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, buckets)
}

type deviceQuery struct {
	Limit int `schema:"limit"`
}

// @Summary Readings for one device
// @Description Get raw readings for a specific device, most recent first
// @Tags sensors
// @Produce json
// @Param deviceId path string true "Device ID"
// @Param limit query int false "Max rows (default 20)"
// @Success 200 {object} envelope
// @Router /sensors/device/{deviceId} [get]
func (h *SensorHandlers) GetDeviceReadings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deviceID := vars["deviceId"]
	requestID := nuts.NID("req", 12)

	query := deviceQuery{Limit: 20}
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		nuts.L.Warnf("[SensorHandler] Ignoring bad device query: %v", err)
		query.Limit = 20
	}

	readings, err := h.hubservice.DeviceReadings(r.Context(), deviceID, query.Limit)
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, readings)
}

// HealthCheck reports liveness.
func (h *SensorHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   true,
		"message":   "WasteHub aggregation service is running",
		"version":   nuts.GetVersion(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
