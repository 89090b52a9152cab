// FilePath: api/resources/api.resource.voice.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/urbansense/wastehub/internal/errors"
	"github.com/urbansense/wastehub/internal/hubservice"
	nuts "github.com/vaudience/go-nuts"
)

// VoiceHandlers encapsulates the voice-agent integration endpoints
type VoiceHandlers struct {
	hubservice *hubservice.HubService
}

type voiceQueryRequest struct {
	Query string `json:"query"`
}

type voiceActionRequest struct {
	Action  string `json:"action"`
	Details string `json:"details,omitempty"`
}

// @Summary Voice agent context
// @Description Full system context for the voice agent: bins, alerts, schedule, billing
// @Tags voice
// @Produce json
// @Success 200 {object} envelope
// @Router /voice/context [get]
func (h *VoiceHandlers) Context(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	vc, err := h.hubservice.BuildVoiceContext(r.Context())
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, vc)
}

// @Summary Answer a spoken question
// @Tags voice
// @Accept json
// @Produce json
// @Param query body voiceQueryRequest true "Transcribed question"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Router /voice/query [post]
func (h *VoiceHandlers) Query(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req voiceQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if req.Query == "" {
		respondWithError(w, errors.NewValidationError("query is required", nil).WithRequestID(requestID))
		return
	}

	response, vc, err := h.hubservice.VoiceQuery(r.Context(), req.Query)
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, map[string]interface{}{
		"response": response,
		"context":  vc,
	})
}

// @Summary Execute a voice-initiated action
// @Description Report actions create real service tickets
// @Tags voice
// @Accept json
// @Produce json
// @Param action body voiceActionRequest true "Action name and free-text details"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Router /voice/action [post]
func (h *VoiceHandlers) Action(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req voiceActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if req.Action == "" {
		respondWithError(w, errors.NewValidationError("action is required", nil).WithRequestID(requestID))
		return
	}

	response, ticketID, err := h.hubservice.VoiceAction(r.Context(), req.Action, req.Details)
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	payload := map[string]interface{}{"response": response}
	if ticketID != "" {
		payload["ticketId"] = ticketID
	}

	respondWithData(w, http.StatusOK, payload)
}
