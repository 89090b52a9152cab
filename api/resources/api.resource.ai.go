// FilePath: api/resources/api.resource.ai.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/urbansense/wastehub/internal/errors"
	"github.com/urbansense/wastehub/internal/hubservice"
	nuts "github.com/vaudience/go-nuts"
)

// AIHandlers encapsulates the model-backed chat and vision endpoints
type AIHandlers struct {
	hubservice *hubservice.HubService
}

type chatRequest struct {
	Message             string                `json:"message"`
	ConversationHistory []hubservice.ChatTurn `json:"conversationHistory,omitempty"`
}

// @Summary Conversational assistant
// @Description Chat with the waste-management assistant; the model may call local tools
// @Tags ai
// @Accept json
// @Produce json
// @Param chat body chatRequest true "User message with optional prior turns"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Router /ai/chat [post]
func (h *AIHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if req.Message == "" {
		respondWithError(w, errors.NewValidationError("message is required", nil).WithRequestID(requestID))
		return
	}

	result, err := h.hubservice.Chat(r.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, result)
}

// @Summary Classify a waste photo
// @Description Analyze an uploaded waste image, optionally attaching it to a ticket
// @Tags ai
// @Accept json
// @Produce json
// @Param request body hubservice.VisionRequest true "Base64 data URL plus optional ticket metadata"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Router /ai/vision [post]
func (h *AIHandlers) Vision(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req hubservice.VisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if req.Image == "" {
		respondWithError(w, errors.NewValidationError("image is required", nil).WithRequestID(requestID))
		return
	}

	result, err := h.hubservice.AnalyzeImage(r.Context(), req)
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, result)
}
