// FilePath: api/resources/api.resource.tickets.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/urbansense/wastehub/internal/errors"
	"github.com/urbansense/wastehub/internal/hubservice"
	"github.com/urbansense/wastehub/internal/models"
	"github.com/urbansense/wastehub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// TicketHandlers encapsulates the service ticket endpoints
type TicketHandlers struct {
	hubservice *hubservice.HubService
}

type createTicketRequest struct {
	IssueType   string `json:"issueType"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Priority    string `json:"priority,omitempty"`
}

type updateTicketRequest struct {
	Status string `json:"status"`
}

// @Summary List service tickets
// @Tags tickets
// @Produce json
// @Success 200 {object} envelope
// @Router /tickets [get]
func (h *TicketHandlers) List(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	tickets, err := h.hubservice.ListTickets(r.Context())
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}
	if tickets == nil {
		tickets = []*models.ServiceTicket{}
	}

	respondWithData(w, http.StatusOK, tickets)
}

// @Summary Get one service ticket
// @Tags tickets
// @Produce json
// @Param ticketId path string true "Ticket ID"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Router /tickets/{ticketId} [get]
func (h *TicketHandlers) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ticketID := vars["ticketId"]
	requestID := nuts.NID("req", 12)

	ticket, err := h.hubservice.GetTicket(r.Context(), ticketID)
	if err == repository.ErrNotFound {
		respondWithError(w, errors.NewNotFoundError("ticket not found", err).WithRequestID(requestID))
		return
	}
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, ticket)
}

// @Summary Create a service ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Param ticket body createTicketRequest true "Ticket details"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope
// @Router /tickets [post]
func (h *TicketHandlers) Create(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req createTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	ticket, err := h.hubservice.CreateTicket(r.Context(),
		models.IssueType(req.IssueType), req.Description, req.Location,
		models.TicketPriority(req.Priority))
	if err != nil {
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusCreated, ticket)
}

// @Summary Advance a ticket's status
// @Description Move a ticket forward through open, in_progress, resolved
// @Tags tickets
// @Accept json
// @Produce json
// @Param ticketId path string true "Ticket ID"
// @Param update body updateTicketRequest true "Target status"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Failure 404 {object} envelope
// @Router /tickets/{ticketId}/status [patch]
func (h *TicketHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ticketID := vars["ticketId"]
	requestID := nuts.NID("req", 12)

	var req updateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	ticket, err := h.hubservice.AdvanceTicket(r.Context(), ticketID, models.TicketStatus(req.Status))
	switch {
	case err == repository.ErrNotFound:
		respondWithError(w, errors.NewNotFoundError("ticket not found", err).WithRequestID(requestID))
		return
	case err == repository.ErrInvalidTransition:
		respondWithError(w, errors.NewValidationError("tickets only move forward through the lifecycle", err).WithRequestID(requestID))
		return
	case err != nil:
		respondWithError(w, asAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithData(w, http.StatusOK, ticket)
}
