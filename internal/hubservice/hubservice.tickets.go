// FilePath: internal/hubservice/hubservice.tickets.go
package hubservice

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/urbansense/wastehub/internal/errors"
	"github.com/urbansense/wastehub/internal/models"
	"github.com/urbansense/wastehub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// statusRank orders the monotonic ticket lifecycle.
var statusRank = map[models.TicketStatus]int{
	models.StatusOpen:       0,
	models.StatusInProgress: 1,
	models.StatusResolved:   2,
}

// CreateTicket persists a new service ticket and returns it. The id has
// the form WM-<year>-<6 digits>; priority defaults to medium and status is
// always open at creation.
func (s *HubService) CreateTicket(ctx context.Context, issueType models.IssueType, description, location string, priority models.TicketPriority) (*models.ServiceTicket, error) {
	if !models.ValidIssueType(issueType) {
		return nil, errors.NewValidationError("unknown issue type", nil)
	}
	switch priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	case "":
		priority = models.PriorityMedium
	default:
		return nil, errors.NewValidationError("unknown priority", nil)
	}

	ticket := &models.ServiceTicket{
		TicketID:    generateTicketID(),
		IssueType:   issueType,
		Description: description,
		Location:    location,
		Priority:    priority,
		Status:      models.StatusOpen,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.Tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	nuts.L.Infof("[TicketService] Created ticket %s (%s)", ticket.TicketID, ticket.IssueType)
	s.events.Emit("ticket.created", ticket.TicketID)
	return ticket, nil
}

// AttachImage stores the blob keyed by ticket id and inferred format, then
// merges the image metadata onto the ticket. A missing ticket is tolerated:
// the blob stays stored, the merge is skipped with a log line, and no error
// reaches the caller.
func (s *HubService) AttachImage(ctx context.Context, ticketID string, data []byte, format string, meta models.ImageAttachment) (string, error) {
	name := fmt.Sprintf("%s.%s", ticketID, format)
	url, err := s.Images.Store(ctx, name, data)
	if err != nil {
		return "", err
	}

	meta.ImageURL = url
	if meta.UploadedAt.IsZero() {
		meta.UploadedAt = time.Now().UTC()
	}

	err = s.Tickets.AttachImage(ctx, ticketID, meta)
	if err == repository.ErrNotFound {
		nuts.L.Warnf("[TicketService] Image stored for unknown ticket %s, merge skipped", ticketID)
		return url, nil
	}
	if err != nil {
		return "", err
	}

	s.events.Emit("ticket.image_attached", ticketID)
	return url, nil
}

// ListTickets returns the full unordered enumeration.
func (s *HubService) ListTickets(ctx context.Context) ([]*models.ServiceTicket, error) {
	return s.Tickets.List(ctx)
}

// GetTicket returns one ticket or repository.ErrNotFound.
func (s *HubService) GetTicket(ctx context.Context, ticketID string) (*models.ServiceTicket, error) {
	return s.Tickets.Get(ctx, ticketID)
}

// AdvanceTicket moves a ticket forward through open -> in_progress ->
// resolved. Backward or same-state moves are rejected.
func (s *HubService) AdvanceTicket(ctx context.Context, ticketID string, next models.TicketStatus) (*models.ServiceTicket, error) {
	nextRank, ok := statusRank[next]
	if !ok {
		return nil, errors.NewValidationError("unknown ticket status", nil)
	}

	ticket, err := s.Tickets.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if nextRank <= statusRank[ticket.Status] {
		return nil, repository.ErrInvalidTransition
	}

	if err := s.Tickets.UpdateStatus(ctx, ticketID, next); err != nil {
		return nil, err
	}
	ticket.Status = next

	nuts.L.Infof("[TicketService] Ticket %s advanced to %s", ticketID, next)
	return ticket, nil
}

func generateTicketID() string {
	return fmt.Sprintf("WM-%d-%06d", time.Now().UTC().Year(), rand.Intn(1000000))
}
