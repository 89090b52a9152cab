// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"io"

	"github.com/urbansense/wastehub/internal/database"
	"github.com/urbansense/wastehub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidTransition indicates a ticket status move against the
	// open -> in_progress -> resolved order.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ReadingRepository reads the immutable time-series rows written by the
// external ingestion pipeline. This service never writes readings.
type ReadingRepository interface {
	database.Repository
	// LatestByDevice returns up to limit readings for one device, most
	// recent first.
	LatestByDevice(ctx context.Context, deviceID string, limit int) ([]models.Reading, error)
	// Since returns all readings with a timestamp after the cutoff
	// (fixed-width ISO-8601, compared lexically).
	Since(ctx context.Context, cutoff string) ([]models.Reading, error)
}

// TicketRepository persists citizen service tickets.
type TicketRepository interface {
	database.Repository
	Create(ctx context.Context, ticket *models.ServiceTicket) error
	Get(ctx context.Context, ticketID string) (*models.ServiceTicket, error)
	List(ctx context.Context) ([]*models.ServiceTicket, error)
	// AttachImage merges image metadata onto an existing ticket. Returns
	// ErrNotFound when no row matches; the caller decides whether that is
	// fatal.
	AttachImage(ctx context.Context, ticketID string, att models.ImageAttachment) error
	UpdateStatus(ctx context.Context, ticketID string, status models.TicketStatus) error
}

// ImageRepository is the blob store for uploaded ticket images.
type ImageRepository interface {
	// Store writes the blob under the given name and returns its public URL.
	Store(ctx context.Context, name string, data []byte) (string, error)
	// Open streams a stored blob together with its MIME type.
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
}
