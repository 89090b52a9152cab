// FilePath: internal/repository/postgres/tickets.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/urbansense/wastehub/internal/database"
	"github.com/urbansense/wastehub/internal/errors"
	"github.com/urbansense/wastehub/internal/models"
	"github.com/urbansense/wastehub/internal/repository"
)

type TicketRepo struct {
	PostgresBaseRepo
}

// NewTicketRepository creates the ticket repository and ensures its schema
// exists.
func NewTicketRepository(db database.DB) (repository.TicketRepository, error) {
	repo := &TicketRepo{PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *TicketRepo) initializeSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS service_tickets (
			ticket_id TEXT PRIMARY KEY,
			issue_type TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT 'medium',
			status TEXT NOT NULL DEFAULT 'open',
			created_at TIMESTAMPTZ NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			image_uploaded_at TIMESTAMPTZ,
			customer_name TEXT NOT NULL DEFAULT '',
			upload_reason TEXT NOT NULL DEFAULT '',
			image_location TEXT NOT NULL DEFAULT ''
		)`

	if _, err := r.db.GetDB().Exec(query); err != nil {
		return errors.NewDatabaseError("failed to initialize tickets schema", err)
	}
	return nil
}

func (r *TicketRepo) Create(ctx context.Context, ticket *models.ServiceTicket) error {
	query := `
		INSERT INTO service_tickets
			(ticket_id, issue_type, description, location, priority, status, created_at,
			 image_url, customer_name, upload_reason, image_location)
		VALUES
			(:ticket_id, :issue_type, :description, :location, :priority, :status, :created_at,
			 :image_url, :customer_name, :upload_reason, :image_location)`

	if _, err := r.db.GetDB().NamedExecContext(ctx, query, ticket); err != nil {
		return errors.NewDatabaseError("failed to create ticket", err)
	}
	return nil
}

func (r *TicketRepo) Get(ctx context.Context, ticketID string) (*models.ServiceTicket, error) {
	ticket := &models.ServiceTicket{}
	query := `SELECT * FROM service_tickets WHERE ticket_id = $1`

	err := r.db.GetDB().GetContext(ctx, ticket, query, ticketID)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get ticket", err)
	}
	return ticket, nil
}

func (r *TicketRepo) List(ctx context.Context) ([]*models.ServiceTicket, error) {
	tickets := []*models.ServiceTicket{}
	query := `SELECT * FROM service_tickets`

	if err := r.db.GetDB().SelectContext(ctx, &tickets, query); err != nil {
		return nil, errors.NewDatabaseError("failed to list tickets", err)
	}
	return tickets, nil
}

func (r *TicketRepo) AttachImage(ctx context.Context, ticketID string, att models.ImageAttachment) error {
	query := `
		UPDATE service_tickets
		SET image_url = $2,
			image_uploaded_at = $3,
			customer_name = $4,
			upload_reason = $5,
			image_location = $6
		WHERE ticket_id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query,
		ticketID, att.ImageURL, att.UploadedAt, att.CustomerName, att.UploadReason, att.ImageLocation)
	if err != nil {
		return errors.NewDatabaseError("failed to attach image to ticket", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to check attach result", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TicketRepo) UpdateStatus(ctx context.Context, ticketID string, status models.TicketStatus) error {
	query := `UPDATE service_tickets SET status = $2 WHERE ticket_id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, ticketID, status)
	if err != nil {
		return errors.NewDatabaseError("failed to update ticket status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to check status update result", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
