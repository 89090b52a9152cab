// FilePath: internal/hubservice/hubservice.tickets_test.go
package hubservice

import (
	"context"
	"regexp"
	"testing"

	"github.com/urbansense/wastehub/internal/models"
	"github.com/urbansense/wastehub/internal/repository"
)

var ticketIDPattern = regexp.MustCompile(`^WM-\d{4}-\d{6}$`)

func TestCreateTicketDefaults(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	ticket, err := svc.CreateTicket(context.Background(), models.IssueDamagedBin, "lid broken", "Elm Street 4", "")
	if err != nil {
		t.Fatalf("CreateTicket failed: %v", err)
	}

	if !ticketIDPattern.MatchString(ticket.TicketID) {
		t.Errorf("ticket id %q does not match WM-<year>-<6 digits>", ticket.TicketID)
	}
	if ticket.Priority != models.PriorityMedium {
		t.Errorf("expected default priority medium, got %s", ticket.Priority)
	}
	if ticket.Status != models.StatusOpen {
		t.Errorf("expected status open, got %s", ticket.Status)
	}
	if ticket.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestCreateTicketRejectsUnknownInputs(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	if _, err := svc.CreateTicket(context.Background(), "flooding", "x", "y", ""); err == nil {
		t.Error("expected error for unknown issue type")
	}
	if _, err := svc.CreateTicket(context.Background(), models.IssueOther, "x", "y", "urgent"); err == nil {
		t.Error("expected error for unknown priority")
	}
}

func TestAttachImageMergesMetadata(t *testing.T) {
	tickets := newFakeTicketRepo()
	images := newFakeImageStore()
	svc := newTestService(nil, tickets, images, nil)

	ticket, err := svc.CreateTicket(context.Background(), models.IssueOverflowingBin, "overflow", "Main Square", models.PriorityHigh)
	if err != nil {
		t.Fatalf("CreateTicket failed: %v", err)
	}

	url, err := svc.AttachImage(context.Background(), ticket.TicketID, []byte("jpegdata"), "jpg", models.ImageAttachment{
		CustomerName: "A. Resident",
		UploadReason: "evidence",
	})
	if err != nil {
		t.Fatalf("AttachImage failed: %v", err)
	}
	if url == "" {
		t.Fatal("expected a public URL")
	}

	stored, err := svc.GetTicket(context.Background(), ticket.TicketID)
	if err != nil {
		t.Fatalf("GetTicket failed: %v", err)
	}
	if stored.ImageURL != url {
		t.Errorf("expected image URL %q on ticket, got %q", url, stored.ImageURL)
	}
	if stored.ImageUploadedAt == nil || stored.ImageUploadedAt.IsZero() {
		t.Error("expected ImageUploadedAt to be set")
	}
	if stored.CustomerName != "A. Resident" {
		t.Errorf("unexpected customer name %q", stored.CustomerName)
	}
}

func TestAttachImageToleratesMissingTicket(t *testing.T) {
	images := newFakeImageStore()
	svc := newTestService(nil, nil, images, nil)

	url, err := svc.AttachImage(context.Background(), "WM-2026-999999", []byte("data"), "png", models.ImageAttachment{})
	if err != nil {
		t.Fatalf("expected missing ticket to be tolerated, got %v", err)
	}
	if url == "" {
		t.Fatal("expected the blob to be stored and a URL returned")
	}
	if _, ok := images.blobs["WM-2026-999999.png"]; !ok {
		t.Error("expected blob stored under ticketID.format")
	}
}

func TestAdvanceTicketForwardOnly(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	ticket, err := svc.CreateTicket(context.Background(), models.IssueMissedCollection, "missed", "Oak Lane", "")
	if err != nil {
		t.Fatalf("CreateTicket failed: %v", err)
	}

	if _, err := svc.AdvanceTicket(context.Background(), ticket.TicketID, models.StatusOpen); err != repository.ErrInvalidTransition {
		t.Errorf("expected same-state move to be rejected, got %v", err)
	}

	advanced, err := svc.AdvanceTicket(context.Background(), ticket.TicketID, models.StatusInProgress)
	if err != nil {
		t.Fatalf("AdvanceTicket to in_progress failed: %v", err)
	}
	if advanced.Status != models.StatusInProgress {
		t.Errorf("expected in_progress, got %s", advanced.Status)
	}

	if _, err := svc.AdvanceTicket(context.Background(), ticket.TicketID, models.StatusOpen); err != repository.ErrInvalidTransition {
		t.Errorf("expected backward move to be rejected, got %v", err)
	}

	if _, err := svc.AdvanceTicket(context.Background(), ticket.TicketID, models.StatusResolved); err != nil {
		t.Fatalf("AdvanceTicket to resolved failed: %v", err)
	}
	if _, err := svc.AdvanceTicket(context.Background(), ticket.TicketID, models.StatusResolved); err != repository.ErrInvalidTransition {
		t.Errorf("expected resolved to be terminal, got %v", err)
	}
}

func TestAdvanceTicketUnknownStatusAndTicket(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	if _, err := svc.AdvanceTicket(context.Background(), "WM-2026-000001", "archived"); err == nil {
		t.Error("expected error for unknown status")
	}
	if _, err := svc.AdvanceTicket(context.Background(), "WM-2026-000001", models.StatusInProgress); err != repository.ErrNotFound {
		t.Errorf("expected ErrNotFound for unknown ticket, got %v", err)
	}
}
