// FilePath: internal/models/models.ticket.go
package models

import "time"

// IssueType enumerates what a citizen can report.
type IssueType string

const (
	IssueMissedCollection IssueType = "missed_collection"
	IssueDamagedBin       IssueType = "damaged_bin"
	IssueIllegalDumping   IssueType = "illegal_dumping"
	IssueOverflowingBin   IssueType = "overflowing_bin"
	IssueOther            IssueType = "other"
)

// ValidIssueType reports whether t is a known issue type.
func ValidIssueType(t IssueType) bool {
	switch t {
	case IssueMissedCollection, IssueDamagedBin, IssueIllegalDumping, IssueOverflowingBin, IssueOther:
		return true
	}
	return false
}

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusResolved   TicketStatus = "resolved"
)

// ServiceTicket is a citizen-reported issue, optionally enriched with an
// uploaded image by a later independent write. Tickets are never deleted.
type ServiceTicket struct {
	TicketID        string         `json:"ticketId" db:"ticket_id"`
	IssueType       IssueType      `json:"issueType" db:"issue_type"`
	Description     string         `json:"description" db:"description"`
	Location        string         `json:"location" db:"location"`
	Priority        TicketPriority `json:"priority" db:"priority"`
	Status          TicketStatus   `json:"status" db:"status"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	ImageURL        string         `json:"imageUrl,omitempty" db:"image_url"`
	ImageUploadedAt *time.Time     `json:"imageUploadedAt,omitempty" db:"image_uploaded_at"`
	CustomerName    string         `json:"customerName,omitempty" db:"customer_name"`
	UploadReason    string         `json:"uploadReason,omitempty" db:"upload_reason"`
	ImageLocation   string         `json:"imageLocation,omitempty" db:"image_location"`
}

// ImageAttachment carries the metadata merged onto a ticket when an image
// upload references it.
type ImageAttachment struct {
	ImageURL      string
	UploadedAt    time.Time
	CustomerName  string
	UploadReason  string
	ImageLocation string
}
