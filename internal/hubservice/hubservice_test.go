// FilePath: internal/hubservice/hubservice_test.go
package hubservice

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/urbansense/wastehub/internal/ai"
	"github.com/urbansense/wastehub/internal/config"
	"github.com/urbansense/wastehub/internal/database"
	"github.com/urbansense/wastehub/internal/models"
	"github.com/urbansense/wastehub/internal/repository"
)

// In-memory stand-ins for the postgres repositories and the blob store.

type fakeReadingRepo struct {
	byDevice map[string][]models.Reading
	since    []models.Reading
	err      error
}

func (f *fakeReadingRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}

func (f *fakeReadingRepo) LatestByDevice(ctx context.Context, deviceID string, limit int) ([]models.Reading, error) {
	if f.err != nil {
		return nil, f.err
	}
	readings := f.byDevice[deviceID]
	if len(readings) > limit {
		readings = readings[:limit]
	}
	return readings, nil
}

func (f *fakeReadingRepo) Since(ctx context.Context, cutoff string) ([]models.Reading, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.since, nil
}

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]*models.ServiceTicket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*models.ServiceTicket)}
}

func (f *fakeTicketRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *models.ServiceTicket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *ticket
	f.tickets[ticket.TicketID] = &stored
	return nil
}

func (f *fakeTicketRepo) Get(ctx context.Context, ticketID string) (*models.ServiceTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) List(ctx context.Context) ([]*models.ServiceTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.ServiceTicket, 0, len(f.tickets))
	for _, t := range f.tickets {
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeTicketRepo) AttachImage(ctx context.Context, ticketID string, att models.ImageAttachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return repository.ErrNotFound
	}
	ticket.ImageURL = att.ImageURL
	uploadedAt := att.UploadedAt
	ticket.ImageUploadedAt = &uploadedAt
	ticket.CustomerName = att.CustomerName
	ticket.UploadReason = att.UploadReason
	ticket.ImageLocation = att.ImageLocation
	return nil
}

func (f *fakeTicketRepo) UpdateStatus(ctx context.Context, ticketID string, status models.TicketStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return repository.ErrNotFound
	}
	ticket.Status = status
	return nil
}

type fakeImageStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{blobs: make(map[string][]byte)}
}

func (f *fakeImageStore) Store(ctx context.Context, name string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[name] = data
	return "/api/files/" + name, nil
}

func (f *fakeImageStore) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.blobs[name]
	if !ok {
		return nil, "", repository.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), "application/octet-stream", nil
}

// fakeInvoker replays scripted model responses in order.
type fakeInvoker struct {
	responses []*ai.MessageResponse
	requests  []ai.MessageRequest
	err       error
}

func (f *fakeInvoker) CreateMessage(ctx context.Context, req ai.MessageRequest) (*ai.MessageResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return &ai.MessageResponse{}, nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func textResponse(text string) *ai.MessageResponse {
	return &ai.MessageResponse{
		Content:    []ai.ContentBlock{{Type: ai.BlockText, Text: text}},
		StopReason: "end_turn",
	}
}

func newTestService(readings *fakeReadingRepo, tickets *fakeTicketRepo, images *fakeImageStore, model ai.Invoker) *HubService {
	if readings == nil {
		readings = &fakeReadingRepo{byDevice: map[string][]models.Reading{}}
	}
	if tickets == nil {
		tickets = newFakeTicketRepo()
	}
	if images == nil {
		images = newFakeImageStore()
	}
	if model == nil {
		model = &fakeInvoker{}
	}
	return New(readings, tickets, images, model, nil,
		config.DevicesConfig{WasteSensorID: "waste-sensor-001", WeightSensorID: "weight-sensor-001"},
		config.ModelConfig{ChatModel: "chat-model", VisionModel: "vision-model"},
	)
}
