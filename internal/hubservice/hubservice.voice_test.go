// FilePath: internal/hubservice/hubservice.voice_test.go
package hubservice

import (
	"context"
	"strings"
	"testing"

	"github.com/urbansense/wastehub/internal/models"
)

func voiceReadings() *fakeReadingRepo {
	return &fakeReadingRepo{byDevice: map[string][]models.Reading{
		"waste-sensor-001": {
			{DeviceID: "waste-sensor-001", SensorType: models.SensorFill, Value: 85, Timestamp: "2026-01-15T10:00:00.000Z"},
			{DeviceID: "waste-sensor-001", SensorType: models.SensorGas, Value: 450, Timestamp: "2026-01-15T10:00:00.000Z"},
		},
	}}
}

func TestBuildVoiceContextAlerts(t *testing.T) {
	svc := newTestService(voiceReadings(), nil, nil, nil)

	vc, err := svc.BuildVoiceContext(context.Background())
	if err != nil {
		t.Fatalf("BuildVoiceContext failed: %v", err)
	}

	if vc.Bins.WetWaste.FillLevel != 85 {
		t.Errorf("expected wet bin fill 85, got %.0f", vc.Bins.WetWaste.FillLevel)
	}
	if vc.Bins.WetWaste.Status != "critical" {
		t.Errorf("expected critical wet bin, got %s", vc.Bins.WetWaste.Status)
	}
	if len(vc.Alerts.Active) != 2 {
		t.Fatalf("expected gas and bin_full alerts, got %d", len(vc.Alerts.Active))
	}
	if vc.Alerts.GasLevel != 450 {
		t.Errorf("expected gas level 450, got %.0f", vc.Alerts.GasLevel)
	}
}

func TestBuildVoiceContextQuietSystem(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	vc, err := svc.BuildVoiceContext(context.Background())
	if err != nil {
		t.Fatalf("BuildVoiceContext failed: %v", err)
	}

	if len(vc.Alerts.Active) != 0 {
		t.Errorf("expected no alerts, got %d", len(vc.Alerts.Active))
	}
	if vc.Schedule.WetWaste == "" || vc.Billing.CurrentBill == 0 {
		t.Error("expected static schedule and billing blocks to be populated")
	}
}

func TestVoiceQueryRouting(t *testing.T) {
	svc := newTestService(voiceReadings(), nil, nil, nil)

	cases := []struct {
		query string
		want  string
	}{
		{"How full is my bin?", "capacity"},
		{"Any alerts today?", "active alert"},
		{"When is the next collection?", "collection"},
		{"What is my bill?", "due by"},
		{"Tell me a joke", "I can help you with"},
	}

	for _, tc := range cases {
		response, vc, err := svc.VoiceQuery(context.Background(), tc.query)
		if err != nil {
			t.Fatalf("VoiceQuery(%q) failed: %v", tc.query, err)
		}
		if !strings.Contains(response, tc.want) {
			t.Errorf("VoiceQuery(%q) = %q, expected to contain %q", tc.query, response, tc.want)
		}
		if vc == nil {
			t.Errorf("VoiceQuery(%q) returned nil context", tc.query)
		}
	}
}

func TestVoiceActionCreatesTickets(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc := newTestService(nil, tickets, nil, nil)

	response, ticketID, err := svc.VoiceAction(context.Background(), "report_missed_collection", "Monday pickup skipped")
	if err != nil {
		t.Fatalf("VoiceAction failed: %v", err)
	}
	if ticketID == "" {
		t.Fatal("expected a ticket id")
	}
	if !strings.Contains(response, ticketID) {
		t.Errorf("response %q does not mention the ticket id", response)
	}

	stored, err := svc.GetTicket(context.Background(), ticketID)
	if err != nil {
		t.Fatalf("ticket not persisted: %v", err)
	}
	if stored.IssueType != models.IssueMissedCollection {
		t.Errorf("unexpected issue type %s", stored.IssueType)
	}
	if stored.Priority != models.PriorityHigh {
		t.Errorf("missed collection should be high priority, got %s", stored.Priority)
	}

	_, damagedID, err := svc.VoiceAction(context.Background(), "report_damaged_bin", "wheel missing")
	if err != nil {
		t.Fatalf("VoiceAction failed: %v", err)
	}
	damaged, _ := svc.GetTicket(context.Background(), damagedID)
	if damaged.Priority != models.PriorityMedium {
		t.Errorf("damaged bin should be medium priority, got %s", damaged.Priority)
	}
}

func TestVoiceActionNonTicketActions(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	response, ticketID, err := svc.VoiceAction(context.Background(), "request_callback", "")
	if err != nil {
		t.Fatalf("VoiceAction failed: %v", err)
	}
	if ticketID != "" {
		t.Error("callback should not create a ticket")
	}
	if !strings.Contains(response, "callback") {
		t.Errorf("unexpected response %q", response)
	}

	response, ticketID, err = svc.VoiceAction(context.Background(), "order_pizza", "")
	if err != nil {
		t.Fatalf("VoiceAction failed: %v", err)
	}
	if ticketID != "" {
		t.Error("unknown action should not create a ticket")
	}
	if response == "" {
		t.Error("unknown action should still get an acknowledgement")
	}
}
