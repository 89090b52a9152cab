// FilePath: internal/hubservice/hubservice.voice.go
package hubservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urbansense/wastehub/internal/aggregate"
	"github.com/urbansense/wastehub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// Static schedule and billing blocks. Collection routes and billing live in
// the city's ERP; the dashboard only mirrors this fixed summary.
var (
	staticSchedule = models.VoiceSchedule{
		WetWaste:  "Monday, Wednesday, Friday",
		DryWaste:  "Tuesday, Saturday",
		Hazardous: "First Sunday of each month",
	}

	staticBilling = models.VoiceBilling{
		CurrentBill: 45.50,
		DueDate:     "January 31, 2026",
		Breakdown: models.VoiceBillingBreakdown{
			Collection:    30.00,
			Recycling:     10.00,
			Environmental: 5.50,
		},
	}

	staticCollections = map[string]string{
		"wet":   "Wednesday, January 20, 2026",
		"dry":   "Saturday, January 23, 2026",
		"metal": "Sunday, February 7, 2026",
	}
)

// gasAlertThreshold is the voice-context alert level in ppm, independent of
// both classification profiles.
const gasAlertThreshold = 400

// BuildVoiceContext synthesizes the status object for the voice-agent
// integration: per-bin fill and status, active alerts, schedule and billing.
func (s *HubService) BuildVoiceContext(ctx context.Context) (*models.VoiceContext, error) {
	payload, err := s.LatestSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	snap := payload.Snapshot

	vc := &models.VoiceContext{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Bins: models.VoiceBins{
			WetWaste: models.VoiceBin{
				FillLevel:      snap.FillLevel,
				Status:         string(aggregate.BinStatusPolicy.Classify(snap.FillLevel, 0, false)),
				NextCollection: staticCollections["wet"],
			},
			DryWaste: models.VoiceBin{
				FillLevel:      45,
				Status:         string(aggregate.StatusNormal),
				NextCollection: staticCollections["dry"],
			},
			MetalWaste: models.VoiceBin{
				FillLevel:      23,
				Status:         string(aggregate.StatusNormal),
				NextCollection: staticCollections["metal"],
			},
		},
		Alerts: models.VoiceAlerts{
			Active:       []models.VoiceAlert{},
			GasLevel:     snap.GasLevel,
			FireDetected: snap.FireDetected,
		},
		Schedule: staticSchedule,
		Billing:  staticBilling,
	}

	if snap.GasLevel > gasAlertThreshold {
		vc.Alerts.Active = append(vc.Alerts.Active, models.VoiceAlert{
			Type:     "gas",
			Severity: "medium",
			Message:  fmt.Sprintf("Gas level at %.0f ppm, above safe threshold", snap.GasLevel),
		})
	}
	if snap.FillLevel > aggregate.BinStatusPolicy.FillCritical {
		vc.Alerts.Active = append(vc.Alerts.Active, models.VoiceAlert{
			Type:     "bin_full",
			Severity: "high",
			Message:  "Wet waste bin is critically full",
		})
	}

	return vc, nil
}

// VoiceQuery answers a spoken question by keyword routing over the current
// context.
func (s *HubService) VoiceQuery(ctx context.Context, query string) (string, *models.VoiceContext, error) {
	vc, err := s.BuildVoiceContext(ctx)
	if err != nil {
		return "", nil, err
	}

	q := strings.ToLower(query)
	var response string
	switch {
	case strings.Contains(q, "fill level") || strings.Contains(q, "how full"):
		response = fmt.Sprintf(
			"Your wet waste bin is currently at %.0f%% capacity. Your dry waste bin is at %.0f%%, and metal waste is at %.0f%%.",
			vc.Bins.WetWaste.FillLevel, vc.Bins.DryWaste.FillLevel, vc.Bins.MetalWaste.FillLevel)
	case strings.Contains(q, "alert") || strings.Contains(q, "warning"):
		if len(vc.Alerts.Active) == 0 {
			response = "There are no active alerts. All systems are functioning normally."
		} else {
			plural := ""
			if len(vc.Alerts.Active) > 1 {
				plural = "s"
			}
			messages := make([]string, 0, len(vc.Alerts.Active))
			for _, a := range vc.Alerts.Active {
				messages = append(messages, a.Message)
			}
			response = fmt.Sprintf("You have %d active alert%s. %s",
				len(vc.Alerts.Active), plural, strings.Join(messages, ". "))
		}
	case strings.Contains(q, "collection") || strings.Contains(q, "pickup"):
		response = fmt.Sprintf("Your next wet waste collection is %s. Dry waste collection is %s.",
			vc.Bins.WetWaste.NextCollection, vc.Bins.DryWaste.NextCollection)
	case strings.Contains(q, "bill") || strings.Contains(q, "payment"):
		response = fmt.Sprintf(
			"Your current bill is $%.2f, due by %s. This includes $%.2f for collection, $%.2f for recycling, and $%.2f in environmental fees.",
			vc.Billing.CurrentBill, vc.Billing.DueDate,
			vc.Billing.Breakdown.Collection, vc.Billing.Breakdown.Recycling, vc.Billing.Breakdown.Environmental)
	default:
		response = "I can help you with bin fill levels, collection schedules, alerts, and billing information. What would you like to know?"
	}

	return response, vc, nil
}

// VoiceAction executes a voice-initiated service action. Report actions
// create real tickets through the ticket lifecycle.
func (s *HubService) VoiceAction(ctx context.Context, action, details string) (string, string, error) {
	switch action {
	case "report_missed_collection":
		ticket, err := s.CreateTicket(ctx, models.IssueMissedCollection, details, "", models.PriorityHigh)
		if err != nil {
			return "", "", err
		}
		response := fmt.Sprintf(
			"I've created a service ticket for missed collection. Your ticket number is %s. A collection crew will be dispatched within 4 hours.",
			ticket.TicketID)
		return response, ticket.TicketID, nil

	case "report_damaged_bin":
		ticket, err := s.CreateTicket(ctx, models.IssueDamagedBin, details, "", models.PriorityMedium)
		if err != nil {
			return "", "", err
		}
		response := fmt.Sprintf(
			"I've created a service ticket for bin replacement. Your ticket number is %s. A technician will contact you within 24 hours.",
			ticket.TicketID)
		return response, ticket.TicketID, nil

	case "request_callback":
		return "I've scheduled a callback from our support team. They will contact you within 2 hours.", "", nil

	default:
		nuts.L.Infof("[VoiceService] Unrecognized action %q recorded", action)
		return "I've recorded your request. Our team will follow up shortly.", "", nil
	}
}
