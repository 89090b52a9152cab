// FilePath: internal/models/models.voice.go
package models

// VoiceContext is the synthesized status object handed to the voice-agent
// integration: current bins, active alerts, collection schedule and billing.
type VoiceContext struct {
	Timestamp string        `json:"timestamp"`
	Bins      VoiceBins     `json:"bins"`
	Alerts    VoiceAlerts   `json:"alerts"`
	Schedule  VoiceSchedule `json:"schedule"`
	Billing   VoiceBilling  `json:"billing"`
}

type VoiceBins struct {
	WetWaste   VoiceBin `json:"wetWaste"`
	DryWaste   VoiceBin `json:"dryWaste"`
	MetalWaste VoiceBin `json:"metalWaste"`
}

type VoiceBin struct {
	FillLevel      float64 `json:"fillLevel"`
	Status         string  `json:"status"`
	NextCollection string  `json:"nextCollection"`
}

type VoiceAlerts struct {
	Active       []VoiceAlert `json:"active"`
	GasLevel     float64      `json:"gasLevel"`
	FireDetected bool         `json:"fireDetected"`
}

type VoiceAlert struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type VoiceSchedule struct {
	WetWaste  string `json:"wetWaste"`
	DryWaste  string `json:"dryWaste"`
	Hazardous string `json:"hazardous"`
}

type VoiceBilling struct {
	CurrentBill float64               `json:"currentBill"`
	DueDate     string                `json:"dueDate"`
	Breakdown   VoiceBillingBreakdown `json:"breakdown"`
}

type VoiceBillingBreakdown struct {
	Collection    float64 `json:"collection"`
	Recycling     float64 `json:"recycling"`
	Environmental float64 `json:"environmental"`
}
