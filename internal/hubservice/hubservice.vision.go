// FilePath: internal/hubservice/hubservice.vision.go
package hubservice

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/urbansense/wastehub/internal/ai"
	"github.com/urbansense/wastehub/internal/errors"
	"github.com/urbansense/wastehub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

const visionInstruction = `Analyze this photo of waste. Respond with a single JSON object of the form ` +
	`{"wasteTypes": [{"type": "<wet|dry|metal|mixed|unknown>", "percentage": <0-100>}], ` +
	`"recommendations": ["<short action item>"], "severity": "<low|medium|high>"} and nothing else.`

// VisionRequest is the vision endpoint request body.
type VisionRequest struct {
	Image        string `json:"image"`
	Location     string `json:"location,omitempty"`
	TicketID     string `json:"ticketId,omitempty"`
	CustomerName string `json:"customerName,omitempty"`
	UploadReason string `json:"uploadReason,omitempty"`
	LocationText string `json:"locationText,omitempty"`
}

// VisionAnalysis is the structured classification extracted from the model
// response.
type VisionAnalysis struct {
	WasteTypes      []WasteTypeShare `json:"wasteTypes"`
	Recommendations []string         `json:"recommendations"`
	Severity        string           `json:"severity"`
}

type WasteTypeShare struct {
	Type       string  `json:"type"`
	Percentage float64 `json:"percentage"`
}

// VisionResult is the vision endpoint response body.
type VisionResult struct {
	Analysis VisionAnalysis `json:"analysis"`
	ImageURL string         `json:"imageUrl,omitempty"`
}

// fallbackAnalysis is returned when the model response carries no parseable
// JSON; the request still succeeds with low confidence.
var fallbackAnalysis = VisionAnalysis{
	WasteTypes:      []WasteTypeShare{{Type: "unknown", Percentage: 100}},
	Recommendations: []string{"Automatic classification failed, manual inspection recommended"},
	Severity:        "low",
}

// AnalyzeImage classifies an uploaded waste photo. When a ticket reference
// is present the image is persisted and merged onto the ticket first; a
// missing ticket downgrades the merge to a log line and the analysis still
// runs.
func (s *HubService) AnalyzeImage(ctx context.Context, req VisionRequest) (*VisionResult, error) {
	mediaType, data, err := decodeDataURL(req.Image)
	if err != nil {
		return nil, err
	}

	result := &VisionResult{}

	if req.TicketID != "" {
		url, err := s.AttachImage(ctx, req.TicketID, data, formatFromMediaType(mediaType), models.ImageAttachment{
			UploadedAt:    time.Now().UTC(),
			CustomerName:  req.CustomerName,
			UploadReason:  req.UploadReason,
			ImageLocation: firstNonEmpty(req.LocationText, req.Location),
		})
		if err != nil {
			return nil, err
		}
		result.ImageURL = url
	}

	resp, err := s.Model.CreateMessage(ctx, ai.MessageRequest{
		Model: s.ModelCfg.VisionModel,
		Messages: []ai.Message{{
			Role: "user",
			Content: []ai.ContentBlock{
				{
					Type: ai.BlockImage,
					Source: &ai.ImageSource{
						Type:      "base64",
						MediaType: mediaType,
						Data:      base64.StdEncoding.EncodeToString(data),
					},
				},
				{Type: ai.BlockText, Text: visionInstruction},
			},
		}},
	})
	if err != nil {
		return nil, err
	}

	result.Analysis = extractAnalysis(resp.FirstText())
	return result, nil
}

// extractAnalysis pulls the first brace-delimited substring out of the
// model text and decodes it, falling back to the canned low-confidence
// analysis when nothing parses.
func extractAnalysis(text string) VisionAnalysis {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		nuts.L.Warnf("[VisionService] No JSON object in model response, using fallback")
		return fallbackAnalysis
	}

	var analysis VisionAnalysis
	if err := json.Unmarshal([]byte(text[start:end+1]), &analysis); err != nil {
		nuts.L.Warnf("[VisionService] Failed to decode model JSON: %v", err)
		return fallbackAnalysis
	}
	return analysis
}

// decodeDataURL splits a data URL into its media type and raw bytes.
func decodeDataURL(dataURL string) (string, []byte, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, errors.NewValidationError("image must be a data URL", nil)
	}

	comma := strings.Index(dataURL, ",")
	if comma < 0 {
		return "", nil, errors.NewValidationError("malformed data URL", nil)
	}

	header := dataURL[len("data:"):comma]
	mediaType := strings.TrimSuffix(header, ";base64")
	if mediaType == header {
		return "", nil, errors.NewValidationError("image data URL must be base64 encoded", nil)
	}

	data, err := base64.StdEncoding.DecodeString(dataURL[comma+1:])
	if err != nil {
		return "", nil, errors.NewValidationError("invalid base64 image payload", err)
	}
	return mediaType, data, nil
}

// formatFromMediaType infers the stored file extension from the image MIME
// type.
func formatFromMediaType(mediaType string) string {
	switch mediaType {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
