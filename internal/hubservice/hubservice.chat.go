// FilePath: internal/hubservice/hubservice.chat.go
package hubservice

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urbansense/wastehub/internal/ai"
	"github.com/urbansense/wastehub/internal/errors"
	"github.com/urbansense/wastehub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

const chatSystemPrompt = `You are the assistant for a municipal smart waste management service. ` +
	`You help citizens with bin fill levels, gas and fire safety readings, collection schedules, ` +
	`billing questions and service requests. Use the available tools to look up live system ` +
	`status and to create service tickets. Keep answers short and concrete.`

// ChatTurn is one prior exchange forwarded by the dashboard.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResult is the chat endpoint response body.
type ChatResult struct {
	Response      string `json:"response"`
	TicketCreated bool   `json:"ticketCreated,omitempty"`
	TicketID      string `json:"ticketId,omitempty"`
}

// Tool inputs are typed and validated at the boundary rather than passed
// around as loose JSON.
type systemStatusInput struct{}

type processQueryInput struct {
	Query string `json:"query"`
}

type createTicketInput struct {
	IssueType   string `json:"issueType"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Priority    string `json:"priority,omitempty"`
}

type systemStatusOutput struct {
	Snapshot models.Snapshot      `json:"snapshot"`
	Schedule models.VoiceSchedule `json:"schedule"`
	Billing  models.VoiceBilling  `json:"billing"`
}

type createTicketOutput struct {
	TicketID string `json:"ticketId"`
	Status   string `json:"status"`
}

var chatTools = []ai.Tool{
	{
		Name:        "get_system_status",
		Description: "Fetch the current bin snapshot (fill, gas, fire, waste weights) plus the collection schedule and billing summary.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
	{
		Name:        "process_query",
		Description: "Answer a general waste-management question that needs no live data.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{"type": "string"},
			},
			"required": []string{"query"},
		},
	},
	{
		Name:        "create_service_ticket",
		Description: "Create a service ticket for a citizen-reported issue.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"issueType": map[string]interface{}{
					"type": "string",
					"enum": []string{"missed_collection", "damaged_bin", "illegal_dumping", "overflowing_bin", "other"},
				},
				"description": map[string]interface{}{"type": "string"},
				"location":    map[string]interface{}{"type": "string"},
				"priority": map[string]interface{}{
					"type": "string",
					"enum": []string{"low", "medium", "high"},
				},
			},
			"required": []string{"issueType", "description", "location"},
		},
	},
}

// Chat runs the single-turn tool protocol: one model call, at most one
// local tool execution, then one follow-up call carrying the tool result.
// Any failure along the way surfaces as a single upstream error.
func (s *HubService) Chat(ctx context.Context, message string, history []ChatTurn) (*ChatResult, error) {
	messages := make([]ai.Message, 0, len(history)+1)
	for _, turn := range history {
		role := turn.Role
		if role != "assistant" {
			role = "user"
		}
		messages = append(messages, ai.TextMessage(role, turn.Content))
	}
	messages = append(messages, ai.TextMessage("user", message))

	first, err := s.Model.CreateMessage(ctx, ai.MessageRequest{
		Model:    s.ModelCfg.ChatModel,
		System:   chatSystemPrompt,
		Messages: messages,
		Tools:    chatTools,
	})
	if err != nil {
		return nil, err
	}

	toolUse := first.ToolUse()
	if toolUse == nil {
		return &ChatResult{Response: first.FirstText()}, nil
	}

	result := &ChatResult{}
	toolResult, err := s.dispatchTool(ctx, toolUse, result)
	if err != nil {
		return nil, err
	}

	nuts.L.Infof("[ChatService] Executed tool %s", toolUse.Name)

	messages = append(messages,
		ai.Message{Role: "assistant", Content: first.Content},
		ai.Message{Role: "user", Content: []ai.ContentBlock{{
			Type:      ai.BlockToolResult,
			ToolUseID: toolUse.ID,
			Content:   toolResult,
		}}},
	)

	second, err := s.Model.CreateMessage(ctx, ai.MessageRequest{
		Model:    s.ModelCfg.ChatModel,
		System:   chatSystemPrompt,
		Messages: messages,
		Tools:    chatTools,
	})
	if err != nil {
		return nil, err
	}

	result.Response = second.FirstText()
	return result, nil
}

// dispatchTool executes exactly one local handler and returns its payload
// serialized for the second model round.
func (s *HubService) dispatchTool(ctx context.Context, toolUse *ai.ContentBlock, result *ChatResult) (string, error) {
	switch toolUse.Name {
	case "get_system_status":
		var input systemStatusInput
		if len(toolUse.Input) > 0 {
			if err := json.Unmarshal(toolUse.Input, &input); err != nil {
				return "", errors.NewUpstreamError("malformed get_system_status input", err)
			}
		}
		payload, err := s.LatestSnapshot(ctx)
		if err != nil {
			return "", err
		}
		return marshalToolResult(systemStatusOutput{
			Snapshot: payload.Snapshot,
			Schedule: staticSchedule,
			Billing:  staticBilling,
		})

	case "process_query":
		var input processQueryInput
		if err := json.Unmarshal(toolUse.Input, &input); err != nil {
			return "", errors.NewUpstreamError("malformed process_query input", err)
		}
		return fmt.Sprintf(
			"Query %q was recorded. The waste management team reviews general inquiries within one business day.",
			input.Query), nil

	case "create_service_ticket":
		var input createTicketInput
		if err := json.Unmarshal(toolUse.Input, &input); err != nil {
			return "", errors.NewUpstreamError("malformed create_service_ticket input", err)
		}
		ticket, err := s.CreateTicket(ctx,
			models.IssueType(input.IssueType), input.Description, input.Location,
			models.TicketPriority(input.Priority))
		if err != nil {
			return "", err
		}
		result.TicketCreated = true
		result.TicketID = ticket.TicketID
		return marshalToolResult(createTicketOutput{
			TicketID: ticket.TicketID,
			Status:   string(ticket.Status),
		})

	default:
		return "", errors.NewUpstreamError("model requested unknown tool: "+toolUse.Name, nil)
	}
}

func marshalToolResult(v interface{}) (string, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return "", errors.NewInternalError("failed to encode tool result", err)
	}
	return string(encoded), nil
}
