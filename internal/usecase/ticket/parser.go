package ticket

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sprintai/ticket-backend/internal/entity"
)

type ticketPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Labels      []string `json:"labels"`
}

// ParseModelResponse extracts ticket fields from a model completion. The
// whole response is tried as JSON first; if that fails, the span from the
// first "{" to the last "}" is tried, which tolerates models that wrap the
// object in prose or code fences.
func ParseModelResponse(response string) (*entity.Ticket, error) {
	payload, err := decodePayload(response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrModelResponse, err)
	}

	ticket := &entity.Ticket{
		Title:       payload.Title,
		Description: payload.Description,
		Priority:    normalizePriority(payload.Priority),
		Labels:      payload.Labels,
	}
	if ticket.Title == "" {
		ticket.Title = "Untitled"
	}
	if ticket.Description == "" {
		ticket.Description = "No description provided"
	}
	if ticket.Labels == nil {
		ticket.Labels = []string{}
	}
	return ticket, nil
}

func decodePayload(response string) (*ticketPayload, error) {
	var payload ticketPayload
	if err := json.Unmarshal([]byte(response), &payload); err == nil {
		return &payload, nil
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	if err := json.Unmarshal([]byte(response[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("decode extracted object: %w", err)
	}
	return &payload, nil
}

func normalizePriority(raw string) entity.Priority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return entity.PriorityHigh
	case "low":
		return entity.PriorityLow
	default:
		return entity.PriorityMedium
	}
}
