package validator

import (
	"fmt"
	"strings"

	"github.com/sprintai/ticket-backend/internal/entity"
)

// Validator checks inbound request payloads before any core logic runs.
// Tracker fields are deliberately not cross-checked here: a partial
// project/token/base-url triple means the tracker source is skipped, not
// that the request is invalid.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateTicketRequest(req *entity.TicketRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return fmt.Errorf("%w: prompt", entity.ErrMissingField)
	}
	return nil
}

func (v *Validator) ValidateLoadDocumentsRequest(req *entity.LoadDocumentsRequest) error {
	if len(req.YoutubeURLs) == 0 && len(req.WebURLs) == 0 && !req.HasProjectScope() {
		return fmt.Errorf("%w: at least one source is required", entity.ErrMissingField)
	}
	return nil
}

func (v *Validator) ValidateExportFormat(raw string) (entity.ResultFormat, error) {
	format := entity.ResultFormat(strings.ToLower(strings.TrimSpace(raw)))
	if raw == "" {
		return entity.FormatMarkdown, nil
	}
	if !format.IsValid() {
		return "", fmt.Errorf("%w: format %q", entity.ErrInvalidFormat, raw)
	}
	return format, nil
}
