package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/sprintai/ticket-backend/internal/entity"
)

type Formatter interface {
	Format(ticket entity.Ticket) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// metaLines renders the ticket attributes shared by all output formats.
func metaLines(ticket entity.Ticket) []string {
	lines := []string{
		fmt.Sprintf("Priority: %s", ticket.Priority),
	}
	if len(ticket.Labels) > 0 {
		lines = append(lines, fmt.Sprintf("Labels: %s", strings.Join(ticket.Labels, ", ")))
	}
	if ticket.ProjectKey != nil {
		lines = append(lines, fmt.Sprintf("Project: %s", *ticket.ProjectKey))
	}
	lines = append(lines,
		fmt.Sprintf("Ticket ID: %s", ticket.ID),
		fmt.Sprintf("Created: %s", ticket.CreatedAt.Format(time.RFC3339)),
	)
	return lines
}
