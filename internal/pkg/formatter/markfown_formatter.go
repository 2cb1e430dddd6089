package formatter

import (
	"bytes"
	"fmt"

	"github.com/sprintai/ticket-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(ticket entity.Ticket) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", ticket.Title)
	for _, line := range metaLines(ticket) {
		fmt.Fprintf(&buf, "- %s\n", line)
	}
	fmt.Fprintf(&buf, "\n%s\n", ticket.Description)
	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
