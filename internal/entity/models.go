package entity

import (
	"fmt"
	"time"
)

type SourceKind string

// Source kind marks where a piece of retrieval context came from
const (
	SourceJira    SourceKind = "jira"    // project tracker (project metadata + issues)
	SourceYoutube SourceKind = "youtube" // video transcript segments
	SourceWeb     SourceKind = "web"     // rendered web pages
	SourceCustom  SourceKind = "custom"  // user-uploaded via /load-documents
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

// Document is a unit of raw text gathered from one of the context sources.
// Documents only live between fetching and chunking.
type Document struct {
	Text     string
	Source   SourceKind
	Metadata map[string]string
}

// Chunk is a bounded span of document text prepared for embedding.
type Chunk struct {
	ID       string
	Text     string
	Source   SourceKind
	Metadata map[string]string
}

// Ticket is the generated record. Immutable once created.
type Ticket struct {
	ID          string    `json:"ticket_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Labels      []string  `json:"labels"`
	ProjectKey  *string   `json:"project_key"`
	CreatedAt   time.Time `json:"created_at"`
}

func (t *Ticket) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: ticket_id", ErrMissingField)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("unknown priority: %s", t.Priority)
	}
	return nil
}
