package rag

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sprintai/ticket-backend/internal/entity"
	"go.uber.org/zap"
)

// FetchRequest describes which context sources to pull for one request.
// Tracker fields are all-or-nothing; the caller enforces the triple.
type FetchRequest struct {
	ProjectKey  string
	AccessToken string
	JiraBaseURL string

	YoutubeURLs []string
	WebURLs     []string

	// IncludeDefaultGuide swaps in the configured guidance page when no web
	// or video sources were requested. Only the project-scoped generation
	// path sets it.
	IncludeDefaultGuide bool
}

func (r *FetchRequest) hasTracker() bool {
	return r.ProjectKey != "" && r.AccessToken != "" && r.JiraBaseURL != ""
}

// Fetcher gathers documents from the tracker, video transcripts and web
// pages. Every source is fault isolated: a failing source is logged and
// contributes nothing, it never fails the fetch as a whole.
type Fetcher struct {
	tracker         TrackerConnector
	transcripts     TranscriptConnector
	pages           PageConnector
	defaultGuideURL string
	logger          *zap.Logger
}

func NewFetcher(
	tracker TrackerConnector,
	transcripts TranscriptConnector,
	pages PageConnector,
	defaultGuideURL string,
	logger *zap.Logger,
) *Fetcher {
	return &Fetcher{
		tracker:         tracker,
		transcripts:     transcripts,
		pages:           pages,
		defaultGuideURL: defaultGuideURL,
		logger:          logger,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, req FetchRequest) []entity.Document {
	var documents []entity.Document

	if req.hasTracker() {
		docs, err := f.tracker.FetchProjectContext(ctx, req.JiraBaseURL, req.AccessToken, req.ProjectKey)
		if err != nil {
			ctxzap.Warn(ctx, "failed to fetch project context",
				zap.String("project_key", req.ProjectKey),
				zap.Error(err),
			)
		} else {
			documents = append(documents, docs...)
		}
	}

	for _, url := range req.YoutubeURLs {
		docs, err := f.transcripts.FetchTranscript(ctx, url)
		if err != nil {
			ctxzap.Warn(ctx, "failed to fetch video transcript",
				zap.String("url", url),
				zap.Error(err),
			)
			continue
		}
		documents = append(documents, docs...)
	}

	webURLs := req.WebURLs
	if len(webURLs) == 0 && len(req.YoutubeURLs) == 0 && req.IncludeDefaultGuide && f.defaultGuideURL != "" {
		webURLs = []string{f.defaultGuideURL}
	}
	if len(webURLs) > 0 {
		docs, err := f.pages.RenderPages(ctx, webURLs)
		if err != nil {
			ctxzap.Warn(ctx, "failed to render web pages",
				zap.Int("url_count", len(webURLs)),
				zap.Error(err),
			)
		} else {
			documents = append(documents, docs...)
		}
	}

	ctxzap.Debug(ctx, "context documents gathered", zap.Int("document_count", len(documents)))
	return documents
}
