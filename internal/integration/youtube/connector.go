package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sprintai/ticket-backend/internal/config"
	"github.com/sprintai/ticket-backend/internal/entity"
	"github.com/sprintai/ticket-backend/internal/integration/common"
	pkgHTTP "github.com/sprintai/ticket-backend/pkg/http"
	"go.uber.org/zap"
)

var captionTrackRe = regexp.MustCompile(`"captionTracks":\[\{"baseUrl":"([^"]+)"`)

// Connector pulls video transcripts from the public timedtext endpoint. The
// caption track URL is discovered by scraping the watch page, so no API key
// is required.
type Connector struct {
	connector *pkgHTTP.Connector
	config    config.YoutubeConnectorConfig
	logger    *zap.Logger
}

func NewConnector(
	cfg config.YoutubeConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

func (c *Connector) FetchTranscript(ctx context.Context, videoURL string) ([]entity.Document, error) {
	trackURL, err := c.captionTrackURL(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	var transcript timedtextResponse
	err = c.connector.DoRequest(ctx, http.MethodGet, "",
		nil, &transcript,
		pkgHTTP.WithURL(trackURL+"&fmt=json3"),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}

	segments := GroupSegments(transcript.Events, c.config.SegmentSeconds)
	if len(segments) == 0 {
		return nil, fmt.Errorf("video %s has an empty transcript", videoURL)
	}

	documents := make([]entity.Document, 0, len(segments))
	for _, seg := range segments {
		documents = append(documents, entity.Document{
			Text:   seg.Text,
			Source: entity.SourceYoutube,
			Metadata: map[string]string{
				"url":      videoURL,
				"start_ms": fmt.Sprintf("%d", seg.StartMs),
			},
		})
	}

	ctxzap.Debug(ctx, "transcript fetched",
		zap.String("url", videoURL),
		zap.Int("segment_count", len(documents)),
	)
	return documents, nil
}

func (c *Connector) captionTrackURL(ctx context.Context, videoURL string) (string, error) {
	page, err := c.connector.DoRawRequest(ctx, http.MethodGet, "",
		pkgHTTP.WithURL(videoURL),
		pkgHTTP.WithHeader("Accept-Language", "en-US,en"),
	)
	if err != nil {
		return "", fmt.Errorf("fetch watch page: %w", err)
	}

	match := captionTrackRe.FindSubmatch(page)
	if match == nil {
		return "", fmt.Errorf("video %s has no caption tracks", videoURL)
	}

	// The URL is embedded in a JSON string literal, with ampersands escaped
	// as \u0026.
	trackURL := strings.ReplaceAll(string(match[1]), `\u0026`, "&")
	return trackURL, nil
}

type timedtextResponse struct {
	Events []CaptionEvent `json:"events"`
}

// CaptionEvent is a single cue of a json3 timedtext track.
type CaptionEvent struct {
	StartMs  int64        `json:"tStartMs"`
	DurMs    int64        `json:"dDurationMs"`
	Segments []captionSeg `json:"segs"`
}

type captionSeg struct {
	Text string `json:"utf8"`
}

func (e CaptionEvent) text() string {
	var b strings.Builder
	for _, s := range e.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Segment is a stretch of transcript covering at most a fixed number of
// seconds of playback.
type Segment struct {
	StartMs int64
	Text    string
}

// GroupSegments folds caption events into windows of segmentSeconds each,
// joining cue texts with spaces. Events with empty text (music cues, line
// breaks) are dropped.
func GroupSegments(events []CaptionEvent, segmentSeconds int) []Segment {
	windowMs := int64(segmentSeconds) * 1000
	if windowMs <= 0 {
		windowMs = 30_000
	}

	var segments []Segment
	var parts []string
	var windowStart int64

	flush := func() {
		if len(parts) == 0 {
			return
		}
		segments = append(segments, Segment{
			StartMs: windowStart,
			Text:    strings.Join(parts, " "),
		})
		parts = nil
	}

	for _, ev := range events {
		text := strings.TrimSpace(ev.text())
		if text == "" {
			continue
		}
		if len(parts) > 0 && ev.StartMs >= windowStart+windowMs {
			flush()
		}
		if len(parts) == 0 {
			windowStart = ev.StartMs
		}
		parts = append(parts, text)
	}
	flush()

	return segments
}

// decodeEvents is used by tests to build events from a raw json3 payload.
func decodeEvents(raw []byte) ([]CaptionEvent, error) {
	var resp timedtextResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}
