package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/sprintai/ticket-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConnectorConfig() config.YoutubeConnectorConfig {
	return config.YoutubeConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           5 * time.Second,
			KeepAlive:             30 * time.Second,
			IdleConnTimeout:       30 * time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
		},
		SegmentSeconds: 30,
	}
}

func TestFetchTranscriptUnescapesTrackURL(t *testing.T) {
	var trackQuery url.Values

	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, _ *http.Request) {
		// The baseUrl sits inside a JSON string literal on the watch page, so
		// its ampersands arrive as \u0026.
		fmt.Fprintf(w, `<html><script>{"captionTracks":[{"baseUrl":"%s/api/timedtext?v=abc\u0026lang=en"}]}</script></html>`, server.URL)
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		trackQuery = r.URL.Query()
		fmt.Fprint(w, `{"events":[{"tStartMs":0,"dDurationMs":2000,"segs":[{"utf8":"hello"}]}]}`)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	c := NewConnector(testConnectorConfig(), zap.NewNop())

	docs, err := c.FetchTranscript(context.Background(), server.URL+"/watch?v=abc")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "hello", docs[0].Text)

	require.NotNil(t, trackQuery, "timedtext endpoint was never hit")
	assert.Equal(t, "abc", trackQuery.Get("v"))
	assert.Equal(t, "en", trackQuery.Get("lang"))
	assert.Equal(t, "json3", trackQuery.Get("fmt"))
}

func TestFetchTranscriptNoCaptionTracks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>no captions here</body></html>`)
	}))
	defer server.Close()

	c := NewConnector(testConnectorConfig(), zap.NewNop())

	_, err := c.FetchTranscript(context.Background(), server.URL+"/watch?v=abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no caption tracks")
}

func TestGroupSegmentsWindows(t *testing.T) {
	events := []CaptionEvent{
		{StartMs: 0, Segments: []captionSeg{{Text: "first"}}},
		{StartMs: 10_000, Segments: []captionSeg{{Text: "second"}}},
		{StartMs: 29_000, Segments: []captionSeg{{Text: "third"}}},
		{StartMs: 31_000, Segments: []captionSeg{{Text: "fourth"}}},
		{StartMs: 65_000, Segments: []captionSeg{{Text: "fifth"}}},
	}

	segments := GroupSegments(events, 30)

	require.Len(t, segments, 3)
	assert.Equal(t, Segment{StartMs: 0, Text: "first second third"}, segments[0])
	assert.Equal(t, Segment{StartMs: 31_000, Text: "fourth"}, segments[1])
	assert.Equal(t, Segment{StartMs: 65_000, Text: "fifth"}, segments[2])
}

func TestGroupSegmentsSkipsEmptyCues(t *testing.T) {
	events := []CaptionEvent{
		{StartMs: 0, Segments: []captionSeg{{Text: "\n"}}},
		{StartMs: 500, Segments: []captionSeg{{Text: "hello "}, {Text: "world"}}},
		{StartMs: 1_000, Segments: nil},
	}

	segments := GroupSegments(events, 30)

	require.Len(t, segments, 1)
	assert.Equal(t, int64(500), segments[0].StartMs)
	assert.Equal(t, "hello world", segments[0].Text)
}

func TestGroupSegmentsEmptyTranscript(t *testing.T) {
	assert.Empty(t, GroupSegments(nil, 30))
}

func TestGroupSegmentsWindowStartsAtFirstCue(t *testing.T) {
	// A video whose captions only begin a minute in should not produce
	// empty leading windows.
	events := []CaptionEvent{
		{StartMs: 60_000, Segments: []captionSeg{{Text: "late start"}}},
		{StartMs: 80_000, Segments: []captionSeg{{Text: "still same window"}}},
	}

	segments := GroupSegments(events, 30)

	require.Len(t, segments, 1)
	assert.Equal(t, int64(60_000), segments[0].StartMs)
}

func TestDecodeEventsJSON3(t *testing.T) {
	raw := []byte(`{"events":[{"tStartMs":120,"dDurationMs":2000,"segs":[{"utf8":"hi"},{"utf8":" there"}]}]}`)

	events, err := decodeEvents(raw)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(120), events[0].StartMs)
	assert.Equal(t, "hi there", events[0].text())
}
