package web

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/chromedp"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sprintai/ticket-backend/internal/config"
	"github.com/sprintai/ticket-backend/internal/entity"
	"go.uber.org/zap"
)

// Connector renders pages in headless Chrome so that script-generated
// content is captured, not just the initial HTML.
type Connector struct {
	config config.WebConnectorConfig
	logger *zap.Logger
}

func NewConnector(
	cfg config.WebConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		config: cfg,
		logger: logger,
	}
}

func (c *Connector) RenderPages(ctx context.Context, urls []string) ([]entity.Document, error) {
	opts := chromedp.DefaultExecAllocatorOptions[:]
	if c.config.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(c.config.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	var documents []entity.Document
	for _, u := range urls {
		text, err := c.renderPage(allocCtx, u)
		if err != nil {
			ctxzap.Warn(ctx, "failed to render page",
				zap.String("url", u),
				zap.Error(err),
			)
			continue
		}
		if text == "" {
			ctxzap.Warn(ctx, "page rendered empty", zap.String("url", u))
			continue
		}
		documents = append(documents, entity.Document{
			Text:     text,
			Source:   entity.SourceWeb,
			Metadata: map[string]string{"url": u},
		})
	}

	if len(documents) == 0 {
		return nil, fmt.Errorf("no pages could be rendered out of %d", len(urls))
	}

	ctxzap.Debug(ctx, "pages rendered", zap.Int("page_count", len(documents)))
	return documents, nil
}

func (c *Connector) renderPage(allocCtx context.Context, url string) (string, error) {
	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, c.config.RenderTimeout)
	defer cancelTimeout()

	var text string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Text("body", &text, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
