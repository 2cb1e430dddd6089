package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sprintai/ticket-backend/internal/config"
	"github.com/sprintai/ticket-backend/internal/entity"
	"github.com/sprintai/ticket-backend/internal/integration/common"
	pkghttp "github.com/sprintai/ticket-backend/pkg/http"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.JiraConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.JiraConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

type projectResponse struct {
	Key            string          `json:"key"`
	Name           string          `json:"name"`
	Description    json.RawMessage `json:"description"`
	ProjectTypeKey string          `json:"projectTypeKey"`
}

type searchResponse struct {
	Issues []issue `json:"issues"`
}

type issue struct {
	Key    string `json:"key"`
	Fields struct {
		Summary     string          `json:"summary"`
		Description json.RawMessage `json:"description"`
		Status      struct {
			Name string `json:"name"`
		} `json:"status"`
		Priority struct {
			Name string `json:"name"`
		} `json:"priority"`
	} `json:"fields"`
}

// FetchProjectContext reads project metadata and the most recently created
// issues for the project, rendering each as one context document.
func (c *Connector) FetchProjectContext(ctx context.Context, baseURL, accessToken, projectKey string) ([]entity.Document, error) {
	ctxzap.Info(ctx, "fetching project context from tracker",
		zap.String("project_key", projectKey),
	)

	auth := pkghttp.WithHeader("Authorization", "Bearer "+accessToken)
	base := strings.TrimRight(baseURL, "/")

	var project projectResponse
	projectURL := fmt.Sprintf("%s/rest/api/3/project/%s", base, url.PathEscape(projectKey))
	if err := c.connector.DoRequest(ctx, http.MethodGet, "", nil, &project, pkghttp.WithURL(projectURL), auth); err != nil {
		return nil, fmt.Errorf("fetch project %s: %w", projectKey, err)
	}

	query := url.Values{}
	query.Set("jql", fmt.Sprintf("project = %s ORDER BY created DESC", projectKey))
	query.Set("maxResults", strconv.Itoa(c.config.MaxIssues))

	var search searchResponse
	searchURL := fmt.Sprintf("%s/rest/api/3/search?%s", base, query.Encode())
	if err := c.connector.DoRequest(ctx, http.MethodGet, "", nil, &search, pkghttp.WithURL(searchURL), auth); err != nil {
		return nil, fmt.Errorf("search issues for %s: %w", projectKey, err)
	}

	metadata := map[string]string{"project": projectKey}

	documents := make([]entity.Document, 0, len(search.Issues)+1)
	documents = append(documents, entity.Document{
		Text:     renderProject(&project),
		Source:   entity.SourceJira,
		Metadata: metadata,
	})
	for i := range search.Issues {
		documents = append(documents, entity.Document{
			Text:     renderIssue(&search.Issues[i]),
			Source:   entity.SourceJira,
			Metadata: metadata,
		})
	}

	ctxzap.Info(ctx, "project context fetched",
		zap.String("project_key", projectKey),
		zap.Int("issue_count", len(search.Issues)),
	)

	return documents, nil
}

func renderProject(p *projectResponse) string {
	projectType := p.ProjectTypeKey
	if projectType == "" {
		projectType = "Unknown"
	}
	return fmt.Sprintf("Project: %s\nKey: %s\nDescription: %s\nProject Type: %s",
		p.Name, p.Key, descriptionText(p.Description), projectType)
}

func renderIssue(is *issue) string {
	return fmt.Sprintf("Issue: %s\nSummary: %s\nDescription: %s\nStatus: %s\nPriority: %s",
		is.Key, is.Fields.Summary, descriptionText(is.Fields.Description),
		is.Fields.Status.Name, is.Fields.Priority.Name)
}

// descriptionText flattens the description field, which Jira may return as a
// plain string, a rich-text document, or null.
func descriptionText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return "No description"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "No description"
		}
		return s
	}
	return string(raw)
}
