package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sprintai/ticket-backend/internal/api"
	documentsapi "github.com/sprintai/ticket-backend/internal/api/documents"
	ticketapi "github.com/sprintai/ticket-backend/internal/api/ticket"
	"github.com/sprintai/ticket-backend/internal/config"
	"github.com/sprintai/ticket-backend/internal/integration/chroma"
	"github.com/sprintai/ticket-backend/internal/integration/jira"
	"github.com/sprintai/ticket-backend/internal/integration/openai"
	"github.com/sprintai/ticket-backend/internal/integration/web"
	"github.com/sprintai/ticket-backend/internal/integration/youtube"
	"github.com/sprintai/ticket-backend/internal/pkg/textsplit"
	"github.com/sprintai/ticket-backend/internal/pkg/validator"
	"github.com/sprintai/ticket-backend/internal/rag"
	"github.com/sprintai/ticket-backend/internal/repository"
	"github.com/sprintai/ticket-backend/internal/usecase/ingest"
	"github.com/sprintai/ticket-backend/internal/usecase/ticket"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Initialize external service connectors (with mock support)
	var vectorStore rag.VectorStore
	var heartbeat interface {
		Heartbeat(ctx context.Context) error
	}
	var embedder rag.Embedder
	var generator ticket.Generator
	var tracker rag.TrackerConnector
	var transcripts rag.TranscriptConnector
	var pages rag.PageConnector
	var ticketRepo repository.TicketRepository
	var storageClient storageCloser

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		chromaMock := chroma.NewMockConnector(logger)
		openaiMock := openai.NewMockConnector(logger)
		vectorStore = chromaMock
		heartbeat = chromaMock
		embedder = openaiMock
		generator = openaiMock
		tracker = jira.NewMockConnector(logger)
		transcripts = youtube.NewMockConnector(logger)
		pages = web.NewMockConnector(logger)
		ticketRepo = repository.NewTicketMemory()
	} else {
		logger.Info("Using real connectors for external services")
		chromaConn := chroma.NewConnector(cfg.ChromaCfg, logger)
		openaiConn := openai.NewConnector(cfg.OpenAICfg, logger)
		vectorStore = chromaConn
		heartbeat = chromaConn
		embedder = openaiConn
		generator = openaiConn
		tracker = jira.NewConnector(cfg.JiraCfg, logger)
		transcripts = youtube.NewConnector(cfg.YoutubeCfg, logger)
		pages = web.NewConnector(cfg.WebCfg, logger)

		client, err := setupStorage(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("setup storage: %w", err)
		}
		storageClient = client
		ticketRepo = repository.NewTicketGCS(client, cfg.StorageCfg.BucketName, cfg.StorageCfg.ServiceType)
	}

	if err := probeVectorStore(ctx, heartbeat, cfg, logger); err != nil {
		if storageClient != nil {
			storageClient.Close()
		}
		return nil, err
	}

	// Initialize RAG components
	splitter := textsplit.New(cfg.RAGCfg.ChunkSize, cfg.RAGCfg.ChunkOverlap)
	resolver := rag.NewResolver(vectorStore, logger)
	fetcher := rag.NewFetcher(tracker, transcripts, pages, cfg.RAGCfg.DefaultGuideURL, logger)
	assembler := rag.NewAssembler(vectorStore, embedder, logger)
	logger.Info("RAG components initialized")

	// Initialize validators
	requestValidator := validator.NewValidator()

	// Initialize use cases
	ticketUC := ticket.NewUsecase(
		resolver,
		fetcher,
		assembler,
		generator,
		splitter,
		ticketRepo,
		requestValidator,
		cfg.PersistTickets,
		logger,
	)

	ingestUC := ingest.NewUsecase(
		resolver,
		fetcher,
		assembler,
		splitter,
		requestValidator,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	ticketHandler := ticketapi.NewHandler(ticketUC)
	documentsHandler := documentsapi.NewHandler(ingestUC)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(ticketHandler, documentsHandler, cfg.APIKey, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:  server,
		storage: storageClient,
		logger:  logger,
	}, nil
}
