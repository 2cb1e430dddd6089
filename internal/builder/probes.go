package builder

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/avast/retry-go/v4"
	"github.com/sprintai/ticket-backend/internal/config"
	"go.uber.org/zap"
)

// setupStorage creates the Cloud Storage client and verifies the ticket
// bucket is reachable before the server starts taking traffic.
func setupStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*storage.Client, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	probe := func() error {
		probeCtx, cancel := context.WithTimeout(ctx, cfg.StartupRetry.Timeout)
		defer cancel()
		_, err := client.Bucket(cfg.StorageCfg.BucketName).Attrs(probeCtx)
		return err
	}

	if err := retry.Do(probe, cfg.StartupRetry.ToRetryOptions()...); err != nil {
		client.Close()
		return nil, fmt.Errorf("probe bucket %s: %w", cfg.StorageCfg.BucketName, err)
	}

	logger.Info("Ticket bucket reachable", zap.String("bucket", cfg.StorageCfg.BucketName))
	return client, nil
}

// probeVectorStore pings the vector store until it answers or the retry
// budget runs out.
func probeVectorStore(ctx context.Context, store interface {
	Heartbeat(ctx context.Context) error
}, cfg *config.Config, logger *zap.Logger) error {
	probe := func() error {
		probeCtx, cancel := context.WithTimeout(ctx, cfg.StartupRetry.Timeout)
		defer cancel()
		return store.Heartbeat(probeCtx)
	}

	if err := retry.Do(probe, cfg.StartupRetry.ToRetryOptions()...); err != nil {
		return fmt.Errorf("vector store heartbeat: %w", err)
	}

	logger.Info("Vector store reachable", zap.String("url", cfg.ChromaCfg.Url))
	return nil
}
