package db

import (
	"context"
	"time"

	"github.com/atinyakov/MathNotes/internal/repository"
	"go.uber.org/zap"
)

// StartCredentialReloader re-reads the credentials file on an interval and
// swaps the repository's mapping, so operators can rotate passwords without
// restarting the server. Runs until ctx is cancelled.
func StartCredentialReloader(
	ctx context.Context,
	repo *repository.StaticCredentialRepository,
	path string,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				creds, err := repository.LoadCredentialFile(path)
				if err != nil {
					// Keep serving the last good mapping.
					log.Error("failed to reload credentials", zap.Error(err))
					continue
				}
				repo.Replace(creds)
				log.Info("credentials reloaded", zap.Int("count", len(creds)))
			}
		}
	}()
}
