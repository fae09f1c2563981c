// Package jobs holds the scheduled maintenance work. The search index
// is a derived copy of the primary product records, and no cross-store
// transaction protects the dual-write paths; the rebuild job is the
// reconciliation mechanism for entries that went stale after a partial
// failure.
package jobs

import (
	"context"
	"time"

	"rentmarket-backend/internal/config"
	"rentmarket-backend/internal/logger"
	"rentmarket-backend/internal/repository"
	"rentmarket-backend/internal/search"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	products repository.ProductRepository
	index    search.ProductIndex
	config   *config.Config
}

func NewJobRunner(products repository.ProductRepository, index search.ProductIndex, cfg *config.Config) *JobRunner {
	return &JobRunner{
		products: products,
		index:    index,
		config:   cfg,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RebuildSearchIndex re-projects every product from the primary store
// into the search index.
func (jr *JobRunner) RebuildSearchIndex() {
	jr.runWithRecovery("RebuildSearchIndex", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		products, err := jr.products.FindAll(ctx)
		if err != nil {
			logger.Error("Failed to load products for index rebuild", "error", err)
			return
		}

		docs := make([]search.ProductDocument, 0, len(products))
		for i := range products {
			docs = append(docs, *search.Project(&products[i]))
		}

		if err := jr.index.BulkIndex(ctx, docs); err != nil {
			logger.Error("Failed to rebuild search index", "error", err)
			return
		}
		logger.Info("Search index rebuilt", "products", len(docs))
	})
}
