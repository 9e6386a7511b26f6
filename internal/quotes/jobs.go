package quotes

import (
	"context"
	"log"
	"time"

	"superpack/internal/packages"
)

// JobProcessor runs the package drift detector: quotes whose selection points
// at an older package version get flagged out-of-sync in the background.
type JobProcessor struct {
	repo       Repository
	engine     *Engine
	packageSvc packages.Service
	config     *JobConfig
	done       chan struct{}
}

// JobConfig contains configuration for background jobs
type JobConfig struct {
	DriftCheckInterval time.Duration
	BatchSize          int
}

// DefaultJobConfig returns default job configuration
func DefaultJobConfig() *JobConfig {
	return &JobConfig{
		DriftCheckInterval: 5 * time.Minute,
		BatchSize:          100,
	}
}

// NewJobProcessor creates a new job processor
func NewJobProcessor(repo Repository, engine *Engine, packageSvc packages.Service, config *JobConfig) *JobProcessor {
	if config == nil {
		config = DefaultJobConfig()
	}

	return &JobProcessor{
		repo:       repo,
		engine:     engine,
		packageSvc: packageSvc,
		config:     config,
		done:       make(chan struct{}),
	}
}

// Start starts all background jobs
func (jp *JobProcessor) Start(ctx context.Context) {
	log.Println("Starting quote background jobs...")
	go jp.startDriftDetector(ctx)
	log.Println("Quote background jobs started")
}

// Stop stops all background jobs
func (jp *JobProcessor) Stop() {
	log.Println("Stopping quote background jobs...")
	close(jp.done)
	log.Println("Quote background jobs stopped")
}

func (jp *JobProcessor) startDriftDetector(ctx context.Context) {
	ticker := time.NewTicker(jp.config.DriftCheckInterval)
	defer ticker.Stop()

	log.Printf("Started package drift detector with %v interval", jp.config.DriftCheckInterval)

	for {
		select {
		case <-ticker.C:
			jp.detectDrift(ctx)
		case <-jp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// detectDrift compares each linked quote's recorded package version against
// the package's current version.
func (jp *JobProcessor) detectDrift(ctx context.Context) {
	quotes, _, err := jp.repo.GetAll(ctx, QuoteListQuery{Limit: jp.config.BatchSize, SyncStatus: string(SyncStatusSynced)})
	if err != nil {
		log.Printf("Error scanning quotes for drift: %v", err)
		return
	}

	flagged := 0
	for i := range quotes {
		quote := &quotes[i]
		if !quote.IsLinked() {
			continue
		}

		pkg, err := jp.packageSvc.GetPackage(ctx, quote.Selection.PackageID)
		if err != nil {
			log.Printf("Error loading package %s for drift check: %v", quote.Selection.PackageID, err)
			continue
		}

		if pkg.Version != quote.Selection.PackageVersion {
			if _, err := jp.engine.MarkOutOfSync(ctx, quote.ID); err != nil {
				log.Printf("Error flagging quote %s out of sync: %v", quote.ID, err)
				continue
			}
			flagged++
		}
	}

	if flagged > 0 {
		log.Printf("Flagged %d quotes out of sync after package changes", flagged)
	}
}

// GetJobStatus returns the status of background jobs
func (jp *JobProcessor) GetJobStatus() map[string]interface{} {
	return map[string]interface{}{
		"drift_check_interval": jp.config.DriftCheckInterval.String(),
		"batch_size":           jp.config.BatchSize,
		"status":               "running",
	}
}
