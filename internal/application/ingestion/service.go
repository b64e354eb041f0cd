package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MrFriendly-B-V/OrderSync/internal/domain/ingestion"
	"github.com/MrFriendly-B-V/OrderSync/internal/domain/order"
)

// updateTimeout bounds the status writes done outside the run deadline
const updateTimeout = 10 * time.Second

// Service orchestrates ingestion runs: refresh the credential, crawl the
// provider's orders, normalize and write each one as it arrives, and record
// the outcome on the run row.
type Service struct {
	tokens     *TokenService
	crawler    *Crawler
	normalizer *Normalizer
	orders     order.Repository
	runs       ingestion.RunRepository
	locks      *runLocks

	runTimeout   time.Duration
	historyLimit int
	logger       *zap.Logger
}

// NewService creates a new ingestion Service
func NewService(
	tokens *TokenService,
	crawler *Crawler,
	orders order.Repository,
	runs ingestion.RunRepository,
	runTimeout time.Duration,
	historyLimit int,
	logger *zap.Logger,
) *Service {
	return &Service{
		tokens:       tokens,
		crawler:      crawler,
		normalizer:   NewNormalizer(),
		orders:       orders,
		runs:         runs,
		locks:        newRunLocks(),
		runTimeout:   runTimeout,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// TriggerIngestion starts a run for an instance and returns immediately with
// the pending run record; the pipeline itself executes in the background.
// At most one run per instance is in flight: a second trigger while one is
// running fails with ErrRunInProgress.
func (s *Service) TriggerIngestion(ctx context.Context, instanceID string) (*ingestion.Run, error) {
	if !s.locks.TryAcquire(instanceID) {
		return nil, fmt.Errorf("%w: instance %s", ingestion.ErrRunInProgress, instanceID)
	}

	run := ingestion.NewRun(instanceID)
	if err := s.runs.Save(ctx, run); err != nil {
		s.locks.Release(instanceID)
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	go s.execute(run)
	return run, nil
}

// execute runs the pipeline for one run. It owns its own deadline so the
// crawl survives the triggering HTTP request.
func (s *Service) execute(run *ingestion.Run) {
	defer s.locks.Release(run.InstanceID)

	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	log := s.logger.With(
		zap.String("instance_id", run.InstanceID),
		zap.String("run_id", run.ID.String()),
	)

	run.Start()
	s.updateRun(run, log)

	cred, err := s.tokens.Refresh(ctx, run.InstanceID)
	if err != nil {
		log.Error("credential refresh failed, aborting run", zap.Error(err))
		run.Fail(err.Error())
		s.updateRun(run, log)
		return
	}

	var succeeded, skipped, failed int
	handle := func(po ingestion.ProviderOrder) {
		tree, err := s.normalizer.Normalize(run.InstanceID, &po)
		if err != nil {
			skipped++
			log.Warn("skipping order",
				zap.String("provider_order_id", po.ID),
				zap.Error(err),
			)
			return
		}
		if err := s.orders.SaveTree(ctx, tree); err != nil {
			failed++
			log.Error("order write failed",
				zap.String("provider_order_id", po.ID),
				zap.Error(fmt.Errorf("%w: %v", ingestion.ErrWriteFailed, err)),
			)
			return
		}
		succeeded++
	}

	total, err := s.crawler.Crawl(ctx, cred.AccessToken, handle)
	if err != nil {
		log.Error("crawl aborted", zap.Error(err))
		if errors.Is(err, ingestion.ErrCancelled) ||
			errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			run.TotalOrders = total
			run.SucceededCount = succeeded
			run.SkippedCount = skipped
			run.FailedCount = failed
			run.Cancel()
		} else {
			run.Abort(err.Error(), total, succeeded, skipped, failed)
		}
		s.updateRun(run, log)
		return
	}

	run.Complete(total, succeeded, skipped, failed)
	s.updateRun(run, log)

	log.Info("ingestion run finished",
		zap.String("status", run.Status.String()),
		zap.Int("total_orders", total),
		zap.Int("succeeded", succeeded),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)
}

// updateRun persists the run's current state on a fresh context so a final
// status still lands after the run deadline expired
func (s *Service) updateRun(run *ingestion.Run, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
	defer cancel()
	if err := s.runs.Update(ctx, run); err != nil {
		log.Error("failed to persist run state", zap.Error(err))
	}
}

// GetRun returns one run by its ID
func (s *Service) GetRun(ctx context.Context, id uuid.UUID) (*ingestion.Run, error) {
	return s.runs.FindByID(ctx, id)
}

// ListRuns returns the most recent runs for an instance
func (s *Service) ListRuns(ctx context.Context, instanceID string) ([]ingestion.Run, error) {
	return s.runs.ListByInstance(ctx, instanceID, s.historyLimit)
}
