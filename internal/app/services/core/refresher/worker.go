package refresher

import (
	"context"
	"time"
	"waterhealth-service/internal/app/config"
	"waterhealth-service/internal/app/contracts"
	"waterhealth-service/internal/pkg/constvars"
	"waterhealth-service/internal/pkg/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultCronSpec = "@hourly"
	leaderLockTTL   = 2 * time.Minute
	unlockTimeout   = 5 * time.Second
)

// Worker refreshes the configured watchlist on a cron schedule. It is an
// ordinary gateway caller: every waterbody gets exactly one refresh per tick.
type Worker struct {
	log         *zap.Logger
	cfg         *config.InternalConfig
	locker      contracts.LockerService
	usecase     contracts.HealthCardUsecase
	credentials contracts.CredentialProvider
	cron        *cron.Cron
	runCtx      context.Context
	cancel      context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, usecase contracts.HealthCardUsecase, credentials contracts.CredentialProvider) *Worker {
	return &Worker{log: log, cfg: cfg, locker: lockerSvc, usecase: usecase, credentials: credentials}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.HealthCard.RefreshCronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("refresher.worker: failed to schedule with provided cron spec; falling back to default",
			zap.String(constvars.LoggingCronSpecKey, spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultCronSpec, func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c

	w.log.Info("refresher.worker started",
		zap.String(constvars.LoggingCronSpecKey, spec),
		zap.Int(constvars.LoggingWatchlistSizeKey, len(w.cfg.HealthCard.RefreshWatchlist)),
	)
}

// Stop cancels in-flight refreshes and waits for the running job to return.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	ctx = utils.WithRequestID(ctx, utils.GenerateRequestID())
	requestID := utils.GetRequestID(ctx)

	acquired, token, err := w.locker.TryLock(ctx, constvars.HealthCardRefresherLockKey, leaderLockTTL)
	if err != nil {
		w.log.Warn("refresher.worker: leader lock attempt failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}
	if !acquired {
		w.log.Info("refresher.worker: leader lock not acquired; another instance is running",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return
	}
	defer w.releaseLeaderLock(ctx, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go w.keepLeaderLock(refreshCtx, token)

	credential, err := w.credentials.Credential(ctx)
	if err != nil {
		w.log.Error("refresher.worker: no credential available",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}

	var refreshed, demo, failed int
	for _, waterbodyID := range w.cfg.HealthCard.RefreshWatchlist {
		if ctx.Err() != nil {
			break
		}
		result, err := w.usecase.RefreshHealthCard(ctx, waterbodyID, credential)
		if err != nil {
			failed++
			w.log.Warn("refresher.worker: refresh failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingWaterbodyIDKey, waterbodyID),
				zap.Error(err),
			)
			continue
		}
		if result.IsDemo {
			demo++
		} else {
			refreshed++
		}
	}

	w.log.Info("refresher.worker: watchlist refreshed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingRefreshedCountKey, refreshed),
		zap.Int(constvars.LoggingDemoCountKey, demo),
		zap.Int(constvars.LoggingFailedCountKey, failed),
	)
}

// releaseLeaderLock unlocks on a context that survives Stop cancelling the tick.
func (w *Worker) releaseLeaderLock(ctx context.Context, token string) {
	unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unlockTimeout)
	defer cancel()

	if err := w.locker.Unlock(unlockCtx, constvars.HealthCardRefresherLockKey, token); err != nil {
		w.log.Error("refresher.worker unlock failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
}

// keepLeaderLock extends the lock at half its TTL until ctx is done.
func (w *Worker) keepLeaderLock(ctx context.Context, token string) {
	tick := time.NewTicker(leaderLockTTL / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if err := w.locker.Refresh(ctx, constvars.HealthCardRefresherLockKey, token, leaderLockTTL); err != nil {
				w.log.Warn("refresher.worker: failed to refresh leader lock TTL", zap.Error(err))
			}
		}
	}
}
