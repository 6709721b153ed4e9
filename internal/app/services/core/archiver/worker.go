package archiver

import (
	"context"
	"fmt"
	"sync"
	"time"
	"waterhealth-service/internal/app/config"
	"waterhealth-service/internal/app/contracts"
	"waterhealth-service/internal/app/models"
	"waterhealth-service/internal/pkg/constvars"
	"waterhealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// Worker periodically drains refresh events into the snapshot archive with
// at-least-once semantics. A Redis marker per event id suppresses duplicates.
type Worker struct {
	log      *zap.Logger
	cfg      *config.InternalConfig
	locker   contracts.LockerService
	queue    contracts.HealthCardEventQueue
	storage  contracts.HealthCardArchiveStorage
	redis    contracts.RedisRepository
	stop     chan struct{}
	stopOnce sync.Once
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	queue contracts.HealthCardEventQueue,
	storage contracts.HealthCardArchiveStorage,
	redisRepository contracts.RedisRepository,
) *Worker {
	return &Worker{
		log:     log,
		cfg:     cfg,
		locker:  lockerSvc,
		queue:   queue,
		storage: storage,
		redis:   redisRepository,
		stop:    make(chan struct{}),
	}
}

// Start begins the ticker loop. It returns a stop function to halt execution.
func (w *Worker) Start(ctx context.Context) (stop func()) {
	ticker := time.NewTicker(w.tickInterval())

	w.log.Info("archiver.worker started",
		zap.String(constvars.LoggingQueueNameKey, constvars.HealthCardRefreshedQueueName),
	)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.stop:
				return
			case now := <-ticker.C:
				w.runOnce(ctx, now)
			}
		}
	}()

	return func() {
		w.stopOnce.Do(func() { close(w.stop) })
	}
}

func (w *Worker) runOnce(ctx context.Context, now time.Time) {
	ctx = utils.WithRequestID(ctx, utils.GenerateRequestID())
	requestID := utils.GetRequestID(ctx)
	w.log.Debug("archiver.worker.runOnce tick",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Time(constvars.LoggingTickTimeKey, now),
	)

	acquired, lockVal, err := w.locker.TryLock(ctx, constvars.HealthCardArchiverLockKey, w.lockTTL())
	if err != nil {
		w.log.Warn("archiver.worker lock attempt failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}
	if !acquired {
		w.log.Info("archiver.worker lock not acquired; another instance is running",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return
	}
	defer func() {
		if err := w.locker.Unlock(ctx, constvars.HealthCardArchiverLockKey, lockVal); err != nil {
			w.log.Error("archiver.worker unlock failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}()

	items, err := w.queue.FetchN(ctx, w.batchSize())
	if err != nil {
		w.log.Error("archiver.worker queue.FetchN error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}

	w.log.Info("archiver.worker queue.FetchN success",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingFetchedCountKey, len(items)),
	)

	for _, item := range items {
		w.processItem(ctx, item)
	}
}

func (w *Worker) processItem(ctx context.Context, item models.QueuedHealthCardEvent) {
	requestID := utils.GetRequestID(ctx)
	event := item.Event

	if event.HealthCard == nil {
		w.log.Error("archiver.worker event carries no health card; moving to DLQ",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventIDKey, event.ID),
		)
		w.deadLetter(ctx, item, event)
		return
	}

	markerKey := fmt.Sprintf(constvars.HealthCardArchiveMarkerFormat, event.ID)
	claimed, err := w.redis.TrySetNX(ctx, markerKey, event.WaterbodyID, w.markerTTL())
	if err != nil {
		w.log.Error("archiver.worker marker claim failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, markerKey),
			zap.Error(err),
		)
		w.requeueOnError(ctx, item, event)
		return
	}
	if !claimed {
		w.log.Info("archiver.worker event already archived; dropping duplicate",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventIDKey, event.ID),
		)
		w.ack(ctx, item)
		return
	}

	var objectName string
	err = utils.LogOperation(w.log, "archiver.worker.ArchiveHealthCard", requestID, func() error {
		var archiveErr error
		objectName, archiveErr = w.storage.ArchiveHealthCard(ctx, event.HealthCard)
		return archiveErr
	})
	if err != nil {
		if delErr := w.redis.Delete(ctx, markerKey); delErr != nil {
			w.log.Error("archiver.worker marker release failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, markerKey),
				zap.Error(delErr),
			)
		}
		w.requeueOnError(ctx, item, event)
		return
	}

	w.ack(ctx, item)
	w.log.Info("archiver.worker snapshot archived",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventIDKey, event.ID),
		zap.String(constvars.LoggingWaterbodyIDKey, event.WaterbodyID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
}

// requeueOnError bumps FailedCount and sends the event to the tail of the
// queue, or to the DLQ once MaxAttempts is reached.
func (w *Worker) requeueOnError(ctx context.Context, item models.QueuedHealthCardEvent, event models.HealthCardRefreshedEvent) {
	event.FailedCount++
	if event.FailedCount >= w.maxAttempts() {
		w.deadLetter(ctx, item, event)
		return
	}

	if err := w.queue.Reenqueue(ctx, &event); err != nil {
		w.log.Error("archiver.worker reenqueue failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventIDKey, event.ID),
			zap.Error(err),
		)
		return
	}
	w.ack(ctx, item)
	w.log.Info("archiver.worker retryable failure; requeued event",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEventIDKey, event.ID),
		zap.Int(constvars.LoggingFailedCountKey, event.FailedCount),
	)
}

func (w *Worker) deadLetter(ctx context.Context, item models.QueuedHealthCardEvent, event models.HealthCardRefreshedEvent) {
	if err := w.queue.EnqueueToDeadQueue(ctx, &event); err != nil {
		w.log.Error("archiver.worker enqueue to DLQ failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventIDKey, event.ID),
			zap.Error(err),
		)
		return
	}
	w.ack(ctx, item)
	w.log.Warn("archiver.worker moved event to DLQ",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEventIDKey, event.ID),
		zap.Int(constvars.LoggingFailedCountKey, event.FailedCount),
	)
}

func (w *Worker) ack(ctx context.Context, item models.QueuedHealthCardEvent) {
	if err := w.queue.AckMessage(ctx, item.DeliveryTag); err != nil {
		w.log.Error("archiver.worker ack failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventIDKey, item.Event.ID),
			zap.Error(err),
		)
	}
}

func (w *Worker) tickInterval() time.Duration {
	if w.cfg.Archiver.TickIntervalInSecond <= 0 {
		return 10 * time.Second
	}
	return time.Duration(w.cfg.Archiver.TickIntervalInSecond) * time.Second
}

func (w *Worker) lockTTL() time.Duration {
	if w.cfg.Archiver.LockTTLInSecond <= 0 {
		return 30 * time.Second
	}
	return time.Duration(w.cfg.Archiver.LockTTLInSecond) * time.Second
}

func (w *Worker) markerTTL() time.Duration {
	if w.cfg.Archiver.MarkerTTLInHours <= 0 {
		return 72 * time.Hour
	}
	return time.Duration(w.cfg.Archiver.MarkerTTLInHours) * time.Hour
}

func (w *Worker) batchSize() int {
	if w.cfg.Archiver.BatchSize <= 0 {
		return 1
	}
	return w.cfg.Archiver.BatchSize
}

func (w *Worker) maxAttempts() int {
	if w.cfg.Archiver.MaxAttempts <= 0 {
		return 1
	}
	return w.cfg.Archiver.MaxAttempts
}
