package services

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const expiryJobTimeout = 10 * time.Minute

// Expirer is the part of QuotationService the daily job drives.
type Expirer interface {
	ExpireStale(ctx context.Context) (int64, error)
}

// ExpiryJob expires stale quotations on a cron schedule. Overlapping runs are skipped.
type ExpiryJob struct {
	cron    *cron.Cron
	expirer Expirer
	log     *zap.Logger
	running int32
	wg      sync.WaitGroup
}

// NewExpiryJob schedules expirer on spec, a standard five-field cron expression.
func NewExpiryJob(spec string, expirer Expirer, log *zap.Logger) (*ExpiryJob, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("cron")
	stdLog := zap.NewStdLog(log)

	j := &ExpiryJob{
		cron:    cron.New(cron.WithLogger(cron.VerbosePrintfLogger(stdLog))),
		expirer: expirer,
		log:     log,
	}
	if _, err := j.cron.AddFunc(spec, j.Run); err != nil {
		return nil, fmt.Errorf("schedule expiry job %q: %w", spec, err)
	}
	return j, nil
}

func (j *ExpiryJob) Start() {
	j.cron.Start()
	j.log.Info("expiry job scheduled", zap.Int("entries", len(j.cron.Entries())))
}

// Stop halts the scheduler and waits for a running pass, bounded by ctx.
func (j *ExpiryJob) Stop(ctx context.Context) error {
	done := j.cron.Stop()
	finished := make(chan struct{})
	go func() {
		<-done.Done()
		j.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run performs one expiry pass unless another pass is still in progress.
func (j *ExpiryJob) Run() {
	if !atomic.CompareAndSwapInt32(&j.running, 0, 1) {
		j.log.Info("previous expiry run still in progress, skipping")
		return
	}
	defer atomic.StoreInt32(&j.running, 0)

	ctx, cancel := context.WithTimeout(context.Background(), expiryJobTimeout)
	defer cancel()

	safeGo(ctx, &j.wg, "ExpireStaleQuotations", func(ctx context.Context) error {
		_, err := j.expirer.ExpireStale(ctx)
		return err
	}, j.log)
	j.wg.Wait()
}

// safeGo runs fn on its own goroutine, recovering and logging panics.
func safeGo(ctx context.Context, wg *sync.WaitGroup, name string, fn func(context.Context) error, log *zap.Logger) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in job", zap.String("job", name), zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			}
		}()

		if err := fn(ctx); err != nil {
			log.Error("job failed", zap.String("job", name), zap.Error(err))
			return
		}
		log.Info("job completed", zap.String("job", name))
	}()
}
