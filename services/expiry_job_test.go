package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type countingExpirer struct {
	calls int32
	panic bool
}

func (e *countingExpirer) ExpireStale(context.Context) (int64, error) {
	atomic.AddInt32(&e.calls, 1)
	if e.panic {
		panic("boom")
	}
	return 2, nil
}

func TestExpiryJobRun(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	exp := &countingExpirer{}
	job, err := NewExpiryJob("30 0 * * *", exp, zap.New(core))
	if err != nil {
		t.Fatal(err)
	}

	job.Run()
	if atomic.LoadInt32(&exp.calls) != 1 {
		t.Fatalf("expirer called %d times", exp.calls)
	}
	if logs.FilterMessage("job completed").Len() != 1 {
		t.Errorf("completion not logged: %v", logs.All())
	}

	// a run in progress makes the next tick a no-op
	atomic.StoreInt32(&job.running, 1)
	job.Run()
	if atomic.LoadInt32(&exp.calls) != 1 {
		t.Error("overlapping run was not skipped")
	}
}

func TestExpiryJobRecoversPanics(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	job, err := NewExpiryJob("@daily", &countingExpirer{panic: true}, zap.New(core))
	if err != nil {
		t.Fatal(err)
	}
	job.Run()
	if logs.FilterMessage("panic in job").Len() != 1 {
		t.Errorf("panic not logged: %v", logs.All())
	}
	if atomic.LoadInt32(&job.running) != 0 {
		t.Error("lock not released after panic")
	}
}

func TestExpiryJobRejectsBadSchedule(t *testing.T) {
	if _, err := NewExpiryJob("not a schedule", &countingExpirer{}, nil); err == nil {
		t.Error("expected a parse error")
	}
}

func TestExpiryJobStartStop(t *testing.T) {
	job, err := NewExpiryJob("@every 1h", &countingExpirer{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	job.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := job.Stop(ctx); err != nil {
		t.Errorf("stop: %v", err)
	}
}
