package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/bulkanim/internal/config"
)

// JobResult is the outcome of one batch job.
type JobResult struct {
	Job    string
	Target string
	Result *Result
	Err    error
}

// BatchResult collects every job outcome in manifest order.
type BatchResult struct {
	RunID   string
	Jobs    []JobResult
	Elapsed time.Duration
}

// Failed counts jobs that returned an error.
func (b *BatchResult) Failed() int {
	n := 0
	for _, j := range b.Jobs {
		if j.Err != nil {
			n++
		}
	}
	return n
}

// RunBatch runs the manifest's jobs on at most workers goroutines. Jobs are
// independent: a failing job does not stop the others, and since no two
// jobs write the same file they never share a tileset.
func RunBatch(ctx context.Context, m *config.Manifest, workers int, buildVersion string) (*BatchResult, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	workers = batchWorkers(workers, m.Workers)

	start := time.Now()
	out := &BatchResult{
		RunID: uuid.NewString(),
		Jobs:  make([]JobResult, len(m.Jobs)),
	}
	logger := log.With().Str("run", out.RunID).Logger()
	logger.Info().Int("jobs", len(m.Jobs)).Int("workers", workers).Msg("batch started")

	var g errgroup.Group
	g.SetLimit(workers)

	for i, job := range m.Jobs {
		g.Go(func() error {
			jr := JobResult{Job: job.Name, Target: job.Target()}
			jr.Result, jr.Err = runJob(ctx, job, buildVersion)

			if jr.Err != nil {
				logger.Error().Err(jr.Err).Str("job", job.Name).Msg("job failed")
			} else {
				logger.Info().Str("job", job.Name).Str("action", jr.Result.Action).Str("target", jr.Target).Msg("job done")
			}
			out.Jobs[i] = jr
			return nil
		})
	}
	_ = g.Wait()

	out.Elapsed = time.Since(start)
	logger.Info().Int("failed", out.Failed()).Dur("elapsed", out.Elapsed).Msg("batch finished")
	return out, nil
}

// batchWorkers picks the flag value, then the manifest value, then 1.
func batchWorkers(flag, manifest int) int {
	switch {
	case flag > 0:
		return flag
	case manifest > 0:
		return manifest
	default:
		return 1
	}
}

func runJob(ctx context.Context, job config.Job, buildVersion string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg, err := job.Config(buildVersion)
	if err != nil {
		return nil, err
	}
	p, err := Open(&cfg, Scripted{Config: &cfg})
	if err != nil {
		return nil, err
	}
	if job.Clear {
		return p.Clear(ctx)
	}
	return p.Create(ctx)
}
