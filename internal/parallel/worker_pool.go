// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"field-locator/internal/matcher"
	"field-locator/internal/observability"
	"field-locator/internal/records"
	"field-locator/internal/token"
)

// WorkerPool matches a batch of fields against one token set concurrently.
// Token slices are shared read-only across workers.
type WorkerPool struct {
	workers  int
	jobs     chan *Job
	results  chan *Result
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	observer *observability.StandardObserver
}

// Job represents a single field lookup task
type Job struct {
	JobID   string
	Index   int
	Field   records.Field
	Tokens  []token.Token
	Options matcher.Options
}

// Result represents a completed field lookup
type Result struct {
	JobID    string
	Index    int
	Field    records.Field
	Match    *matcher.Result
	Duration time.Duration
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(workers int, observer *observability.StandardObserver) *WorkerPool {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workers:  workers,
		jobs:     make(chan *Job, workers*2),
		results:  make(chan *Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
		observer: observer,
	}
}

// Start initializes worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Stop closes the job queue and waits for workers to drain it
func (wp *WorkerPool) Stop() {
	close(wp.jobs)
	wp.wg.Wait()
	close(wp.results)
	wp.cancel()
}

// Submit adds a job to the queue
func (wp *WorkerPool) Submit(job *Job) {
	select {
	case wp.jobs <- job:
	case <-wp.ctx.Done():
	}
}

// Results returns the results channel
func (wp *WorkerPool) Results() <-chan *Result {
	return wp.results
}

// worker processes jobs from the queue
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for job := range wp.jobs {
		result := wp.processJob(job)

		select {
		case wp.results <- result:
		case <-wp.ctx.Done():
			return
		}
	}
}

func (wp *WorkerPool) processJob(job *Job) *Result {
	start := time.Now()

	var complete func(bool, map[string]interface{})
	if wp.observer != nil {
		complete = wp.observer.StartTiming("matcher", "match_field", job.Field.Key)
	}

	opts := job.Options
	if job.Field.PageHint > 0 {
		// Per-field hint joins the global preference list, still a soft bias
		opts.PreferredPages = append(append([]int{}, opts.PreferredPages...), job.Field.PageHint)
	}

	match := matcher.MatchField(job.Field.Key, job.Field.Value, job.Tokens, opts)

	if complete != nil {
		meta := map[string]interface{}{"located": match != nil}
		if match != nil {
			meta["score"] = match.Score
			meta["page"] = match.Page
		}
		complete(match != nil, meta)
	}

	return &Result{
		JobID:    job.JobID,
		Index:    job.Index,
		Field:    job.Field,
		Match:    match,
		Duration: time.Since(start),
	}
}

// LocateAll matches every field against the token set using the pool and
// returns the matches in input order.
func LocateAll(fields []records.Field, tokens []token.Token, opts matcher.Options, workers int, observer *observability.StandardObserver) []*matcher.Result {
	pool := NewWorkerPool(workers, observer)
	pool.Start()

	go func() {
		for i, field := range fields {
			pool.Submit(&Job{
				JobID:   fmt.Sprintf("field-%d", i),
				Index:   i,
				Field:   field,
				Tokens:  tokens,
				Options: opts,
			})
		}
		pool.Stop()
	}()

	matches := make([]*matcher.Result, len(fields))
	for result := range pool.Results() {
		matches[result.Index] = result.Match
	}
	return matches
}
