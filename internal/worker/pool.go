package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/Mivy_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// Pool is a fixed set of workers draining a bounded job queue
type Pool struct {
	workers    int
	jobQueue   chan Job
	jobTimeout time.Duration
	wg         sync.WaitGroup
	quit       chan struct{}
	once       sync.Once
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers <= 0 {
		workers = DefaultPoolWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultPoolQueueSize
	}
	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, queueSize),
		jobTimeout: DefaultJobTimeout,
		quit:       make(chan struct{}),
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			return
		}
	}
}

func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.jobTimeout)
	defer cancel()
	if err := job.Process(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
	}
}

// Enqueue adds a job, blocking while the queue is full. It gives up once the pool stops.
func (p *Pool) Enqueue(job Job) {
	select {
	case p.jobQueue <- job:
	case <-p.quit:
	}
}

// TryEnqueue adds a job without blocking and reports whether it was queued
func (p *Pool) TryEnqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		logger.Warn(LogMsgJobQueueFull)
		return false
	}
}

// Stop stops the workers and waits for them to finish. Queued jobs are dropped.
func (p *Pool) Stop() {
	p.once.Do(func() { close(p.quit) })
	p.wg.Wait()
}
