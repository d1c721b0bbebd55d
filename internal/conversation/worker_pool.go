package conversation

import (
	"context"
	"errors"
	"sync"

	"github.com/wolfman30/scam-honeypot/pkg/logging"
)

const (
	defaultPoolWorkers   = 10
	defaultPoolQueueSize = 64
)

// ErrPoolClosed is returned by Submit after Close.
var ErrPoolClosed = errors.New("conversation: worker pool closed")

// WorkerPool runs jobs on a fixed number of goroutines fed by a buffered queue.
// Bursts beyond the worker count wait in the queue instead of spawning more goroutines.
type WorkerPool struct {
	jobs   chan func()
	quit   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
	logger *logging.Logger
}

// PoolOption customizes a WorkerPool.
type PoolOption func(*WorkerPool)

// WithPoolLogger sets the logger used to report panicking jobs.
func WithPoolLogger(logger *logging.Logger) PoolOption {
	return func(p *WorkerPool) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewWorkerPool starts workers goroutines sharing a queue of queueSize pending jobs.
func NewWorkerPool(workers, queueSize int, opts ...PoolOption) *WorkerPool {
	if workers <= 0 {
		workers = defaultPoolWorkers
	}
	if queueSize < 0 {
		queueSize = defaultPoolQueueSize
	}
	p := &WorkerPool{
		jobs:   make(chan func(), queueSize),
		quit:   make(chan struct{}),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

// Submit enqueues job, blocking until a queue slot frees up or ctx is done.
func (p *WorkerPool) Submit(ctx context.Context, job func()) error {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-p.quit:
		return ErrPoolClosed
	default:
	}

	select {
	case p.jobs <- job:
		return nil
	case <-p.quit:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the workers once their current job finishes. Queued jobs are dropped.
func (p *WorkerPool) Close() {
	p.once.Do(func() {
		close(p.quit)
	})
	p.wg.Wait()
}

func (p *WorkerPool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			return
		case job := <-p.jobs:
			p.runJob(job)
		}
	}
}

// runJob keeps a panicking job from taking its worker down with it.
func (p *WorkerPool) runJob(job func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker pool job panicked", "panic", r)
		}
	}()
	job()
}
