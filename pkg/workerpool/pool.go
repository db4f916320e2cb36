// Package workerpool provides a bounded goroutine pool with
// backpressure. Order side effects (notification mail, plan archival)
// run through a pool so a burst of completions cannot spawn unbounded
// goroutines.
//
// When every worker is busy and the queue is full, Submit returns
// ErrPoolFull immediately so the caller can drop or retry:
//
//	pool := workerpool.New(10)
//	defer pool.Shutdown()
//
//	if err := pool.Submit(task); errors.Is(err, workerpool.ErrPoolFull) {
//	    // drop or retry later
//	}
package workerpool

import (
	"errors"
	"sync"
)

// ErrPoolFull is returned by Submit when the task queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit after Shutdown has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool is a bounded goroutine pool.
type Pool struct {
	queue chan func()
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// New creates a Pool with the given number of workers. The queue
// buffers twice the worker count so short bursts are absorbed without
// rejecting.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	p := &Pool{
		queue: make(chan func(), workers*2),
		done:  make(chan struct{}),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.run()
	}
	return p
}

// Submit enqueues task without blocking. Returns ErrPoolFull when the
// queue is at capacity and ErrPoolClosed after Shutdown.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	default:
	}

	select {
	case p.queue <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until a queue slot frees up or the pool closes.
func (p *Pool) SubmitWait(task func()) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	case p.queue <- task:
		return nil
	}
}

// Shutdown stops accepting tasks and waits for in-flight ones to
// finish. Safe to call more than once.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.done)
		close(p.queue)
		p.wg.Wait()
	})
}

func (p *Pool) run() {
	defer p.wg.Done()
	for task := range p.queue {
		execute(task)
	}
}

// execute runs task, recovering from panics so a bad task cannot kill
// the worker goroutine.
func execute(task func()) {
	defer func() { recover() }() //nolint:errcheck
	task()
}
