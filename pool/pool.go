// ABOUTME: Small worker pool for running independent I/O tasks in parallel
// ABOUTME: Provides submit-and-wait used when reading tags from media files

// Package pool runs batches of independent tasks on a fixed set of goroutines.
package pool

import (
	"runtime"
	"sync"
)

// WorkerPool manages a pool of worker goroutines for parallel task execution
type WorkerPool struct {
	workers  int
	taskChan chan func()
	workerWg sync.WaitGroup // tracks worker goroutines lifetime
	taskWg   sync.WaitGroup // tracks submitted tasks completion
}

// NewWorkerPool starts numWorkers goroutines (runtime.NumCPU() when <= 0).
// bufferSize is the task channel capacity.
func NewWorkerPool(numWorkers, bufferSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	p := &WorkerPool{
		workers:  numWorkers,
		taskChan: make(chan func(), bufferSize),
	}

	for range numWorkers {
		p.workerWg.Add(1)

		go func() {
			defer p.workerWg.Done()

			for task := range p.taskChan {
				task()
				p.taskWg.Done()
			}
		}()
	}

	return p
}

// Workers returns the number of worker goroutines
func (p *WorkerPool) Workers() int {
	return p.workers
}

// Submit adds a task to the pool.
// Blocks if the task channel is full.
func (p *WorkerPool) Submit(task func()) {
	p.taskWg.Add(1)
	p.taskChan <- task
}

// Wait blocks until all submitted tasks have completed
func (p *WorkerPool) Wait() {
	p.taskWg.Wait()
}

// Close shuts down the worker pool and waits for all workers to exit
func (p *WorkerPool) Close() {
	close(p.taskChan)
	p.workerWg.Wait()
}
