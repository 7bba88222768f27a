package renderer

import (
	"runtime"
	"sync"
)

// RowTask represents a single scanline rendering task for the worker pool
type RowTask struct {
	Y int // Raster row to render
}

// RowResult contains the result from rendering a scanline
type RowResult struct {
	Y   int
	Err error
}

// WorkerPool manages parallel scanline rendering. Each row is rendered by
// exactly one worker into a disjoint slice of the shared pixel buffer, so
// no synchronization is needed beyond the final drain.
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Zero or negative means one worker per CPU.
func NewWorkerPool(numWorkers, numRows int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		taskQueue:   make(chan RowTask, numRows),
		resultQueue: make(chan RowResult, numRows),
		numWorkers:  numWorkers,
	}
}

// Start begins all workers. renderRow must be safe to call concurrently
// for distinct rows.
func (wp *WorkerPool) Start(renderRow func(y int) error) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(renderRow)
	}
}

// Stop signals that no more rows will be submitted and waits for the
// workers to finish
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitRow submits a scanline task to the worker pool
func (wp *WorkerPool) SubmitRow(y int) {
	wp.taskQueue <- RowTask{Y: y}
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run(renderRow func(y int) error) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		wp.resultQueue <- RowResult{Y: task.Y, Err: renderRow(task.Y)}
	}
}
