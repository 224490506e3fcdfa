package renderer

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool renders tiles in parallel with a bounded number of goroutines.
// Tiles never overlap, so workers write disjoint regions of the shared buffer.
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool; numWorkers <= 0 uses the CPU count
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// Run calls render once per tile and waits for all of them.
// The first error is returned after every started tile has finished.
func (wp *WorkerPool) Run(tiles []*Tile, render func(tile *Tile) error) error {
	var g errgroup.Group
	g.SetLimit(wp.numWorkers)

	for _, tile := range tiles {
		g.Go(func() error {
			return render(tile)
		})
	}

	return g.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}
