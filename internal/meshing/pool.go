package meshing

import (
	"context"
	"log/slog"
	"sync"

	"hexmesh/internal/grid"
	"hexmesh/internal/metrics"
	"hexmesh/internal/profiling"
)

// MeshJob asks a worker to rebuild one chunk into Mesh.
type MeshJob struct {
	Grid  *grid.Grid
	Chunk int
	Mesh  *ChunkMesh
	// Result channel - receives exactly one result per job
	ResultChan chan MeshResult
}

// MeshResult reports a finished chunk.
type MeshResult struct {
	Chunk     int
	Triangles int
}

// WorkerPool triangulates chunks on a fixed set of goroutines. Every worker
// owns its Triangulator, so jobs only share the read-only grid.
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	prof     *profiling.Recorder
	log      *slog.Logger
}

// NewWorkerPool starts workers goroutines. prof may be nil.
func NewWorkerPool(m *metrics.Metrics, features Features, workers, queueSize int, prof *profiling.Recorder, log *slog.Logger) *WorkerPool {
	if log == nil {
		log = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
		prof:     prof,
		log:      log,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i, NewTriangulator(m, features))
	}
	log.Debug("mesh worker pool started", "workers", workers, "queue", queueSize)
	return pool
}

// SubmitJobBlocking waits for queue space until ctx or the pool is done.
func (p *WorkerPool) SubmitJobBlocking(ctx context.Context, job MeshJob) bool {
	select {
	case p.jobQueue <- job:
		return true
	case <-ctx.Done():
		return false
	case <-p.ctx.Done():
		return false
	}
}

func (p *WorkerPool) worker(id int, tri *Triangulator) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			var stop func()
			if p.prof != nil {
				stop = p.prof.Track("meshing.Triangulate")
			}
			tri.Triangulate(job.Grid, job.Chunk, job.Mesh)
			if stop != nil {
				stop()
			}
			result := MeshResult{
				Chunk:     job.Chunk,
				Triangles: job.Mesh.TriangleCount(),
			}

			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				p.log.Debug("mesh worker stopped with pending result", "worker", id, "chunk", job.Chunk)
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers and waits for them. The queue is left open so
// a late submit cannot panic.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// Workers returns the number of goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}
