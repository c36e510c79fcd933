package meshing

import (
	"context"
	"log/slog"
	"time"

	"hexmesh/internal/grid"
	"hexmesh/internal/metrics"
	"hexmesh/internal/profiling"
)

// slowFlush is the flush duration above which the scheduler logs its
// heaviest timing buckets.
const slowFlush = 50 * time.Millisecond

// Scheduler owns one ChunkMesh per chunk and rebuilds the chunks the grid
// marked dirty. Grid writes must not overlap a Flush.
type Scheduler struct {
	grid   *grid.Grid
	tri    *Triangulator
	meshes []*ChunkMesh
	pool   *WorkerPool
	prof   *profiling.Recorder
	log    *slog.Logger
}

// NewScheduler creates the meshes for every chunk of g. With workers > 1
// chunks are rebuilt on a WorkerPool; otherwise on the calling goroutine.
func NewScheduler(g *grid.Grid, m *metrics.Metrics, features Features, workers int, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	s := &Scheduler{
		grid: g,
		tri:  NewTriangulator(m, features),
		prof: profiling.New(),
		log:  log,
	}
	s.meshes = make([]*ChunkMesh, g.ChunkCount())
	for i := range s.meshes {
		s.meshes[i] = s.tri.NewChunkMesh(i)
	}
	if workers > 1 {
		s.pool = NewWorkerPool(m, features, workers, g.ChunkCount(), s.prof, log)
	}
	return s
}

// Mesh returns the current geometry of a chunk, or nil if out of range.
func (s *Scheduler) Mesh(chunk int) *ChunkMesh {
	if chunk < 0 || chunk >= len(s.meshes) {
		return nil
	}
	return s.meshes[chunk]
}

// Meshes returns all chunk meshes in chunk order.
func (s *Scheduler) Meshes() []*ChunkMesh {
	return s.meshes
}

// Workers returns the number of goroutines rebuilding chunks.
func (s *Scheduler) Workers() int {
	if s.pool == nil {
		return 1
	}
	return s.pool.Workers()
}

// Profile exposes the timings of the last flush.
func (s *Scheduler) Profile() *profiling.Recorder {
	return s.prof
}

// Flush drains the dirty queue and rebuilds each drained chunk once. It
// returns the number of rebuilt chunks. On cancellation chunks that were
// not rebuilt are marked dirty again.
func (s *Scheduler) Flush(ctx context.Context) (int, error) {
	chunks := s.grid.DrainDirty()
	if len(chunks) == 0 {
		return 0, nil
	}

	s.prof.Reset()
	start := time.Now()
	stop := s.prof.Track("meshing.Flush")

	var (
		n   int
		err error
	)
	if s.pool != nil {
		n, err = s.flushParallel(ctx, chunks)
	} else {
		n, err = s.flushSerial(ctx, chunks)
	}
	stop()

	elapsed := time.Since(start)
	if elapsed > slowFlush {
		s.log.Warn("slow mesh flush", "chunks", n, "workers", s.Workers(), "elapsed", elapsed, "top", s.prof.TopN(3))
	} else {
		s.log.Debug("mesh flush", "chunks", n, "workers", s.Workers(), "elapsed", elapsed)
	}
	return n, err
}

// RebuildAll marks every chunk dirty and flushes.
func (s *Scheduler) RebuildAll(ctx context.Context) (int, error) {
	s.grid.MarkAllDirty()
	return s.Flush(ctx)
}

func (s *Scheduler) flushSerial(ctx context.Context, chunks []int) (int, error) {
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			s.requeue(chunks[i:])
			return i, err
		}
		stop := s.prof.Track("meshing.Triangulate")
		s.tri.Triangulate(s.grid, chunk, s.meshes[chunk])
		stop()
	}
	return len(chunks), nil
}

// flushParallel fans the chunks out to the pool. Jobs already submitted are
// always waited for so no worker writes a mesh after Flush returns.
func (s *Scheduler) flushParallel(ctx context.Context, chunks []int) (int, error) {
	results := make(chan MeshResult, len(chunks))
	submitted := 0
	for _, chunk := range chunks {
		job := MeshJob{
			Grid:       s.grid,
			Chunk:      chunk,
			Mesh:       s.meshes[chunk],
			ResultChan: results,
		}
		if !s.pool.SubmitJobBlocking(ctx, job) {
			break
		}
		submitted++
	}

	for i := 0; i < submitted; i++ {
		<-results
	}

	if submitted < len(chunks) {
		s.requeue(chunks[submitted:])
		if err := ctx.Err(); err != nil {
			return submitted, err
		}
		return submitted, context.Canceled
	}
	return submitted, nil
}

func (s *Scheduler) requeue(chunks []int) {
	for _, c := range chunks {
		s.grid.MarkDirty(c)
	}
	s.log.Debug("mesh flush interrupted", "requeued", len(chunks))
}

// Close stops the worker pool, if any.
func (s *Scheduler) Close() {
	if s.pool != nil {
		s.pool.Shutdown()
		s.pool = nil
	}
}
