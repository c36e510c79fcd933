package grid

// dirtyQueue is a FIFO of chunk indices that holds each chunk at most once.
type dirtyQueue struct {
	pending []int
	queued  []bool
}

func newDirtyQueue(chunks int) dirtyQueue {
	return dirtyQueue{queued: make([]bool, chunks)}
}

func (q *dirtyQueue) push(chunk int) {
	if chunk < 0 || chunk >= len(q.queued) || q.queued[chunk] {
		return
	}
	q.queued[chunk] = true
	q.pending = append(q.pending, chunk)
}

func (q *dirtyQueue) drain() []int {
	out := q.pending
	q.pending = nil
	for _, c := range out {
		q.queued[c] = false
	}
	return out
}

// MarkDirty queues a chunk for rebuild.
func (g *Grid) MarkDirty(chunk int) {
	g.dirty.push(chunk)
}

// MarkAllDirty queues every chunk.
func (g *Grid) MarkAllDirty() {
	for i := range g.chunkCells {
		g.dirty.push(i)
	}
}

// IsDirty reports whether a chunk is waiting for a rebuild.
func (g *Grid) IsDirty(chunk int) bool {
	return chunk >= 0 && chunk < len(g.dirty.queued) && g.dirty.queued[chunk]
}

// DirtyCount returns the number of queued chunks.
func (g *Grid) DirtyCount() int {
	return len(g.dirty.pending)
}

// DrainDirty returns the queued chunks in the order they were first marked
// and clears the queue.
func (g *Grid) DrainDirty() []int {
	return g.dirty.drain()
}

// refresh queues the cell's chunk and any other chunk owning one of its
// neighbors, since connections and corners reach across the border.
func (g *Grid) refresh(c *Cell) {
	g.MarkDirty(c.chunk)
	for _, n := range c.neighbors {
		if n != noNeighbor && g.cells[n].chunk != c.chunk {
			g.MarkDirty(g.cells[n].chunk)
		}
	}
}

func (g *Grid) refreshSelfOnly(c *Cell) {
	g.MarkDirty(c.chunk)
}
