package pathfind

import (
	"container/heap"
	"mazepath/internal/grid"
)

// frontier is the open set: a binary heap of node IDs keyed by estimate.
// Equal estimates pop the most recently queued node first. Each node's heap
// position is kept in its meta slot so a queued node can be re-keyed in place.
type frontier struct {
	items []grid.NodeID
	meta  []meta
	seq   uint64
}

func (f *frontier) Len() int { return len(f.items) }

func (f *frontier) Less(i, j int) bool {
	a, b := &f.meta[f.items[i]], &f.meta[f.items[j]]
	if a.estimate != b.estimate {
		return a.estimate < b.estimate
	}
	return a.seq > b.seq
}

func (f *frontier) Swap(i, j int) {
	f.items[i], f.items[j] = f.items[j], f.items[i]
	f.meta[f.items[i]].slot = i
	f.meta[f.items[j]].slot = j
}

func (f *frontier) Push(x any) {
	id := x.(grid.NodeID)
	f.meta[id].slot = len(f.items)
	f.items = append(f.items, id)
}

func (f *frontier) Pop() any {
	n := len(f.items)
	id := f.items[n-1]
	f.items = f.items[:n-1]
	f.meta[id].slot = -1
	return id
}

// push queues id, or moves it to its new position if already queued.
func (f *frontier) push(id grid.NodeID) {
	f.seq++
	m := &f.meta[id]
	m.seq = f.seq
	if m.slot >= 0 {
		heap.Fix(f, m.slot)
		return
	}
	heap.Push(f, id)
}

// pop removes and returns the node with the lowest estimate.
func (f *frontier) pop() grid.NodeID {
	return heap.Pop(f).(grid.NodeID)
}
