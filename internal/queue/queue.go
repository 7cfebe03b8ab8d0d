package queue

import (
	"container/heap"

	"github.com/rmaciel/atendimento/internal/model"
)

// Queue hands out waiting customers in service order. Both implementations
// serve corporativo before preferencial before comum; within the same
// priority customers keep FIFO order by insertion.
type Queue interface {
	Push(c model.Customer)
	// Pop returns the next customer to serve, false when the queue is drained
	Pop() (model.Customer, bool)
	Len() int
}

// New builds the queue structure named by s, defaulting to the per-type
// list structure
func New(s string) Queue {
	if s == model.StructureHeap {
		return NewPriority()
	}
	return NewTyped()
}

// typedQueue keeps one FIFO queue per customer type and scans them in
// priority order on Pop. Unknown types land in a trailing overflow queue.
type typedQueue struct {
	corporate []model.Customer
	priority  []model.Customer
	regular   []model.Customer
	other     []model.Customer
}

// NewTyped builds the per-type list queue structure
func NewTyped() Queue {
	return &typedQueue{}
}

func (q *typedQueue) Push(c model.Customer) {
	switch c.Type.Normalized() {
	case model.TypeCorporate:
		q.corporate = append(q.corporate, c)
	case model.TypePriority:
		q.priority = append(q.priority, c)
	case model.TypeRegular:
		q.regular = append(q.regular, c)
	default:
		q.other = append(q.other, c)
	}
}

func (q *typedQueue) Pop() (model.Customer, bool) {
	for _, bucket := range []*[]model.Customer{&q.corporate, &q.priority, &q.regular, &q.other} {
		if len(*bucket) > 0 {
			c := (*bucket)[0]
			*bucket = (*bucket)[1:]
			return c, true
		}
	}
	return model.Customer{}, false
}

func (q *typedQueue) Len() int {
	return len(q.corporate) + len(q.priority) + len(q.regular) + len(q.other)
}

// heap entry, seq breaks ties to keep FIFO within equal (priority, arrival)
type prioritized struct {
	customer model.Customer
	seq      int
}

type customerHeap []prioritized

func (h customerHeap) Len() int { return len(h) }

func (h customerHeap) Less(i, j int) bool {
	pi, pj := h[i].customer.Type.Priority(), h[j].customer.Type.Priority()
	if pi != pj {
		return pi < pj
	}
	if h[i].customer.Arrival != h[j].customer.Arrival {
		return h[i].customer.Arrival < h[j].customer.Arrival
	}
	return h[i].seq < h[j].seq
}

func (h customerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *customerHeap) Push(x any) {
	*h = append(*h, x.(prioritized))
}

func (h *customerHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}

type priorityQueue struct {
	entries customerHeap
	seq     int
}

// NewPriority builds the binary-heap queue structure
func NewPriority() Queue {
	return &priorityQueue{entries: make(customerHeap, 0)}
}

func (q *priorityQueue) Push(c model.Customer) {
	heap.Push(&q.entries, prioritized{customer: c, seq: q.seq})
	q.seq++
}

func (q *priorityQueue) Pop() (model.Customer, bool) {
	if q.entries.Len() == 0 {
		return model.Customer{}, false
	}
	entry := heap.Pop(&q.entries).(prioritized)
	return entry.customer, true
}

func (q *priorityQueue) Len() int {
	return q.entries.Len()
}
