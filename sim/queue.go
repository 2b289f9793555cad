// Implements the ReadyQueue, which holds processes waiting for the CPU.
// Processes are enqueued on arrival and re-enqueued after an unfinished slice.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue is a FIFO ring buffer of positions into the arrival-sorted
// process list. Dequeue is O(1) and the buffer only grows when full.
// A ReadyQueue belongs to a single simulate call.
type ReadyQueue struct {
	buf  []int
	head int
	size int
}

// NewReadyQueue creates a queue with room for capacity entries before growing.
func NewReadyQueue(capacity int) *ReadyQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &ReadyQueue{buf: make([]int, capacity)}
}

// Enqueue adds a process position to the back of the queue.
func (q *ReadyQueue) Enqueue(idx int) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = idx
	q.size++
}

// Dequeue removes and returns the front entry.
// ok is false when the queue is empty.
func (q *ReadyQueue) Dequeue() (idx int, ok bool) {
	if q.size == 0 {
		return 0, false
	}
	idx = q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return idx, true
}

// Peek returns the front entry without removing it.
func (q *ReadyQueue) Peek() (idx int, ok bool) {
	if q.size == 0 {
		return 0, false
	}
	return q.buf[q.head], true
}

// Len returns the number of queued entries.
func (q *ReadyQueue) Len() int {
	return q.size
}

// Items returns the queued entries front to back as a fresh slice.
func (q *ReadyQueue) Items() []int {
	out := make([]int, q.size)
	for i := 0; i < q.size; i++ {
		out[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	return out
}

func (q *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range q.Items() {
		sb.WriteString(fmt.Sprint(val))
		if i < q.size-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// grow doubles the buffer, unrolling the ring so head lands at 0.
func (q *ReadyQueue) grow() {
	next := make([]int, 2*len(q.buf))
	for i := 0; i < q.size; i++ {
		next[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = next
	q.head = 0
}
