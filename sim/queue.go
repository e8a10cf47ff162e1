// Implements the WaitQueue, which holds the heroes waiting at a base's door.
// Heroes are enqueued on Awaits and admitted on Notifies.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue represents a strict FIFO queue of heroes waiting to enter a base.
// It is never reordered: the head is always the longest-waiting hero.
type WaitQueue struct {
	queue []HeroID
}

// Enqueue adds a hero to the back of the wait queue.
func (wq *WaitQueue) Enqueue(id HeroID) {
	wq.queue = append(wq.queue, id)
}

// Dequeue removes and returns the hero at the front of the queue.
// Dequeuing from an empty queue is an invariant violation.
func (wq *WaitQueue) Dequeue() HeroID {
	if len(wq.queue) == 0 {
		panic("WaitQueue.Dequeue: queue is empty")
	}
	head := wq.queue[0]
	wq.queue = wq.queue[1:]
	return head
}

// Peek returns the hero at the front of the queue without removing it.
// The boolean is false if the queue is empty.
func (wq *WaitQueue) Peek() (HeroID, bool) {
	if len(wq.queue) == 0 {
		return 0, false
	}
	return wq.queue[0], true
}

// Len returns the number of heroes in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Items returns a copy of the queue contents, head first.
func (wq *WaitQueue) Items() []HeroID {
	out := make([]HeroID, len(wq.queue))
	copy(out, wq.queue)
	return out
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, id := range wq.queue {
		sb.WriteString(fmt.Sprint(int(id)))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
