// Package queue implements the request queue between the connection
// acceptor and the drain loop.
//
// The queue is the only mutable structure shared across the bridge's two
// goroutines. The acceptor pushes, the drain loop pops; both operations are
// non-blocking.
package queue

import (
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Item is one queued unit of work: a client connection and the raw request
// text read from it. Items are immutable once constructed and consumed
// exactly once. The connection is owned by the acceptor until enqueued,
// then by the drain loop until closed.
type Item struct {
	// ID correlates the request across audit entries and logs.
	ID string

	// Conn is the client connection the response must be written to.
	Conn net.Conn

	// Text is the raw request line, already trimmed.
	Text string

	// EnqueuedAt records when the acceptor handed the request off.
	EnqueuedAt time.Time
}

// NewItem builds a request item with a fresh correlation ID.
func NewItem(conn net.Conn, text string) Item {
	return Item{
		ID:         uuid.NewString(),
		Conn:       conn,
		Text:       text,
		EnqueuedAt: time.Now(),
	}
}

// Queue is an unbounded FIFO of request items, safe for concurrent Push and
// TryPop. Items come out in push order and are delivered exactly once; an
// item is never dropped after a successful Push.
type Queue struct {
	mu    sync.Mutex
	items []Item
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Push appends an item to the tail. It never blocks.
func (q *Queue) Push(item Item) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item)
}

// TryPop removes and returns the head item. It never blocks; the second
// return value is false when the queue is empty at this instant.
func (q *Queue) TryPop() (Item, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Item{}, false
	}
	item := q.items[0]
	q.items[0] = Item{} // release the connection reference
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return item, true
}

// Len returns the number of items currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
