package bot

import (
	"context"
	"sync"

	"gatepass/internal/gateway"
)

// userQueues gives every user a single-threaded FIFO queue so their events
// apply in arrival order, while different users proceed in parallel. A queue
// worker holds no lock between events; serialization comes from there being
// exactly one worker per user.
type userQueues struct {
	mu     sync.Mutex
	queues map[int64]chan gateway.Event
	wg     sync.WaitGroup
}

func newUserQueues() *userQueues {
	return &userQueues{queues: make(map[int64]chan gateway.Event)}
}

// Enqueue appends the event to its user's queue, starting a worker for the
// user on first use. Blocks only when that user's queue is full.
func (q *userQueues) Enqueue(ctx context.Context, ev gateway.Event, handle func(context.Context, gateway.Event)) {
	q.mu.Lock()
	ch, ok := q.queues[ev.UserID]
	if !ok {
		ch = make(chan gateway.Event, 16)
		q.queues[ev.UserID] = ch
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			for ev := range ch {
				handle(ctx, ev)
			}
		}()
	}
	q.mu.Unlock()

	ch <- ev
}

// Close stops all workers after their queues drain and waits for them.
func (q *userQueues) Close() {
	q.mu.Lock()
	for _, ch := range q.queues {
		close(ch)
	}
	q.queues = make(map[int64]chan gateway.Event)
	q.mu.Unlock()

	q.wg.Wait()
}
