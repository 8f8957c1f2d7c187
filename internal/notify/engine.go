package notify

import (
	"container/heap"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrInvalidTriggerTime = errors.New("notify: invalid trigger time")

type queueItem struct {
	req Request
	seq uint64
}

type priorityQueue []queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].req.TriggerAt.Before(pq[j].req.TriggerAt)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(queueItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

// Engine is the in-process notification capability: a min-heap of pending
// requests ordered by trigger time and a single timer goroutine that emits
// fired requests on C(). Scheduling the same id again replaces the pending
// entry; Cancel drops pending entries without disturbing the heap (stale
// entries are skipped when they surface).
type Engine struct {
	mu      sync.Mutex
	queue   priorityQueue
	live    map[int]uint64
	seq     uint64
	out     chan Request
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(priorityQueue, 0),
		live:   make(map[int]uint64),
		out:    make(chan Request, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan Request {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Available() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started && !e.stopped
}

func (e *Engine) Schedule(ctx context.Context, req Request) error {
	if req.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("notify: engine stopped")
	}

	e.seq++
	e.live[req.ID] = e.seq
	heap.Push(&e.queue, queueItem{req: req, seq: e.seq})
	e.signalWakeup()
	return nil
}

// Cancel drops the pending entries for the given ids. Ids with nothing
// pending are ignored.
func (e *Engine) Cancel(ctx context.Context, ids []int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, id := range ids {
		delete(e.live, id)
	}
	e.signalWakeup()
	return nil
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.TriggerAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now())
			for _, req := range due {
				select {
				case e.out <- req:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

// peek returns the earliest live entry, discarding cancelled or replaced
// entries from the top of the heap as a side effect.
func (e *Engine) peek() (Request, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dropStale()
	if len(e.queue) == 0 {
		return Request{}, false
	}
	return e.queue[0].req, true
}

func (e *Engine) popDue(now time.Time) []Request {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Request, 0)
	for len(e.queue) > 0 {
		e.dropStale()
		if len(e.queue) == 0 {
			break
		}
		next := e.queue[0]
		if next.req.TriggerAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		delete(e.live, item.req.ID)
		out = append(out, item.req)
	}
	return out
}

// dropStale removes entries from the heap top whose seq no longer matches
// the live entry for their id. Callers must hold mu.
func (e *Engine) dropStale() {
	for len(e.queue) > 0 {
		top := e.queue[0]
		if seq, ok := e.live[top.req.ID]; ok && seq == top.seq {
			return
		}
		heap.Pop(&e.queue)
	}
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
