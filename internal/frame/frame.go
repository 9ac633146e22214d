// Package frame provides cooperative, single-threaded frame scheduling: callbacks that run once
// on the next frame, and a Loop that reschedules itself every frame until stopped.
package frame

// ID identifies a requested frame callback. The zero ID is never issued.
type ID uint64

// Scheduler requests and cancels callbacks for the next frame.
type Scheduler interface {
	RequestFrame(fn func()) ID
	CancelFrame(id ID)
}

type request struct {
	id ID
	fn func()
}

// Queue is a Scheduler driven by an external frame pump calling Flush once per frame.
// It is not safe for concurrent use; all calls happen on the render goroutine.
type Queue struct {
	next      ID
	pending   []request
	flushing  []request
	cancelled map[ID]bool
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// RequestFrame schedules fn to run on the next Flush. A nil fn is accepted and never runs.
func (q *Queue) RequestFrame(fn func()) ID {
	q.next++
	q.pending = append(q.pending, request{id: q.next, fn: fn})
	return q.next
}

// CancelFrame removes a pending callback. Unknown or already-run ids are ignored.
// Cancelling from inside a callback also drops a later callback of the same flush.
func (q *Queue) CancelFrame(id ID) {
	if id == 0 {
		return
	}
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for _, r := range q.flushing {
		if r.id == id {
			if q.cancelled == nil {
				q.cancelled = make(map[ID]bool)
			}
			q.cancelled[id] = true
			return
		}
	}
}

// Len returns the number of pending callbacks.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Flush runs the callbacks that were pending when it was called, in request order, and returns
// how many ran. Callbacks requested during the flush run on the next one.
func (q *Queue) Flush() int {
	q.flushing, q.pending = q.pending, nil
	ran := 0
	for _, r := range q.flushing {
		if r.fn == nil || q.cancelled[r.id] {
			continue
		}
		r.fn()
		ran++
	}
	q.flushing = nil
	clear(q.cancelled)
	return ran
}

// Loop calls Tick once per frame by re-requesting itself after each tick.
type Loop struct {
	sched   Scheduler
	tick    func()
	pending ID
	running bool
}

// NewLoop returns a stopped loop that will call tick on every frame of sched.
func NewLoop(sched Scheduler, tick func()) *Loop {
	return &Loop{sched: sched, tick: tick}
}

// Start schedules the first frame. Starting a running loop does nothing.
func (l *Loop) Start() {
	if l == nil || l.sched == nil || l.running {
		return
	}
	l.running = true
	l.pending = l.sched.RequestFrame(l.frame)
}

// Stop cancels the pending frame; no further ticks run until Start.
func (l *Loop) Stop() {
	if l == nil || !l.running {
		return
	}
	l.running = false
	if l.pending != 0 {
		l.sched.CancelFrame(l.pending)
		l.pending = 0
	}
}

// Running reports whether the loop has a frame scheduled.
func (l *Loop) Running() bool {
	return l != nil && l.running
}

func (l *Loop) frame() {
	l.pending = 0
	if !l.running {
		return
	}
	if l.tick != nil {
		l.tick()
	}
	// tick may have stopped the loop.
	if l.running {
		l.pending = l.sched.RequestFrame(l.frame)
	}
}
