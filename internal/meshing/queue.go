package meshing

import (
	"errors"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

// GenerationQueue runs tasks one at a time, in FIFO order, on a dedicated
// background goroutine. Enqueue never blocks; the worker sleeps while the
// queue is empty.
type GenerationQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []Task
	closed  bool
	log     *zap.Logger
	wg      sync.WaitGroup
}

// NewGenerationQueue starts the worker. The caller owns the queue and must
// call Shutdown to stop it.
func NewGenerationQueue(log *zap.Logger) *GenerationQueue {
	if log == nil {
		log = zap.NewNop()
	}
	q := &GenerationQueue{log: log.Named("queue")}
	q.cond = sync.NewCond(&q.mu)

	q.wg.Add(1)
	go q.worker()
	q.log.Info("generation queue started")
	return q
}

// Enqueue appends t and wakes the worker.
func (q *GenerationQueue) Enqueue(t Task) error {
	if t == nil {
		return errors.New("meshing: nil task")
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.pending = append(q.pending, t)
	q.cond.Signal()
	return nil
}

// Shutdown enqueues the stop sentinel. Tasks already queued still run. It is
// safe to call more than once.
func (q *GenerationQueue) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.pending = append(q.pending, nil)
	q.cond.Signal()
}

// Wait blocks until the worker has exited.
func (q *GenerationQueue) Wait() {
	q.wg.Wait()
}

// Close shuts down and waits for the queued tasks to drain.
func (q *GenerationQueue) Close() {
	q.Shutdown()
	q.Wait()
}

// Len returns the number of tasks waiting to run.
func (q *GenerationQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.pending)
	if q.closed && n > 0 {
		n--
	}
	return n
}

func (q *GenerationQueue) next() Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.pending) == 0 {
		q.cond.Wait()
	}
	t := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	return t
}

func (q *GenerationQueue) worker() {
	defer q.wg.Done()
	for {
		t := q.next()
		if t == nil {
			q.log.Info("generation queue stopped")
			return
		}
		q.run(t)
	}
}

// run shields the worker from a task that panics outside its own guard.
func (q *GenerationQueue) run(t Task) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Error("task panicked", zap.Uint64("task", t.ID()), zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
		}
	}()
	t.Run()
}
