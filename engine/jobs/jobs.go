package jobs

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/aurora/engine/core"
)

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")

// Task is a unit of background work. Run executes on a worker
// goroutine; exactly one of OnComplete or OnFailure fires afterwards,
// also on the worker goroutine.
type Task struct {
	Run        func() error
	OnComplete func()
	OnFailure  func(error)
}

// Pool runs submitted tasks on a fixed set of worker goroutines.
type Pool struct {
	numWorkers int
	taskQueue  chan Task
	wg         sync.WaitGroup
}

func NewPool(numWorkers int, channelSize int) (*Pool, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	p := &Pool{
		numWorkers: numWorkers,
		taskQueue:  make(chan Task, channelSize),
	}

	p.start()

	return p, nil
}

func (p *Pool) start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for task := range p.taskQueue {
				if task.Run == nil {
					continue
				}
				if err := task.Run(); err != nil {
					core.LogError(err.Error())
					if task.OnFailure != nil {
						task.OnFailure(err)
					}
					continue
				}
				if task.OnComplete != nil {
					task.OnComplete()
				}
			}
		}()
	}
}

// Submit queues the task for execution, blocking while the queue is
// full. Submitting after Shutdown panics.
func (p *Pool) Submit(task Task) {
	p.taskQueue <- task
}

// TrySubmit queues the task if there is room, reporting whether the
// task was accepted.
func (p *Pool) TrySubmit(task Task) bool {
	select {
	case p.taskQueue <- task:
		return true
	default:
		return false
	}
}

// Shutdown stops accepting work and waits for queued tasks to drain.
func (p *Pool) Shutdown() error {
	close(p.taskQueue)
	p.wg.Wait()
	return nil
}
