package util

import (
	"sync"

	"github.com/votecard/cardflow/logger"
	"go.uber.org/zap"
)

type Task any

type Worker struct {
	name     string
	stop     chan struct{}
	wg       *sync.WaitGroup
	handler  func(Task) error
	taskChan chan Task
}

func NewWorker(name string, wg *sync.WaitGroup, handler func(Task) error, capacity int) *Worker {
	return &Worker{
		name:     name,
		wg:       wg,
		handler:  handler,
		stop:     make(chan struct{}),
		taskChan: make(chan Task, capacity),
	}
}

func (w *Worker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case task := <-w.taskChan:
				if err := w.handler(task); err != nil {
					logger.Error("error in executing task in worker", zap.String("worker", w.name), zap.Error(err))
				}
			case <-w.stop:
				logger.Info("stopping worker", zap.String("worker", w.name))
				return
			}
		}
	}()
}

// Sender returns the channel tasks are submitted on. A send blocks once the
// worker's buffer is full.
func (w *Worker) Sender() chan<- Task {
	return w.taskChan
}

func (w *Worker) Stop() {
	w.stop <- struct{}{}
}
