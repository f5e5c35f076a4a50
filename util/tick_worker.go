package util

import (
	"sync"
	"time"

	"github.com/votecard/cardflow/logger"
	"go.uber.org/zap"
)

type TickWorker struct {
	name         string
	tickInterval time.Duration
	stop         chan struct{}
	wg           *sync.WaitGroup
	fn           func()
}

func NewTickWorker(name string, interval time.Duration, fn func(), wg *sync.WaitGroup) *TickWorker {
	return &TickWorker{
		name:         name,
		tickInterval: interval,
		stop:         make(chan struct{}),
		wg:           wg,
		fn:           fn,
	}
}

func (tw *TickWorker) Start() {
	ticker := time.NewTicker(tw.tickInterval)
	tw.wg.Add(1)
	go func() {
		defer tw.wg.Done()
		for {
			select {
			case <-ticker.C:
				tw.fn()
			case <-tw.stop:
				logger.Info("stopping tick worker", zap.String("worker", tw.name))
				ticker.Stop()
				return
			}
		}
	}()
	logger.Info("tick worker started", zap.String("worker", tw.name))
}

func (tw *TickWorker) Stop() {
	tw.stop <- struct{}{}
}
