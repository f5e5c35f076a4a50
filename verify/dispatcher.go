package verify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/votecard/cardflow/logger"
	"github.com/votecard/cardflow/model"
	"github.com/votecard/cardflow/util"
	"go.uber.org/zap"
)

// Recorder receives verification verdicts for audit. Verdicts are advisory:
// they are recorded and logged but never alter the workflow outcome.
type Recorder interface {
	RecordVerification(workflow string, runId string, service string, result model.VerificationResult)
}

type verificationTask struct {
	workflow string
	runId    string
	spec     *model.VerificationSpec
	record   map[string]any
}

// Dispatcher runs verification calls fire-and-forget on a bounded worker.
type Dispatcher struct {
	registry *Registry
	recorder Recorder
	timeout  time.Duration
	worker   *util.Worker
}

func NewDispatcher(registry *Registry, recorder Recorder, timeout time.Duration, capacity int, wg *sync.WaitGroup) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		recorder: recorder,
		timeout:  timeout,
	}
	d.worker = util.NewWorker("verification", wg, d.handle, capacity)
	return d
}

func (d *Dispatcher) Start() {
	d.worker.Start()
}

func (d *Dispatcher) Stop() {
	d.worker.Stop()
}

// Dispatch queues a verification call. When the worker is saturated the call
// is dropped rather than blocking the submitting run.
func (d *Dispatcher) Dispatch(workflow string, runId string, spec *model.VerificationSpec, record map[string]any) {
	task := verificationTask{
		workflow: workflow,
		runId:    runId,
		spec:     spec,
		record:   record,
	}
	select {
	case d.worker.Sender() <- task:
	default:
		logger.Error("verification worker saturated, dropping call", zap.String("workflow", workflow), zap.String("id", runId))
	}
}

func (d *Dispatcher) handle(t util.Task) error {
	task, ok := t.(verificationTask)
	if !ok {
		return fmt.Errorf("unexpected task type %T", t)
	}
	verifier, ok := d.registry.Get(task.spec.Service)
	if !ok {
		return fmt.Errorf("no verifier registered for service %s", task.spec.Service)
	}
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	result := verifier.Verify(ctx, task.spec, task.record)
	logger.Info("verification completed",
		zap.String("workflow", task.workflow),
		zap.String("id", task.runId),
		zap.String("service", task.spec.Service),
		zap.Bool("verdict", result.Verdict),
		zap.Float64("score", result.Score))
	if d.recorder != nil {
		d.recorder.RecordVerification(task.workflow, task.runId, task.spec.Service, result)
	}
	return nil
}
