package service

import (
	"github.com/google/uuid"
	"github.com/votecard/cardflow/analytics"
	"github.com/votecard/cardflow/cache"
	"github.com/votecard/cardflow/flow"
	"github.com/votecard/cardflow/logger"
	"github.com/votecard/cardflow/metadata"
	"github.com/votecard/cardflow/model"
	"github.com/votecard/cardflow/persistence"
	"go.uber.org/zap"
)

// SubmissionService correlates http calls to workflow runs: it loads the
// record, drives one machine transition and stores the result. Records of
// terminal runs are deleted, making terminal states absorbing across calls.
type SubmissionService struct {
	metadataStorage metadata.Storage
	definitionCache *cache.DefinitionCache
	runs            persistence.RunStore
	dispatcher      flow.VerificationDispatcher
	collector       *analytics.Collector
}

func NewSubmissionService(metadataStorage metadata.Storage, runs persistence.RunStore, dispatcher flow.VerificationDispatcher, collector *analytics.Collector) *SubmissionService {
	return &SubmissionService{
		metadataStorage: metadataStorage,
		definitionCache: cache.NewDefinitionCache(),
		runs:            runs,
		dispatcher:      dispatcher,
		collector:       collector,
	}
}

func (s *SubmissionService) CreateDefinition(def model.WorkflowDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if err := s.metadataStorage.SaveWorkflowDefinition(def); err != nil {
		return err
	}
	s.definitionCache.Invalidate(def.Name)
	return nil
}

func (s *SubmissionService) GetDefinition(name string) (*model.WorkflowDefinition, error) {
	if def, ok := s.definitionCache.Get(name); ok {
		return def, nil
	}
	def, err := s.metadataStorage.GetWorkflowDefinition(name)
	if err != nil {
		return nil, err
	}
	s.definitionCache.Put(def)
	return def, nil
}

func (s *SubmissionService) DeleteDefinition(name string) error {
	if err := s.metadataStorage.DeleteWorkflowDefinition(name); err != nil {
		return err
	}
	s.definitionCache.Invalidate(name)
	return nil
}

func (s *SubmissionService) StartRun(workflow string) (*model.SubmissionRecord, error) {
	if _, err := s.GetDefinition(workflow); err != nil {
		return nil, err
	}
	record := model.NewSubmissionRecord(uuid.New().String(), workflow)
	if err := s.runs.Save(record); err != nil {
		return nil, err
	}
	logger.Info("starting workflow run", zap.String("workflow", workflow), zap.String("id", record.Id))
	return record, nil
}

func (s *SubmissionService) Advance(runId string, values map[string]any) (*model.SubmissionRecord, error) {
	record, def, err := s.load(runId)
	if err != nil {
		return nil, err
	}
	machine := flow.NewMachine(def, record, s.dispatcher)
	if err := machine.Advance(values); err != nil {
		return nil, err
	}
	if err := s.runs.Save(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *SubmissionService) Back(runId string) (*model.SubmissionRecord, error) {
	record, def, err := s.load(runId)
	if err != nil {
		return nil, err
	}
	machine := flow.NewMachine(def, record, s.dispatcher)
	if err := machine.Back(); err != nil {
		return nil, err
	}
	if err := s.runs.Save(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *SubmissionService) Submit(runId string, values map[string]any) (*model.WorkflowResult, error) {
	record, def, err := s.load(runId)
	if err != nil {
		return nil, err
	}
	predicates, err := flow.PredicatesFor(def)
	if err != nil {
		return nil, err
	}
	machine := flow.NewMachine(def, record, s.dispatcher, predicates...)
	result, err := machine.Submit(values)
	if err != nil {
		return nil, err
	}
	if err := s.runs.Delete(runId); err != nil {
		logger.Error("error deleting terminal run", zap.String("id", runId), zap.Error(err))
	}
	if s.collector != nil {
		s.collector.RecordOutcome(def.Name, runId, result)
	}
	return result, nil
}

func (s *SubmissionService) load(runId string) (*model.SubmissionRecord, *model.WorkflowDefinition, error) {
	record, err := s.runs.Get(runId)
	if err != nil {
		return nil, nil, err
	}
	def, err := s.GetDefinition(record.Workflow)
	if err != nil {
		return nil, nil, err
	}
	return record, def, nil
}
