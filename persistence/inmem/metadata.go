package inmem

import (
	"sync"

	"github.com/votecard/cardflow/metadata"
	"github.com/votecard/cardflow/model"
	"github.com/votecard/cardflow/persistence"
)

type inmemMetadataStorage struct {
	mu          sync.RWMutex
	definitions map[string]model.WorkflowDefinition
}

var _ metadata.Storage = new(inmemMetadataStorage)

func NewInmemMetadataStorage() *inmemMetadataStorage {
	return &inmemMetadataStorage{
		definitions: make(map[string]model.WorkflowDefinition),
	}
}

func (s *inmemMetadataStorage) SaveWorkflowDefinition(def model.WorkflowDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.definitions[def.Name] = def
	return nil
}

func (s *inmemMetadataStorage) DeleteWorkflowDefinition(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.definitions, name)
	return nil
}

func (s *inmemMetadataStorage) GetWorkflowDefinition(name string) (*model.WorkflowDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.definitions[name]
	if !ok {
		return nil, persistence.NotFoundError{Kind: "workflow", Key: name}
	}
	return &def, nil
}
