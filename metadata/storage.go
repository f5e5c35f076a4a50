package metadata

import "github.com/votecard/cardflow/model"

type Storage interface {
	SaveWorkflowDefinition(def model.WorkflowDefinition) error
	DeleteWorkflowDefinition(name string) error
	GetWorkflowDefinition(name string) (*model.WorkflowDefinition, error)
}
