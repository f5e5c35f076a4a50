package persistence

import (
	"fmt"

	"github.com/votecard/cardflow/model"
)

type StorageLayerError struct {
	Message string
}

func (e StorageLayerError) Error() string {
	return fmt.Sprintf("storage layer error %s", e.Message)
}

type NotFoundError struct {
	Kind string
	Key  string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Key)
}

// RunStore holds in-flight SubmissionRecords between transitions. Records are
// bounded by a ttl and deleted on a terminal state; nothing outlives the run.
type RunStore interface {
	Save(record *model.SubmissionRecord) error
	Get(runId string) (*model.SubmissionRecord, error)
	Delete(runId string) error
}
