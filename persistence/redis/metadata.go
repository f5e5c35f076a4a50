package redis

import (
	"context"

	rd "github.com/go-redis/redis/v9"
	"github.com/votecard/cardflow/logger"
	"github.com/votecard/cardflow/metadata"
	"github.com/votecard/cardflow/model"
	"github.com/votecard/cardflow/persistence"
	"github.com/votecard/cardflow/util"
	"go.uber.org/zap"
)

const WORKFLOW_DEF string = "WORKFLOW"

type redisMetadataStorage struct {
	*baseDao
	workflowEncDec util.EncoderDecoder[model.WorkflowDefinition]
}

var _ metadata.Storage = new(redisMetadataStorage)

func NewRedisMetadataStorage(conf Config) *redisMetadataStorage {
	return &redisMetadataStorage{
		baseDao:        newBaseDao(conf),
		workflowEncDec: util.NewJsonEncoderDecoder[model.WorkflowDefinition](),
	}
}

func (s *redisMetadataStorage) SaveWorkflowDefinition(def model.WorkflowDefinition) error {
	key := s.getNamespaceKey(WORKFLOW_DEF)
	data, err := s.workflowEncDec.Encode(def)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if err := s.redisClient.HSet(ctx, key, []string{def.Name, string(data)}).Err(); err != nil {
		logger.Error("error in saving workflow definition", zap.String("workflow", def.Name), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (s *redisMetadataStorage) DeleteWorkflowDefinition(name string) error {
	key := s.getNamespaceKey(WORKFLOW_DEF)
	ctx := context.Background()
	if err := s.redisClient.HDel(ctx, key, name).Err(); err != nil {
		logger.Error("error in deleting workflow definition", zap.String("workflow", name), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (s *redisMetadataStorage) GetWorkflowDefinition(name string) (*model.WorkflowDefinition, error) {
	key := s.getNamespaceKey(WORKFLOW_DEF)
	ctx := context.Background()
	defStr, err := s.redisClient.HGet(ctx, key, name).Result()
	if err != nil {
		if err == rd.Nil {
			return nil, persistence.NotFoundError{Kind: "workflow", Key: name}
		}
		logger.Error("error in getting workflow definition", zap.String("workflow", name), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return s.workflowEncDec.Decode([]byte(defStr))
}
