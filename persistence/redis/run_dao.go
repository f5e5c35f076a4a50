package redis

import (
	"context"
	"time"

	rd "github.com/go-redis/redis/v9"
	"github.com/votecard/cardflow/logger"
	"github.com/votecard/cardflow/model"
	"github.com/votecard/cardflow/persistence"
	"github.com/votecard/cardflow/util"
	"go.uber.org/zap"
)

const RUN string = "RUN"

// redisRunStore keeps in-flight runs as ttl-bounded keys, so abandoned runs
// expire without a sweeper.
type redisRunStore struct {
	*baseDao
	recordEncDec util.EncoderDecoder[model.SubmissionRecord]
	ttl          time.Duration
}

var _ persistence.RunStore = new(redisRunStore)

func NewRedisRunStore(conf Config, ttl time.Duration) *redisRunStore {
	return &redisRunStore{
		baseDao:      newBaseDao(conf),
		recordEncDec: util.NewJsonEncoderDecoder[model.SubmissionRecord](),
		ttl:          ttl,
	}
}

func (s *redisRunStore) Save(record *model.SubmissionRecord) error {
	key := s.getNamespaceKey(RUN, record.Id)
	data, err := s.recordEncDec.Encode(*record)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if err := s.redisClient.Set(ctx, key, data, s.ttl).Err(); err != nil {
		logger.Error("error in saving submission record", zap.String("id", record.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (s *redisRunStore) Get(runId string) (*model.SubmissionRecord, error) {
	key := s.getNamespaceKey(RUN, runId)
	ctx := context.Background()
	val, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if err == rd.Nil {
			return nil, persistence.NotFoundError{Kind: "run", Key: runId}
		}
		logger.Error("error in getting submission record", zap.String("id", runId), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return s.recordEncDec.Decode([]byte(val))
}

func (s *redisRunStore) Delete(runId string) error {
	key := s.getNamespaceKey(RUN, runId)
	ctx := context.Background()
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		logger.Error("error in deleting submission record", zap.String("id", runId), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}
