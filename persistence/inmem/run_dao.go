package inmem

import (
	"sync"
	"time"

	"github.com/votecard/cardflow/logger"
	"github.com/votecard/cardflow/model"
	"github.com/votecard/cardflow/persistence"
	"github.com/votecard/cardflow/util"
	"go.uber.org/zap"
)

type runEntry struct {
	data      []byte
	expiresAt time.Time
}

// inmemRunStore keeps in-flight runs in memory. Records round-trip through
// the json codec so callers never share maps with stored entries. A tick
// worker sweeps expired entries so abandoned runs do not accumulate.
type inmemRunStore struct {
	mu           sync.RWMutex
	runs         map[string]runEntry
	recordEncDec util.EncoderDecoder[model.SubmissionRecord]
	ttl          time.Duration
	sweeper      *util.TickWorker
}

var _ persistence.RunStore = new(inmemRunStore)

func NewInmemRunStore(ttl time.Duration, wg *sync.WaitGroup) *inmemRunStore {
	s := &inmemRunStore{
		runs:         make(map[string]runEntry),
		recordEncDec: util.NewJsonEncoderDecoder[model.SubmissionRecord](),
		ttl:          ttl,
	}
	s.sweeper = util.NewTickWorker("run-expiry", time.Minute, s.sweep, wg)
	return s
}

func (s *inmemRunStore) Start() {
	s.sweeper.Start()
}

func (s *inmemRunStore) Stop() {
	s.sweeper.Stop()
}

func (s *inmemRunStore) Save(record *model.SubmissionRecord) error {
	data, err := s.recordEncDec.Encode(*record)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[record.Id] = runEntry{
		data:      data,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *inmemRunStore) Get(runId string) (*model.SubmissionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.runs[runId]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, persistence.NotFoundError{Kind: "run", Key: runId}
	}
	return s.recordEncDec.Decode(entry.data)
}

func (s *inmemRunStore) Delete(runId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, runId)
	return nil
}

func (s *inmemRunStore) sweep() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.runs {
		if now.After(entry.expiresAt) {
			logger.Debug("expiring abandoned run", zap.String("id", id))
			delete(s.runs, id)
		}
	}
}
