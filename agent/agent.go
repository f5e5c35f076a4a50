package agent

import (
	"sync"
	"time"

	"github.com/votecard/cardflow/analytics"
	"github.com/votecard/cardflow/config"
	"github.com/votecard/cardflow/logger"
	"github.com/votecard/cardflow/metadata"
	"github.com/votecard/cardflow/persistence"
	"github.com/votecard/cardflow/persistence/inmem"
	rd "github.com/votecard/cardflow/persistence/redis"
	"github.com/votecard/cardflow/rest"
	"github.com/votecard/cardflow/seed"
	"github.com/votecard/cardflow/service"
	"github.com/votecard/cardflow/verify"
)

type lifecycle interface {
	Start()
	Stop()
}

type Agent struct {
	Config            config.Config
	metadataStorage   metadata.Storage
	runStore          persistence.RunStore
	runSweeper        lifecycle
	registry          *verify.Registry
	dispatcher        *verify.Dispatcher
	collector         *analytics.Collector
	submissionService *service.SubmissionService
	httpServer        *rest.Server
	shutdown          bool
	shutdowns         chan struct{}
	shutdownLock      sync.Mutex
	wg                sync.WaitGroup
}

func New(config config.Config) (*Agent, error) {
	a := &Agent{
		Config:    config,
		shutdowns: make(chan struct{}),
	}
	setup := []func() error{
		a.setupStorage,
		a.setupCollector,
		a.setupVerifiers,
		a.setupDispatcher,
		a.setupSubmissionService,
		a.setupHttpServer,
		a.seedDefinitions,
	}
	for _, fn := range setup {
		if err := fn(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Agent) setupStorage() error {
	runTTL := time.Duration(a.Config.RunTTLSeconds) * time.Second
	switch a.Config.StorageType {
	case config.STORAGE_TYPE_REDIS:
		rdConf := rd.Config{
			Addrs:     a.Config.RedisConfig.Addrs,
			Namespace: a.Config.RedisConfig.Namespace,
		}
		a.metadataStorage = rd.NewRedisMetadataStorage(rdConf)
		a.runStore = rd.NewRedisRunStore(rdConf, runTTL)
	default:
		a.metadataStorage = inmem.NewInmemMetadataStorage()
		runStore := inmem.NewInmemRunStore(runTTL, &a.wg)
		a.runStore = runStore
		a.runSweeper = runStore
	}
	return nil
}

func (a *Agent) setupCollector() error {
	collector, err := analytics.NewCollector(a.Config.AnalyticsFile)
	if err != nil {
		return err
	}
	a.collector = collector
	return nil
}

func (a *Agent) setupVerifiers() error {
	a.registry = verify.NewRegistry()
	timeout := time.Duration(a.Config.VerifyTimeoutSeconds) * time.Second
	switch a.Config.VerifierType {
	case config.VERIFIER_TYPE_REMOTE:
		a.registry.Register(verify.SERVICE_FRAUD, verify.NewRemoteVerifier(a.Config.FraudServiceUrl, timeout, verify.FraudContract()))
		a.registry.Register(verify.SERVICE_LEGITIMACY, verify.NewRemoteVerifier(a.Config.LegitimacyServiceUrl, timeout, verify.LegitimacyContract()))
	default:
		heuristic := verify.NewHeuristicVerifier()
		a.registry.Register(verify.SERVICE_FRAUD, heuristic)
		a.registry.Register(verify.SERVICE_LEGITIMACY, heuristic)
	}
	return nil
}

func (a *Agent) setupDispatcher() error {
	timeout := time.Duration(a.Config.VerifyTimeoutSeconds) * time.Second
	a.dispatcher = verify.NewDispatcher(a.registry, a.collector, timeout, a.Config.VerifierCapacity, &a.wg)
	return nil
}

func (a *Agent) setupSubmissionService() error {
	a.submissionService = service.NewSubmissionService(a.metadataStorage, a.runStore, a.dispatcher, a.collector)
	return nil
}

func (a *Agent) setupHttpServer() error {
	var err error
	a.httpServer, err = rest.NewServer(a.Config.HttpPort, a.submissionService)
	return err
}

func (a *Agent) seedDefinitions() error {
	return seed.Register(a.metadataStorage)
}

func (a *Agent) Start() error {
	a.dispatcher.Start()
	if a.runSweeper != nil {
		a.runSweeper.Start()
	}
	go func() {
		if err := a.httpServer.Start(); err != nil {
			_ = a.Shutdown()
		}
	}()
	return nil
}

func (a *Agent) Shutdown() error {
	logger.Info("shutting down server")
	a.shutdownLock.Lock()
	defer a.shutdownLock.Unlock()
	if a.shutdown {
		return nil
	}
	a.shutdown = true
	close(a.shutdowns)

	shutdown := []func() error{
		a.httpServer.Stop,
		func() error {
			a.dispatcher.Stop()
			return nil
		},
		func() error {
			if a.runSweeper != nil {
				a.runSweeper.Stop()
			}
			return nil
		},
	}
	for _, fn := range shutdown {
		if err := fn(); err != nil {
			return err
		}
	}
	logger.Info("waiting for all services to shutdown...")
	a.wg.Wait()
	return nil
}
