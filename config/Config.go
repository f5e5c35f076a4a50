package config

type StorageType string

const STORAGE_TYPE_REDIS StorageType = "redis"
const STORAGE_TYPE_INMEM StorageType = "memory"

type VerifierType string

const VERIFIER_TYPE_REMOTE VerifierType = "remote"
const VERIFIER_TYPE_HEURISTIC VerifierType = "heuristic"

type Config struct {
	RedisConfig          RedisStorageConfig
	HttpPort             int
	StorageType          StorageType
	VerifierType         VerifierType
	FraudServiceUrl      string
	LegitimacyServiceUrl string
	VerifyTimeoutSeconds int
	VerifierCapacity     int
	RunTTLSeconds        int
	AnalyticsFile        string
}

type RedisStorageConfig struct {
	Addrs     []string
	Namespace string
}
