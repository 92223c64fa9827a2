package config

import "path/filepath"

type StoreKind string

const (
	StoreFile  StoreKind = "file"
	StoreRedis StoreKind = "redis"
)

type StoreConfig interface {
	GetStoreKind() StoreKind
	GetSessionFile() string
	GetRedisAddr() string
	GetRedisKey() string
}

type Store struct{}

var _ StoreConfig = Store{}

func (Store) GetStoreKind() StoreKind {
	if GetEnv("SESSION_STORE", string(StoreFile)) == string(StoreRedis) {
		return StoreRedis
	}
	return StoreFile
}

// GetSessionFile defaults to <data folder>/session.json
func (Store) GetSessionFile() string {
	return GetEnv("SESSION_FILE", filepath.Join(EnvVars{}.GetDataFolder(), "session.json"))
}

func (Store) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (Store) GetRedisKey() string {
	return GetEnv("REDIS_SESSION_KEY", "college-portal:session")
}
