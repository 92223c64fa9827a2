package config

import (
	"time"

	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	BackendConfig
	StoreConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetLogLevel() string
	GetEnv() string
}

type BackendConfig interface {
	GetBackendURL() string
	GetBackendTimeout() time.Duration
}

type mainConfig struct {
	EnvVars
	Backend
	Store
	Security
}

// New loads an optional .env file and returns the environment backed config.
// Values already present in the environment take precedence over the file.
func New(envFiles ...string) Config {
	_ = godotenv.Load(envFiles...)
	return mainConfig{}
}
