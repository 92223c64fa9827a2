package config

import (
	"fmt"
	"os"
	"time"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	folderEnvVar  = "FOLDER"
	logLevelVar   = "LOG_LEVEL"
	backendURLVar = "BACKEND_URL"
	timeoutVar    = "BACKEND_TIMEOUT"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "College Portal")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

type Backend struct{}

var _ BackendConfig = Backend{}

// GetBackendURL returns the REST API root, e.g. "http://127.0.0.1:8000/api"
func (Backend) GetBackendURL() string {
	return GetEnv(backendURLVar, "http://127.0.0.1:8000/api")
}

func (Backend) GetBackendTimeout() time.Duration {
	d, err := time.ParseDuration(GetEnv(timeoutVar, "10s"))
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
