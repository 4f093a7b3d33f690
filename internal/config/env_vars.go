package config

import (
	"os"
	"path/filepath"
)

const (
	appNameVar    = "APP_NAME"
	dataFolderVar = "DATA_FOLDER"
)

type EnvConfig interface {
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Task Assign")
}

// GetDataFolder returns the directory holding durable client state, such as
// the stored auth token. Defaults to a "taskassign" folder under the
// platform user-config directory.
func (EnvVars) GetDataFolder() string {
	if folder := os.Getenv(dataFolderVar); folder != "" {
		return folder
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(configDir, "taskassign")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
