package update

import (
	"os"
	"strings"
)

type RuntimeConfig struct {
	DBPath    string
	LogPath   string
	UserLogin string
	SeedDemo  bool
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:    "taskdash.db",
		LogPath:   "taskdash.log",
		// The default login must name a user the demo seed creates, or
		// a first run with defaults dies resolving the acting user.
		UserLogin: "apetrova",
		SeedDemo:  true,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TASKDASH_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TASKDASH_LOG_PATH"); ok {
		cfg.LogPath = v
	}
	if v, ok := getEnvString("TASKDASH_USER_LOGIN"); ok {
		cfg.UserLogin = v
	}
	if v, ok := getEnvBool("TASKDASH_SEED_DEMO"); ok {
		cfg.SeedDemo = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
