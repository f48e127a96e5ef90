package utils

import (
	"os"
	"strconv"
	"strings"

	"github.com/Tetraslam/onemonth-dev/internal/logger"
)

func GetEnv(key, fallback string, log *logger.Logger) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		if log != nil {
			log.Debug("Env var not set, using fallback", "key", key, "fallback", fallback)
		}
		return fallback
	}
	return v
}

func GetEnvAsInt(key string, fallback int, log *logger.Logger) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		if log != nil {
			log.Warn("Env var is not an integer, using fallback", "key", key, "value", v, "fallback", fallback)
		}
		return fallback
	}
	return n
}
