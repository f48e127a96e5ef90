package app

import (
	"strings"

	"github.com/Tetraslam/onemonth-dev/internal/logger"
	"github.com/Tetraslam/onemonth-dev/internal/utils"
)

type Config struct {
	ServiceName  string
	Environment  string
	Version      string
	AllowOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	rawOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", log)
	var origins []string
	for _, o := range strings.Split(rawOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return Config{
		ServiceName:  utils.GetEnv("SERVICE_NAME", "onemonth", log),
		Environment:  utils.GetEnv("ENVIRONMENT", "development", log),
		Version:      utils.GetEnv("SERVICE_VERSION", "dev", log),
		AllowOrigins: origins,
	}
}
