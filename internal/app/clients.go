package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/Tetraslam/onemonth-dev/internal/clients/llm"
	"github.com/Tetraslam/onemonth-dev/internal/clients/redis"
	"github.com/Tetraslam/onemonth-dev/internal/clients/research"
	"github.com/Tetraslam/onemonth-dev/internal/logger"
)

type Clients struct {
	LLM      llm.Client
	Research *research.Client
	SSEBus   redis.SSEBus
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis is optional; without it SSE stays single-instance.
	var bus redis.SSEBus
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		b, err := redis.NewSSEBus(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis SSE bus: %w", err)
		}
		bus = b
	}

	llmClient, err := llm.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init llm client: %w", err)
	}

	researchClient := research.NewClient(log)

	return Clients{
		LLM:      llmClient,
		Research: researchClient,
		SSEBus:   bus,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.SSEBus != nil {
		_ = c.SSEBus.Close()
	}
}
