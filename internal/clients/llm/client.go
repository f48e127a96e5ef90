package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Tetraslam/onemonth-dev/internal/logger"
	"github.com/Tetraslam/onemonth-dev/internal/utils"
)

// Message is one chat turn sent to the completion endpoint.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client talks to an OpenAI-compatible chat completions endpoint.
//
// Complete never returns an error: failures are folded into the returned
// string as a JSON error sentinel so downstream repair always has text to
// work with. StreamChat reports errors normally since its consumer is a
// live connection, not the validation cascade.
type Client interface {
	Complete(ctx context.Context, system string, user string, jsonMode bool) string
	StreamChat(ctx context.Context, system string, user string, onDelta func(delta string)) (string, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	apiKey := strings.TrimSpace(utils.GetEnv("GEMINI_API_KEY", "", log))
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}

	baseURL := strings.TrimSpace(utils.GetEnv("LLM_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai", log))
	baseURL = strings.TrimRight(baseURL, "/")

	model := strings.TrimSpace(utils.GetEnv("LLM_MODEL", "gemini-2.5-pro", log))

	// Curriculum generations can take a very long time; the timeout bounds
	// the whole request including body read.
	timeoutSec := utils.GetEnvAsInt("LLM_TIMEOUT_SECONDS", 1800, log)

	return &client{
		log:        log.With("service", "LLMClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

type chatCompletionRequest struct {
	Model          string         `json:"model"`
	Messages       []Message      `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
	Stream         bool           `json:"stream,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type chatCompletionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// errorSentinel wraps a failure message as a JSON string payload. The
// validation cascade parses it, finds no curriculum keys, and fails cleanly.
func errorSentinel(msg string) string {
	b, _ := json.Marshal(msg)
	return fmt.Sprintf(`{ "error": %s }`, string(b))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (c *client) Complete(ctx context.Context, system string, user string, jsonMode bool) string {
	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.6,
		MaxTokens:   50000,
	}
	if jsonMode {
		reqBody.ResponseFormat = map[string]any{"type": "json_object"}
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return errorSentinel(fmt.Sprintf("Exception during LLM call: %s", err.Error()))
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", &buf)
	if err != nil {
		return errorSentinel(fmt.Sprintf("Exception during LLM call: %s", err.Error()))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errorSentinel(fmt.Sprintf("Exception during LLM call: %s", err.Error()))
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return errorSentinel(fmt.Sprintf("Exception during LLM call: %s", readErr.Error()))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Error("LLM completion request failed", "status", resp.StatusCode, "body", truncate(string(raw), 500))
		return errorSentinel(fmt.Sprintf("Failed to generate completion. Status: %d. Details: %s", resp.StatusCode, truncate(string(raw), 500)))
	}

	var out chatCompletionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return errorSentinel(fmt.Sprintf("Exception during LLM call: %s", err.Error()))
	}
	if len(out.Choices) == 0 {
		return errorSentinel("Empty completion response")
	}
	return out.Choices[0].Message.Content
}

// StreamChat streams content deltas from the completion endpoint. Each SSE
// line has an optional "data: " prefix; "[DONE]" terminates the stream and
// malformed chunk lines are skipped. Deltas are forwarded in delivery order
// and accumulated into the returned text.
func (c *client) StreamChat(ctx context.Context, system string, user string, onDelta func(delta string)) (string, error) {
	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.6,
		Stream:      true,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("llm stream http %d: %s", resp.StatusCode, truncate(string(raw), 500))
	}

	var full strings.Builder
	err = readChunkLines(resp.Body, func(line string) bool {
		if line == "[DONE]" {
			return false
		}
		var chunk chatCompletionChunk
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			return true
		}
		for _, choice := range chunk.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			full.WriteString(choice.Delta.Content)
			if onDelta != nil {
				onDelta(choice.Delta.Content)
			}
		}
		return true
	})
	if err != nil {
		return "", err
	}
	return full.String(), nil
}

// readChunkLines feeds each non-empty stream line to onLine with any
// "data: " prefix stripped. onLine returns false to stop iteration.
func readChunkLines(r io.Reader, onLine func(line string) bool) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				line = strings.TrimSpace(line)
				if line != "" {
					onLine(strings.TrimPrefix(line, "data: "))
				}
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		line = strings.TrimPrefix(line, "data: ")
		if !onLine(line) {
			return nil
		}
	}
}
