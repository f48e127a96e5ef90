package research

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"context"

	"github.com/Tetraslam/onemonth-dev/internal/logger"
	"github.com/Tetraslam/onemonth-dev/internal/utils"
)

// Client aggregates the external knowledge-source APIs used during
// curriculum research. Each source is keyed independently; a missing key
// disables that source (reported via the *Enabled methods) rather than
// erroring at call time.
type Client struct {
	log *logger.Logger

	firecrawlAPIKey  string
	perplexityAPIKey string
	exaAPIKey        string
	youtubeAPIKey    string
	wolframAppID     string
	githubToken      string

	httpClient *http.Client
}

func NewClient(log *logger.Logger) *Client {
	timeoutSec := utils.GetEnvAsInt("RESEARCH_TIMEOUT_SECONDS", 60, log)
	return &Client{
		log:              log.With("service", "ResearchClient"),
		firecrawlAPIKey:  strings.TrimSpace(utils.GetEnv("FIRECRAWL_API_KEY", "", log)),
		perplexityAPIKey: strings.TrimSpace(utils.GetEnv("PERPLEXITY_API_KEY", "", log)),
		exaAPIKey:        strings.TrimSpace(utils.GetEnv("EXA_API_KEY", "", log)),
		youtubeAPIKey:    strings.TrimSpace(utils.GetEnv("YOUTUBE_API_KEY", "", log)),
		wolframAppID:     strings.TrimSpace(utils.GetEnv("WOLFRAM_ALPHA_APP_ID", "", log)),
		githubToken:      strings.TrimSpace(utils.GetEnv("GITHUB_TOKEN", "", log)),
		httpClient:       &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

func (c *Client) WebSearchEnabled() bool    { return c.firecrawlAPIKey != "" }
func (c *Client) AnswerEngineEnabled() bool { return c.perplexityAPIKey != "" }
func (c *Client) DocumentsEnabled() bool    { return c.exaAPIKey != "" }
func (c *Client) VideosEnabled() bool       { return c.youtubeAPIKey != "" }
func (c *Client) ComputeEnabled() bool      { return c.wolframAppID != "" }

// WolframAppID exposes the credential for callers that pass it explicitly.
func (c *Client) WolframAppID() string { return c.wolframAppID }

func (c *Client) postJSON(ctx context.Context, url string, headers map[string]string, body any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.doJSON(req, out)
}

func (c *Client) getJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: http %d: %s", req.Method, req.URL.Host, resp.StatusCode, truncate(string(raw), 300))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
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
