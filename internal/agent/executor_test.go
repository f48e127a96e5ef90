package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Tetraslam/onemonth-dev/internal/clients/research"
	"github.com/Tetraslam/onemonth-dev/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestExecuteSkipsUnconfiguredTools(t *testing.T) {
	for _, key := range []string{"FIRECRAWL_API_KEY", "PERPLEXITY_API_KEY", "EXA_API_KEY", "YOUTUBE_API_KEY", "WOLFRAM_ALPHA_APP_ID"} {
		t.Setenv(key, "")
	}
	log := testLogger(t)
	executor := NewExecutor(research.NewClient(log), log)

	started := 0
	hooks := &ToolHooks{
		OnToolStart: func(tool ToolName, input string) { started++ },
	}

	// Every tool here needs a credential; with none configured the whole
	// batch is skipped silently, producing no results and no hook calls.
	tools := []ToolName{ToolResearchSearch, ToolVideoSearch, ToolQASearch, ToolDocumentSearch, ToolQuantitativeQuery}
	results := executor.Execute(context.Background(), tools, "learn go", hooks)

	if len(results) != 0 {
		t.Fatalf("expected no results for unconfigured tools, got %v", results)
	}
	if started != 0 {
		t.Fatalf("hooks fired for skipped tools: %d", started)
	}
}

// failingResearchClient reports every tool configured and fails every call.
type failingResearchClient struct{}

func (failingResearchClient) WebSearchEnabled() bool    { return true }
func (failingResearchClient) AnswerEngineEnabled() bool { return true }
func (failingResearchClient) DocumentsEnabled() bool    { return true }
func (failingResearchClient) VideosEnabled() bool       { return true }
func (failingResearchClient) ComputeEnabled() bool      { return true }
func (failingResearchClient) WolframAppID() string      { return "test-app-id" }

func (failingResearchClient) SearchWeb(ctx context.Context, query string) ([]research.WebResult, error) {
	return nil, errors.New("web search down")
}
func (failingResearchClient) AskAnswerEngine(ctx context.Context, query string) ([]research.Answer, error) {
	return nil, errors.New("answer engine down")
}
func (failingResearchClient) SearchDocuments(ctx context.Context, query string) ([]research.DocumentResult, error) {
	return nil, errors.New("document search down")
}
func (failingResearchClient) SearchVideos(ctx context.Context, query string) ([]research.Video, error) {
	return nil, errors.New("video search down")
}
func (failingResearchClient) LookupEncyclopedia(ctx context.Context, query string) (*research.EncyclopediaPage, error) {
	return nil, errors.New("encyclopedia down")
}
func (failingResearchClient) SearchRepos(ctx context.Context, query string) ([]research.Repo, error) {
	return nil, errors.New("repo search down")
}
func (failingResearchClient) SearchPapers(ctx context.Context, query string) ([]research.Paper, error) {
	return nil, errors.New("paper search down")
}
func (failingResearchClient) Compute(ctx context.Context, query string, appID string) (*research.ComputeResult, error) {
	return nil, errors.New("compute down")
}

func TestExecuteAllFailuresKeepOrder(t *testing.T) {
	log := testLogger(t)
	executor := NewExecutor(failingResearchClient{}, log)

	tools := []ToolName{
		ToolResearchSearch,
		ToolVideoSearch,
		ToolQASearch,
		ToolEncyclopediaSearch,
		ToolCodeRepoSearch,
		ToolPaperSearch,
		ToolQuantitativeQuery,
		ToolDocumentSearch,
	}
	results := executor.Execute(context.Background(), tools, "learn go", nil)

	if len(results) != len(tools) {
		t.Fatalf("got %d results, want one per tool (%d)", len(results), len(tools))
	}
	for i, res := range results {
		if res.Tool != tools[i] {
			t.Errorf("result %d is for %s, want %s (order not preserved)", i, res.Tool, tools[i])
		}
		if res.Err == "" {
			t.Errorf("result %d (%s) has no error recorded", i, res.Tool)
		}
		if res.Result != nil {
			t.Errorf("result %d (%s) carries a payload alongside its error", i, res.Tool)
		}
	}
}

func TestTruncateInput(t *testing.T) {
	if got := truncateInput("short", 100); got != "short" {
		t.Fatalf("got %q", got)
	}
	long := make([]byte, 150)
	for i := range long {
		long[i] = 'a'
	}
	got := truncateInput(string(long), 100)
	if len(got) != 103 || got[100:] != "..." {
		t.Fatalf("truncation wrong: %q", got)
	}
}

func TestTruncateInputKeepsRunesIntact(t *testing.T) {
	s := strings.Repeat("日本語のテキスト", 20)
	got := truncateInput(s, 100)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if body := strings.TrimSuffix(got, "..."); utf8.RuneCountInString(body) != 100 {
		t.Fatalf("kept %d runes, want 100", utf8.RuneCountInString(body))
	}
}
