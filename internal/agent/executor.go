package agent

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Tetraslam/onemonth-dev/internal/clients/research"
	"github.com/Tetraslam/onemonth-dev/internal/logger"
)

// ToolResult carries either a tool-specific payload or a captured error
// message, never both.
type ToolResult struct {
	Tool   ToolName
	Result any
	Err    string
}

// ToolHooks receives out-of-band tool lifecycle notifications, used to
// surface progress markers on a streaming connection. Either field may be
// nil.
type ToolHooks struct {
	OnToolStart func(tool ToolName, input string)
	OnToolEnd   func(tool ToolName)
}

// ResearchClient is the slice of the research client the executor
// dispatches on. *research.Client satisfies it.
type ResearchClient interface {
	WebSearchEnabled() bool
	AnswerEngineEnabled() bool
	DocumentsEnabled() bool
	VideosEnabled() bool
	ComputeEnabled() bool
	WolframAppID() string

	SearchWeb(ctx context.Context, query string) ([]research.WebResult, error)
	AskAnswerEngine(ctx context.Context, query string) ([]research.Answer, error)
	SearchDocuments(ctx context.Context, query string) ([]research.DocumentResult, error)
	SearchVideos(ctx context.Context, query string) ([]research.Video, error)
	LookupEncyclopedia(ctx context.Context, query string) (*research.EncyclopediaPage, error)
	SearchRepos(ctx context.Context, query string) ([]research.Repo, error)
	SearchPapers(ctx context.Context, query string) ([]research.Paper, error)
	Compute(ctx context.Context, query string, appID string) (*research.ComputeResult, error)
}

// Executor fans research tools out over the configured sources.
type Executor struct {
	research ResearchClient
	log      *logger.Logger
}

func NewExecutor(researchClient ResearchClient, log *logger.Logger) *Executor {
	return &Executor{
		research: researchClient,
		log:      log.With("component", "ToolExecutor"),
	}
}

// enabled reports whether the tool's credential is configured. A disabled
// tool is skipped without emitting a result; missing configuration is a
// deployment choice, not an error.
func (e *Executor) enabled(tool ToolName) bool {
	switch tool {
	case ToolResearchSearch:
		return e.research.WebSearchEnabled()
	case ToolVideoSearch:
		return e.research.VideosEnabled()
	case ToolQASearch:
		return e.research.AnswerEngineEnabled()
	case ToolDocumentSearch:
		return e.research.DocumentsEnabled()
	case ToolQuantitativeQuery:
		return e.research.ComputeEnabled()
	case ToolEncyclopediaSearch, ToolCodeRepoSearch, ToolPaperSearch:
		return true
	}
	return false
}

func (e *Executor) invoke(ctx context.Context, tool ToolName, query string) (any, error) {
	switch tool {
	case ToolResearchSearch:
		return e.research.SearchWeb(ctx, query)
	case ToolVideoSearch:
		return e.research.SearchVideos(ctx, query)
	case ToolQASearch:
		return e.research.AskAnswerEngine(ctx, query)
	case ToolEncyclopediaSearch:
		return e.research.LookupEncyclopedia(ctx, query)
	case ToolCodeRepoSearch:
		return e.research.SearchRepos(ctx, query)
	case ToolPaperSearch:
		return e.research.SearchPapers(ctx, query)
	case ToolQuantitativeQuery:
		return e.research.Compute(ctx, query, e.research.WolframAppID())
	case ToolDocumentSearch:
		return e.research.SearchDocuments(ctx, query)
	}
	return nil, fmt.Errorf("unknown tool: %s", tool)
}

// Execute runs the given tools against the query. Tools are independent, so
// they run concurrently, but results keep the input order. A failing tool
// never aborts the batch: its panic or error is captured into the result.
func (e *Executor) Execute(ctx context.Context, tools []ToolName, query string, hooks *ToolHooks) []ToolResult {
	slots := make([]*ToolResult, len(tools))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, tool := range tools {
		if !e.enabled(tool) {
			e.log.Debug("Skipping tool, credential not configured", "tool", string(tool))
			continue
		}
		i, tool := i, tool
		g.Go(func() error {
			if hooks != nil && hooks.OnToolStart != nil {
				hooks.OnToolStart(tool, truncateInput(query, 100))
			}
			defer func() {
				if hooks != nil && hooks.OnToolEnd != nil {
					hooks.OnToolEnd(tool)
				}
				if r := recover(); r != nil {
					e.log.Error("Tool panicked", "tool", string(tool), "panic", fmt.Sprint(r))
					slots[i] = &ToolResult{Tool: tool, Err: fmt.Sprintf("panic: %v", r)}
				}
			}()

			result, err := e.invoke(gctx, tool, query)
			if err != nil {
				e.log.Warn("Tool failed", "tool", string(tool), "error", err)
				slots[i] = &ToolResult{Tool: tool, Err: err.Error()}
				return nil
			}
			slots[i] = &ToolResult{Tool: tool, Result: result}
			return nil
		})
	}
	_ = g.Wait()

	results := make([]ToolResult, 0, len(tools))
	for _, slot := range slots {
		if slot != nil {
			results = append(results, *slot)
		}
	}
	return results
}

func truncateInput(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
