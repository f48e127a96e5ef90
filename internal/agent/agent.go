package agent

import (
	"context"

	"github.com/Tetraslam/onemonth-dev/internal/clients/llm"
	"github.com/Tetraslam/onemonth-dev/internal/logger"
)

// PipelineContext is the per-invocation state bag threaded through the
// pipeline stages. It is created per run and discarded afterwards; nothing
// in it is shared across invocations.
type PipelineContext struct {
	RawQuery     string
	Intent       Intent
	ToolsNeeded  []ToolName
	ToolsOutput  []ToolResult
	FinalText    string
	Placeholders PlaceholderMap
}

// Agent chains intent classification, tool selection and execution,
// research formatting, prompt assembly and LLM completion into one run.
type Agent struct {
	llm      llm.Client
	executor *Executor
	log      *logger.Logger
}

func NewAgent(llmClient llm.Client, researchClient ResearchClient, log *logger.Logger) *Agent {
	return &Agent{
		llm:      llmClient,
		executor: NewExecutor(researchClient, log),
		log:      log.With("service", "Agent"),
	}
}

func (a *Agent) prepare(ctx context.Context, query string, hooks *ToolHooks) (*PipelineContext, Prompt) {
	pc := &PipelineContext{RawQuery: query}
	pc.Intent = ClassifyIntent(query)
	pc.ToolsNeeded = SelectTools(pc.Intent, query)

	a.log.Info("Pipeline prepared", "intent", string(pc.Intent), "tools", len(pc.ToolsNeeded))

	pc.ToolsOutput = a.executor.Execute(ctx, pc.ToolsNeeded, query, hooks)
	researchText, placeholders := FormatResearch(pc.ToolsOutput)
	pc.Placeholders = placeholders

	return pc, AssemblePrompt(pc.Intent, query, researchText)
}

// Run executes the full pipeline non-streaming. The returned FinalText is
// always set: completion failures surface as an error-sentinel string so
// the validation cascade downstream still has text to work with.
func (a *Agent) Run(ctx context.Context, query string, hooks *ToolHooks) *PipelineContext {
	pc, prompt := a.prepare(ctx, query, hooks)
	jsonMode := pc.Intent == IntentCreateCurriculum || pc.Intent == IntentRegenerateDay
	pc.FinalText = a.llm.Complete(ctx, prompt.System, prompt.User, jsonMode)
	return pc
}

// RunStream executes the full pipeline streaming completion deltas to
// onDelta as they arrive. FinalText accumulates the full response.
func (a *Agent) RunStream(ctx context.Context, query string, onDelta func(delta string), hooks *ToolHooks) (*PipelineContext, error) {
	pc, prompt := a.prepare(ctx, query, hooks)
	full, err := a.llm.StreamChat(ctx, prompt.System, prompt.User, onDelta)
	if err != nil {
		return pc, err
	}
	pc.FinalText = full
	return pc, nil
}
