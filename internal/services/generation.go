package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Tetraslam/onemonth-dev/internal/agent"
	"github.com/Tetraslam/onemonth-dev/internal/clients/redis"
	"github.com/Tetraslam/onemonth-dev/internal/logger"
	"github.com/Tetraslam/onemonth-dev/internal/repos"
	"github.com/Tetraslam/onemonth-dev/internal/sse"
	"github.com/Tetraslam/onemonth-dev/internal/types"
	"github.com/Tetraslam/onemonth-dev/internal/validation"
)

// CreateCurriculumInput carries the caller-supplied curriculum parameters.
type CreateCurriculumInput struct {
	Title                 string `json:"title"`
	Description           string `json:"description"`
	LearningGoal          string `json:"learning_goal" binding:"required"`
	DifficultyLevel       string `json:"difficulty_level"`
	EstimatedDurationDays int    `json:"estimated_duration_days"`
	NumProjects           int    `json:"num_projects"`
	Prerequisites         string `json:"prerequisites"`
	DailyTimeMinutes      int    `json:"daily_time_commitment_minutes"`
	LearningStyle         string `json:"learning_style"`
	IsPublic              bool   `json:"is_public"`
}

type GenerationService interface {
	Enqueue(ctx context.Context, userID uuid.UUID, input CreateCurriculumInput) (*types.Curriculum, *types.GenerationRun, error)
	Retry(ctx context.Context, userID uuid.UUID, curriculumID uuid.UUID) (*types.GenerationRun, error)
	RegenerateDay(ctx context.Context, userID uuid.UUID, curriculumID uuid.UUID, dayID uuid.UUID, improvementPrompt string) (*types.CurriculumDay, error)
	Status(ctx context.Context, userID uuid.UUID, curriculumID uuid.UUID) (*types.Curriculum, *types.GenerationRun, error)
	StartWorker(ctx context.Context)
}

type generationService struct {
	db  *gorm.DB
	log *logger.Logger

	sseHub *sse.SSEHub
	sseBus redis.SSEBus

	curriculumRepo repos.CurriculumRepo
	dayRepo        repos.CurriculumDayRepo
	runRepo        repos.GenerationRunRepo

	agent     *agent.Agent
	validator *validation.Validator
}

func NewGenerationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	sseHub *sse.SSEHub,
	sseBus redis.SSEBus,
	curriculumRepo repos.CurriculumRepo,
	dayRepo repos.CurriculumDayRepo,
	runRepo repos.GenerationRunRepo,
	pipelineAgent *agent.Agent,
	validator *validation.Validator,
) GenerationService {
	return &generationService{
		db:             db,
		log:            baseLog.With("service", "GenerationService"),
		sseHub:         sseHub,
		sseBus:         sseBus,
		curriculumRepo: curriculumRepo,
		dayRepo:        dayRepo,
		runRepo:        runRepo,
		agent:          pipelineAgent,
		validator:      validator,
	}
}

func (gs *generationService) Enqueue(ctx context.Context, userID uuid.UUID, input CreateCurriculumInput) (*types.Curriculum, *types.GenerationRun, error) {
	if input.DifficultyLevel == "" {
		input.DifficultyLevel = "beginner"
	}
	if input.EstimatedDurationDays <= 0 {
		input.EstimatedDurationDays = 30
	}
	title := input.Title
	if title == "" {
		title = "Learning " + input.LearningGoal
	}
	description := input.Description
	if description == "" {
		description = input.LearningGoal
	}

	var curriculum *types.Curriculum
	var run *types.GenerationRun

	err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		curriculum = &types.Curriculum{
			ID:                    uuid.New(),
			UserID:                userID,
			Title:                 title,
			Description:           description,
			LearningGoal:          input.LearningGoal,
			DifficultyLevel:       input.DifficultyLevel,
			EstimatedDurationDays: input.EstimatedDurationDays,
			NumProjects:           input.NumProjects,
			GenerationStatus:      types.GenerationStatusGenerating,
			GenerationProgress:    "Starting curriculum generation...",
			IsPublic:              input.IsPublic,
			Metadata: datatypes.JSON(mustJSON(map[string]any{
				"prerequisites":                 input.Prerequisites,
				"daily_time_commitment_minutes": input.DailyTimeMinutes,
				"learning_style":                input.LearningStyle,
			})),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := gs.curriculumRepo.Create(ctx, tx, []*types.Curriculum{curriculum}); err != nil {
			return fmt.Errorf("create curriculum: %w", err)
		}

		run = &types.GenerationRun{
			ID:           uuid.New(),
			UserID:       userID,
			CurriculumID: curriculum.ID,
			Status:       types.RunStatusQueued,
			Stage:        types.RunStageResearch,
			Progress:     0,
			Metadata:     datatypes.JSON([]byte(`{}`)),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := gs.runRepo.Create(ctx, tx, []*types.GenerationRun{run}); err != nil {
			return fmt.Errorf("create generation run: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return curriculum, run, nil
}

// Retry enqueues a brand-new run for a failed curriculum on the same
// curriculum row so the UI updates in place. Failed runs themselves are
// never re-claimed.
func (gs *generationService) Retry(ctx context.Context, userID uuid.UUID, curriculumID uuid.UUID) (*types.GenerationRun, error) {
	curriculum, err := gs.curriculumRepo.GetByID(ctx, nil, curriculumID)
	if err != nil {
		return nil, err
	}
	if curriculum == nil || curriculum.UserID != userID {
		return nil, fmt.Errorf("curriculum not found")
	}
	if curriculum.GenerationStatus != types.GenerationStatusFailed {
		return nil, fmt.Errorf("curriculum is not in a failed state")
	}

	var run *types.GenerationRun
	err = gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := gs.curriculumRepo.UpdateFields(ctx, tx, curriculumID, map[string]any{
			"generation_status":   types.GenerationStatusGenerating,
			"generation_progress": "Restarting curriculum generation...",
		}); err != nil {
			return err
		}
		run = &types.GenerationRun{
			ID:           uuid.New(),
			UserID:       userID,
			CurriculumID: curriculumID,
			Status:       types.RunStatusQueued,
			Stage:        types.RunStageResearch,
			Metadata:     datatypes.JSON([]byte(`{}`)),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := gs.runRepo.Create(ctx, tx, []*types.GenerationRun{run}); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (gs *generationService) Status(ctx context.Context, userID uuid.UUID, curriculumID uuid.UUID) (*types.Curriculum, *types.GenerationRun, error) {
	curriculum, err := gs.curriculumRepo.GetByID(ctx, nil, curriculumID)
	if err != nil {
		return nil, nil, err
	}
	if curriculum == nil || (curriculum.UserID != userID && !curriculum.IsPublic) {
		return nil, nil, fmt.Errorf("curriculum not found")
	}
	run, err := gs.runRepo.GetLatestByCurriculumID(ctx, nil, curriculumID)
	if err != nil {
		return nil, nil, err
	}
	return curriculum, run, nil
}

// RegenerateDay reworks one existing day synchronously. The synthetic query
// embeds the regeneration marker phrase so the classifier routes it without
// research.
func (gs *generationService) RegenerateDay(ctx context.Context, userID uuid.UUID, curriculumID uuid.UUID, dayID uuid.UUID, improvementPrompt string) (*types.CurriculumDay, error) {
	curriculum, err := gs.curriculumRepo.GetByID(ctx, nil, curriculumID)
	if err != nil {
		return nil, err
	}
	if curriculum == nil || curriculum.UserID != userID {
		return nil, fmt.Errorf("curriculum not found")
	}
	day, err := gs.dayRepo.GetByID(ctx, nil, dayID)
	if err != nil {
		return nil, err
	}
	if day == nil || day.CurriculumID != curriculumID {
		return nil, fmt.Errorf("day not found")
	}

	var doc types.Document
	_ = json.Unmarshal(day.Content, &doc)

	query := fmt.Sprintf(`Please regenerate this curriculum day with the following improvements: %s

Current day data:
Day number: %d
Title: %s
Content summary: %s
Content: %s
Resources: %s

Keep the same day_number and the same JSON structure.`,
		improvementPrompt, day.DayNumber, day.Title, doc.PlainText(), string(day.Content), string(day.Resources))

	pc := gs.agent.Run(ctx, query, nil)
	draft := gs.validator.CleanAndValidateDay(pc.FinalText)
	if draft == nil {
		return nil, fmt.Errorf("failed to regenerate a valid day")
	}

	updates := map[string]any{
		"title":     draft.Title,
		"content":   datatypes.JSON(mustJSON(draft.Content)),
		"resources": datatypes.JSON(mustJSON(draft.Resources)),
	}
	if draft.EstimatedHours != nil {
		updates["estimated_hours"] = *draft.EstimatedHours
	}
	if err := gs.dayRepo.UpdateFields(ctx, nil, dayID, updates); err != nil {
		return nil, err
	}

	updated, err := gs.dayRepo.GetByID(ctx, nil, dayID)
	if err != nil {
		return nil, err
	}
	gs.broadcast(userID, sse.SSEEventDayUpdated, map[string]any{
		"curriculum_id": curriculumID,
		"day_id":        dayID,
	})
	return updated, nil
}

func (gs *generationService) StartWorker(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		// Runs include a long LLM call; only reclaim after the heartbeat
		// has been silent for a while.
		staleRunning := 10 * time.Minute

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run, err := gs.runRepo.ClaimNextRunnable(ctx, gs.db, staleRunning)
				if err != nil {
					gs.log.Warn("ClaimNextRunnable failed", "error", err)
					continue
				}
				if run == nil {
					continue
				}
				gs.processRun(ctx, run)
			}
		}
	}()
}

func (gs *generationService) processRun(ctx context.Context, run *types.GenerationRun) {
	userID := run.UserID
	runID := run.ID
	curriculumID := run.CurriculumID

	fail := func(stage string, err error) {
		now := time.Now()
		_ = gs.runRepo.UpdateFields(ctx, nil, runID, map[string]any{
			"status":        types.RunStatusFailed,
			"stage":         stage,
			"error":         err.Error(),
			"last_error_at": now,
			"locked_at":     nil,
		})
		_ = gs.curriculumRepo.UpdateFields(ctx, nil, curriculumID, map[string]any{
			"generation_status":   types.GenerationStatusFailed,
			"generation_progress": err.Error(),
		})
		gs.broadcast(userID, sse.SSEEventGenerationFailed, map[string]any{
			"curriculum_id": curriculumID,
			"run_id":        runID,
			"stage":         stage,
			"error":         err.Error(),
		})
	}

	progress := func(stage string, pct int, msg string) {
		now := time.Now()
		_ = gs.runRepo.UpdateFields(ctx, nil, runID, map[string]any{
			"stage":        stage,
			"progress":     pct,
			"heartbeat_at": now,
		})
		_ = gs.curriculumRepo.UpdateFields(ctx, nil, curriculumID, map[string]any{
			"generation_progress": msg,
		})
		gs.broadcast(userID, sse.SSEEventGenerationProgress, map[string]any{
			"curriculum_id": curriculumID,
			"run_id":        runID,
			"stage":         stage,
			"progress":      pct,
			"message":       msg,
		})
	}

	curriculum, err := gs.curriculumRepo.GetByID(ctx, nil, curriculumID)
	if err != nil {
		fail(types.RunStageResearch, fmt.Errorf("load curriculum: %w", err))
		return
	}
	if curriculum == nil {
		fail(types.RunStageResearch, fmt.Errorf("curriculum %s not found", curriculumID))
		return
	}

	progress(types.RunStageResearch, 10, "Researching your topic and gathering resources...")

	// The agent run holds one long LLM call; keep the heartbeat fresh so
	// the claim query does not hand this run to another worker.
	hbCtx, stopHeartbeat := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-hbCtx.Done():
				return
			case <-ticker.C:
				_ = gs.runRepo.Heartbeat(hbCtx, nil, runID)
			}
		}
	}()

	query := buildGenerationQuery(curriculum)
	pc := gs.agent.Run(ctx, query, &agent.ToolHooks{
		OnToolEnd: func(tool agent.ToolName) {
			progress(types.RunStageResearch, 25, fmt.Sprintf("Gathered %s results...", tool))
		},
	})
	stopHeartbeat()

	progress(types.RunStageValidate, 60, "Planning curriculum structure and daily topics...")

	draft := gs.validator.CleanAndValidate(pc.FinalText)
	if draft == nil {
		fail(types.RunStageValidate, fmt.Errorf("failed to generate a valid curriculum"))
		return
	}

	// Placeholder resolution runs on the re-serialized validated object so
	// identifiers inside resource URLs become real links.
	resolved, err := resolveDraft(draft, pc.Placeholders)
	if err != nil {
		fail(types.RunStageValidate, fmt.Errorf("resolve placeholders: %w", err))
		return
	}
	draft = resolved

	progress(types.RunStagePersist, 85, fmt.Sprintf("Creating %d days of content...", len(draft.Days)))

	err = gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := gs.dayRepo.DeleteByCurriculumID(ctx, tx, curriculumID); err != nil {
			return fmt.Errorf("clear existing days: %w", err)
		}
		now := time.Now()
		days := make([]*types.CurriculumDay, 0, len(draft.Days))
		for _, d := range draft.Days {
			day := &types.CurriculumDay{
				ID:             uuid.New(),
				CurriculumID:   curriculumID,
				DayNumber:      d.DayNumber,
				Title:          d.Title,
				IsProjectDay:   d.IsProjectDay,
				Content:        datatypes.JSON(mustJSON(d.Content)),
				Resources:      datatypes.JSON(mustJSON(d.Resources)),
				EstimatedHours: d.EstimatedHours,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if d.ProjectData != nil {
				day.ProjectData = datatypes.JSON(mustJSON(d.ProjectData))
			}
			days = append(days, day)
		}
		if _, err := gs.dayRepo.Create(ctx, tx, days); err != nil {
			return fmt.Errorf("create days: %w", err)
		}

		return gs.curriculumRepo.UpdateFields(ctx, tx, curriculumID, map[string]any{
			"title":               draft.CurriculumTitle,
			"description":         draft.CurriculumDescription,
			"generation_status":   types.GenerationStatusCompleted,
			"generation_progress": "Curriculum generated successfully!",
		})
	})
	if err != nil {
		fail(types.RunStagePersist, err)
		return
	}

	_ = gs.runRepo.UpdateFields(ctx, nil, runID, map[string]any{
		"status":    types.RunStatusSucceeded,
		"stage":     types.RunStageDone,
		"progress":  100,
		"locked_at": nil,
	})

	gs.broadcast(userID, sse.SSEEventGenerationCompleted, map[string]any{
		"curriculum_id": curriculumID,
		"run_id":        runID,
		"days":          len(draft.Days),
	})
	gs.log.Info("Curriculum generation completed", "curriculum_id", curriculumID, "days", len(draft.Days))
}

// buildGenerationQuery interpolates the stored curriculum parameters into
// the structural requirements the prompt assembler passes through verbatim.
func buildGenerationQuery(c *types.Curriculum) string {
	var meta struct {
		Prerequisites    string `json:"prerequisites"`
		DailyTimeMinutes int    `json:"daily_time_commitment_minutes"`
		LearningStyle    string `json:"learning_style"`
	}
	_ = json.Unmarshal(c.Metadata, &meta)
	if meta.Prerequisites == "" {
		meta.Prerequisites = "None"
	}
	if meta.DailyTimeMinutes <= 0 {
		meta.DailyTimeMinutes = 60
	}
	if meta.LearningStyle == "" {
		meta.LearningStyle = "Balanced"
	}

	return fmt.Sprintf(`Generate a %d-day curriculum with these exact specifications:

CURRICULUM PARAMETERS:
- Learning Goal: %s
- Title: %s
- Description: %s
- Difficulty: %s
- Duration: %d days
- Prerequisites: %s
- Daily Time: %d minutes
- Learning Style: %s
- Projects: %d

CONTENT STRUCTURE FOR EACH DAY:
Create comprehensive rich-text JSON with these required sections:
1. Introduction (heading level 2 + 1-2 detailed paragraphs explaining the day's topic)
2. Learning Objectives (heading level 3 + bullet list with 3-4 specific, actionable objectives)
3. Key Concepts (heading level 3 + multiple detailed paragraphs explaining core concepts thoroughly. Use research data to make explanations comprehensive. Include sub-headings for different concepts. Add code examples in codeBlock nodes if relevant)
4. Examples (heading level 3 + 1-2 worked examples with step-by-step explanations in paragraphs or ordered lists)
5. Summary (heading level 3 + bullet list recapping main points)

Make each day's content substantial and educational - aim for comprehensive learning modules, not brief overviews.

RESOURCES:
- Use video identifiers [V1], [V2] etc. from Supporting Research as resource urls
- Include 2-4 resources per day (mix videos + articles)
- Each resource needs title and url fields

PROJECT DISTRIBUTION:
- Distribute %d projects evenly across %d days
- Set is_project_day: true for project days
- Include complete project_data object for project days

CONTENT QUALITY REQUIREMENTS:
- Utilize Supporting Research data to create detailed, accurate explanations
- Write clear, engaging content suitable for the specified difficulty level
- Include practical examples and real-world applications
- Ensure content is substantial enough for the specified daily time commitment

Return ONLY the JSON object in the exact schema format specified in the system prompt.`,
		c.EstimatedDurationDays,
		c.LearningGoal,
		c.Title,
		c.Description,
		c.DifficultyLevel,
		c.EstimatedDurationDays,
		meta.Prerequisites,
		meta.DailyTimeMinutes,
		meta.LearningStyle,
		c.NumProjects,
		c.NumProjects,
		c.EstimatedDurationDays,
	)
}

// resolveDraft round-trips the draft through JSON so placeholder
// substitution applies uniformly, wherever the model put the identifiers.
func resolveDraft(draft *types.CurriculumDraft, placeholders agent.PlaceholderMap) (*types.CurriculumDraft, error) {
	if len(placeholders) == 0 {
		return draft, nil
	}
	serialized, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	resolvedText := agent.ResolvePlaceholders(string(serialized), placeholders)
	var resolved types.CurriculumDraft
	if err := json.Unmarshal([]byte(resolvedText), &resolved); err != nil {
		return nil, err
	}
	return &resolved, nil
}

func (gs *generationService) broadcast(userID uuid.UUID, event sse.SSEEvent, data any) {
	msg := sse.SSEMessage{
		Channel: sse.UserChannel(userID),
		Event:   event,
		Data:    data,
	}
	gs.sseHub.Broadcast(msg)
	if gs.sseBus != nil {
		if err := gs.sseBus.Publish(context.Background(), msg); err != nil {
			gs.log.Warn("SSE bus publish failed", "error", err)
		}
	}
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte(`{}`)
	}
	return b
}
