package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Tetraslam/onemonth-dev/internal/agent"
	"github.com/Tetraslam/onemonth-dev/internal/logger"
	"github.com/Tetraslam/onemonth-dev/internal/repos"
	"github.com/Tetraslam/onemonth-dev/internal/types"
)

// Stream framing markers. The frontend splits on these to render tool
// activity inline while tokens arrive.
const (
	toolStartMarker = "__TOOL_START__!"
	toolEndMarker   = "__TOOL_END__!"
	endOfStream     = "__END_OF_AI_STREAM__\n"
)

type ChatService interface {
	Chat(ctx context.Context, userID uuid.UUID, curriculumID *uuid.UUID, message string) (string, error)
	ChatStream(ctx context.Context, userID uuid.UUID, curriculumID *uuid.UUID, message string, emit func(chunk string)) error
	History(ctx context.Context, userID uuid.UUID, curriculumID uuid.UUID) ([]types.ChatMessage, error)
}

type chatService struct {
	log         *logger.Logger
	sessionRepo repos.ChatSessionRepo
	agent       *agent.Agent
}

func NewChatService(baseLog *logger.Logger, sessionRepo repos.ChatSessionRepo, pipelineAgent *agent.Agent) ChatService {
	return &chatService{
		log:         baseLog.With("service", "ChatService"),
		sessionRepo: sessionRepo,
		agent:       pipelineAgent,
	}
}

func (cs *chatService) Chat(ctx context.Context, userID uuid.UUID, curriculumID *uuid.UUID, message string) (string, error) {
	pc := cs.agent.Run(ctx, message, nil)
	if err := cs.appendTurn(ctx, userID, curriculumID, message, pc.FinalText); err != nil {
		cs.log.Warn("Failed to persist chat turn", "error", err)
	}
	return pc.FinalText, nil
}

// ChatStream forwards model deltas through emit as they arrive. Tool
// activity is framed with start/end markers, and the end-of-stream marker
// is always emitted, error paths included.
func (cs *chatService) ChatStream(ctx context.Context, userID uuid.UUID, curriculumID *uuid.UUID, message string, emit func(chunk string)) error {
	defer emit(endOfStream)

	hooks := &agent.ToolHooks{
		OnToolStart: func(tool agent.ToolName, input string) {
			payload := mustJSON(map[string]any{"name": tool, "input": input})
			emit(toolStartMarker + string(payload) + "\n")
		},
		OnToolEnd: func(tool agent.ToolName) {
			payload := mustJSON(map[string]any{"name": tool})
			emit(toolEndMarker + string(payload) + "\n")
		},
	}

	pc, err := cs.agent.RunStream(ctx, message, emit, hooks)
	if err != nil {
		emit(fmt.Sprintf("Sorry, an error occurred: %s", err.Error()))
		return err
	}

	if err := cs.appendTurn(ctx, userID, curriculumID, message, pc.FinalText); err != nil {
		cs.log.Warn("Failed to persist chat turn", "error", err)
	}
	return nil
}

func (cs *chatService) History(ctx context.Context, userID uuid.UUID, curriculumID uuid.UUID) ([]types.ChatMessage, error) {
	session, err := cs.sessionRepo.GetByUserAndCurriculum(ctx, nil, userID, curriculumID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return []types.ChatMessage{}, nil
	}
	var messages []types.ChatMessage
	if err := json.Unmarshal(session.Messages, &messages); err != nil {
		return nil, fmt.Errorf("decode session messages: %w", err)
	}
	return messages, nil
}

func (cs *chatService) appendTurn(ctx context.Context, userID uuid.UUID, curriculumID *uuid.UUID, userText, assistantText string) error {
	var session *types.ChatSession
	var err error
	if curriculumID != nil {
		session, err = cs.sessionRepo.GetByUserAndCurriculum(ctx, nil, userID, *curriculumID)
		if err != nil {
			return err
		}
	}

	turn := []types.ChatMessage{
		{Role: "user", Content: userText},
		{Role: "assistant", Content: assistantText},
	}

	if session == nil {
		session = &types.ChatSession{
			ID:           uuid.New(),
			UserID:       userID,
			CurriculumID: curriculumID,
			Messages:     datatypes.JSON(mustJSON(turn)),
		}
		_, err = cs.sessionRepo.Create(ctx, nil, []*types.ChatSession{session})
		return err
	}

	var messages []types.ChatMessage
	if err := json.Unmarshal(session.Messages, &messages); err != nil {
		messages = nil
	}
	messages = append(messages, turn...)
	return cs.sessionRepo.UpdateFields(ctx, nil, session.ID, map[string]any{
		"messages": datatypes.JSON(mustJSON(messages)),
	})
}
